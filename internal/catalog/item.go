// Package catalog holds the read-only vocabulary data a practice session is
// built from: items (signs/words), phrases, the item/phrase bipartite index,
// the curated priority table and the variant (meaning-group) index.
package catalog

// Item is a single vocabulary entry the learner can practice.
type Item struct {
	ID          string   `json:"id"`
	Text        string   `json:"text"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	MediaRef    string   `json:"media,omitempty"`
}

// Phrase is an example sentence that references one or more items.
type Phrase struct {
	ID       string   `json:"id"`
	Text     string   `json:"text"`
	LevelTag string   `json:"level,omitempty"`
	MediaRef string   `json:"media,omitempty"`
	Words    []string `json:"words,omitempty"`
}

// HasTag reports whether the item carries the given topic tag.
func (it Item) HasTag(tag string) bool {
	for _, t := range it.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
