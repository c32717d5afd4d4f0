package catalog

import "sort"

// Index is the two-way mapping between items and the phrases that
// reference them. A nil *Index is valid and behaves as an empty index.
type Index struct {
	wordToPhrases map[string][]string
	phraseToWords map[string][]string
}

// NewIndex builds both directions of the index from phrase -> words.
// Word lists are deduplicated; phrase lists per word are sorted by phrase ID.
func NewIndex(phraseToWords map[string][]string) *Index {
	idx := &Index{
		wordToPhrases: make(map[string][]string),
		phraseToWords: make(map[string][]string, len(phraseToWords)),
	}

	for phraseID, words := range phraseToWords {
		seen := make(map[string]bool, len(words))
		uniq := make([]string, 0, len(words))
		for _, w := range words {
			if w == "" || seen[w] {
				continue
			}
			seen[w] = true
			uniq = append(uniq, w)
			idx.wordToPhrases[w] = append(idx.wordToPhrases[w], phraseID)
		}
		idx.phraseToWords[phraseID] = uniq
	}

	for w := range idx.wordToPhrases {
		sort.Strings(idx.wordToPhrases[w])
	}
	return idx
}

// PhrasesFor returns the phrase IDs that reference the item.
func (idx *Index) PhrasesFor(itemID string) []string {
	if idx == nil {
		return nil
	}
	return idx.wordToPhrases[itemID]
}

// WordsOf returns the item IDs referenced by the phrase.
func (idx *Index) WordsOf(phraseID string) []string {
	if idx == nil {
		return nil
	}
	return idx.phraseToWords[phraseID]
}

// Len returns the number of indexed phrases.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.phraseToWords)
}
