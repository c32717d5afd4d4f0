// Package sentences ranks not-yet-learned items by how many example phrases
// they would make fully understandable.
package sentences

import (
	"context"
	"slices"
	"sort"
	"time"

	"github.com/Stohl/tsp-skolan-sub000/internal/catalog"
	"github.com/Stohl/tsp-skolan-sub000/internal/events"
)

// DefaultLevelTags are the phrase level tags eligible for ranking.
var DefaultLevelTags = []string{"1", "2", "3", "4", "5"}

// PhraseRef describes a phrase relative to the learned set.
type PhraseRef struct {
	ID       string
	Text     string
	LevelTag string
	Words    []string
	// Missing is the single unlearned word of a near-complete phrase.
	Missing string
}

// Candidate is an unlearned item and the near-complete phrases it completes.
type Candidate struct {
	ItemID  string
	Count   int
	Phrases []PhraseRef
}

// Partition buckets every phrase reachable from the learned set.
type Partition struct {
	Complete     []PhraseRef
	NearComplete []PhraseRef
	NotNear      []PhraseRef
	// Untagged holds reachable phrases without a recognized level tag,
	// whatever their completeness.
	Untagged []PhraseRef
}

// Ranker answers "what should I learn next" queries.
type Ranker struct {
	catalog *catalog.Catalog
	levels  map[string]bool
	sink    events.Sink
}

// NewRanker creates a ranker over cat. Only phrases tagged with one of
// levelTags are ranked; nil levelTags means DefaultLevelTags.
func NewRanker(cat *catalog.Catalog, levelTags []string, sink events.Sink) *Ranker {
	if levelTags == nil {
		levelTags = DefaultLevelTags
	}
	levels := make(map[string]bool, len(levelTags))
	for _, t := range levelTags {
		levels[t] = true
	}
	return &Ranker{catalog: cat, levels: levels, sink: events.OrNop(sink)}
}

// Partition classifies each phrase reachable from learned exactly once.
// Work is proportional to the phrases adjacent to learned items.
func (r *Ranker) Partition(learned map[string]bool) Partition {
	var p Partition
	idx := r.catalog.Index
	if idx == nil {
		return p
	}

	visited := make(map[string]bool)
	for _, itemID := range sortedKeys(learned) {
		for _, phraseID := range idx.PhrasesFor(itemID) {
			if visited[phraseID] {
				continue
			}
			visited[phraseID] = true

			ref := r.ref(phraseID)
			var unlearned []string
			for _, w := range ref.Words {
				if !learned[w] {
					unlearned = append(unlearned, w)
				}
			}

			switch {
			case !r.levels[ref.LevelTag]:
				p.Untagged = append(p.Untagged, ref)
			case len(unlearned) == 0:
				p.Complete = append(p.Complete, ref)
			case len(unlearned) == 1:
				ref.Missing = unlearned[0]
				p.NearComplete = append(p.NearComplete, ref)
			default:
				p.NotNear = append(p.NotNear, ref)
			}
		}
	}
	return p
}

// Candidates returns every candidate item, most near-complete phrases first,
// ties broken by item ID.
func (r *Ranker) Candidates(learned map[string]bool) []Candidate {
	byItem := make(map[string]*Candidate)
	for _, ref := range r.Partition(learned).NearComplete {
		c, ok := byItem[ref.Missing]
		if !ok {
			c = &Candidate{ItemID: ref.Missing}
			byItem[ref.Missing] = c
		}
		c.Count++
		c.Phrases = append(c.Phrases, ref)
	}

	out := make([]Candidate, 0, len(byItem))
	for _, c := range byItem {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].ItemID < out[j].ItemID
	})
	return out
}

// TopCandidates returns at most n candidates and reports them to the sink.
func (r *Ranker) TopCandidates(ctx context.Context, learned map[string]bool, n int) []Candidate {
	all := r.Candidates(learned)
	if n >= 0 && len(all) > n {
		all = all[:n]
	}

	ids := make([]string, len(all))
	for i, c := range all {
		ids[i] = c.ItemID
	}
	r.sink.Emit(ctx, events.Event{
		Kind:    events.KindCandidates,
		Time:    time.Now(),
		ItemIDs: ids,
		Count:   len(ids),
	})
	return all
}

// NearComplete lists the near-complete phrases that learning itemID would
// complete.
func (r *Ranker) NearComplete(learned map[string]bool, itemID string) []PhraseRef {
	if learned[itemID] || r.catalog.Index == nil {
		return nil
	}

	var out []PhraseRef
	for _, phraseID := range r.catalog.Index.PhrasesFor(itemID) {
		ref := r.ref(phraseID)
		if !r.levels[ref.LevelTag] {
			continue
		}
		missing, known := 0, 0
		for _, w := range ref.Words {
			if learned[w] {
				known++
			} else {
				missing++
			}
		}
		// itemID itself is the one missing word, and the phrase must be
		// reachable from a learned word to count as a candidate.
		if missing == 1 && known > 0 {
			ref.Missing = itemID
			out = append(out, ref)
		}
	}
	return out
}

// CompletePhrases returns the ranked-eligible phrases whose every word is
// learned, in phrase ID order.
func (r *Ranker) CompletePhrases(learned map[string]bool) []catalog.Phrase {
	complete := r.Partition(learned).Complete
	out := make([]catalog.Phrase, 0, len(complete))
	for _, ref := range complete {
		if p, ok := r.catalog.Phrase(ref.ID); ok {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *Ranker) ref(phraseID string) PhraseRef {
	ref := PhraseRef{ID: phraseID, Words: slices.Clone(r.catalog.Index.WordsOf(phraseID))}
	if p, ok := r.catalog.Phrase(phraseID); ok {
		ref.Text = p.Text
		ref.LevelTag = p.LevelTag
	}
	return ref
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k, ok := range set {
		if ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
