// Package meaning collapses items that denote the same concept so a session
// never quizzes the learner twice on one meaning.
package meaning

import "github.com/Stohl/tsp-skolan-sub000/internal/catalog"

// Resolver keeps one representative per meaning group.
type Resolver struct {
	variants *catalog.VariantIndex
}

// NewResolver creates a resolver over vi. A nil index makes the resolver
// the identity function.
func NewResolver(vi *catalog.VariantIndex) *Resolver {
	return &Resolver{variants: vi}
}

// Resolve returns items with every member after the first of each meaning
// group removed. Surviving items keep their input order; the input slice is
// not modified.
func (r *Resolver) Resolve(items []catalog.Item) []catalog.Item {
	kept, _ := r.Split(items)
	return kept
}

// Split is Resolve that also returns the dropped items.
func (r *Resolver) Split(items []catalog.Item) (kept, dropped []catalog.Item) {
	kept = make([]catalog.Item, 0, len(items))
	if r == nil || r.variants == nil {
		return append(kept, items...), nil
	}

	seen := make(map[string]bool)
	for _, it := range items {
		key, ok := r.variants.GroupKey(it)
		if !ok {
			kept = append(kept, it)
			continue
		}
		if seen[key] {
			dropped = append(dropped, it)
			continue
		}
		seen[key] = true
		kept = append(kept, it)
	}
	return kept, dropped
}

// Key returns the meaning-group key of it. Items outside any multi-member
// group are keyed by their own ID so every item has exactly one key.
func (r *Resolver) Key(it catalog.Item) string {
	if r != nil {
		if key, ok := r.variants.GroupKey(it); ok {
			return "group:" + key
		}
	}
	return "item:" + it.ID
}
