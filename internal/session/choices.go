package session

import (
	"github.com/Stohl/tsp-skolan-sub000/internal/catalog"
	"github.com/Stohl/tsp-skolan-sub000/internal/meaning"
	"github.com/Stohl/tsp-skolan-sub000/internal/shuffle"
)

// Choices builds the options for a multiple-choice question about target:
// up to n-1 distractors drawn from pool, none sharing a meaning group with
// target or with each other. It returns the shuffled options and the index
// of target among them.
func Choices(target catalog.Item, pool []catalog.Item, n int, r *meaning.Resolver, seed int64) ([]catalog.Item, int) {
	if n < 1 {
		n = 1
	}

	used := map[string]bool{r.Key(target): true}
	options := []catalog.Item{target}
	for _, it := range shuffle.Slice(pool, seed) {
		if len(options) >= n {
			break
		}
		if it.ID == target.ID {
			continue
		}
		key := r.Key(it)
		if used[key] {
			continue
		}
		used[key] = true
		options = append(options, it)
	}

	options = shuffle.Slice(options, seed+1)
	for i, it := range options {
		if it.ID == target.ID {
			return options, i
		}
	}
	return options, 0
}
