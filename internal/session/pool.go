package session

import (
	"github.com/Stohl/tsp-skolan-sub000/internal/catalog"
	"github.com/Stohl/tsp-skolan-sub000/internal/meaning"
)

// pool is an ordered candidate list consumed front to back.
type pool struct {
	items []catalog.Item
	pos   int
}

// picker accumulates picks across pools, never picking the same item or
// two items from the same meaning group.
type picker struct {
	resolver  *meaning.Resolver
	ids       map[string]bool
	keys      map[string]bool
	picks     []Entry
	bySource  map[Source]int
	collapsed []string
}

func newPicker(r *meaning.Resolver) *picker {
	return &picker{
		resolver: r,
		ids:      make(map[string]bool),
		keys:     make(map[string]bool),
		bySource: make(map[Source]int),
	}
}

// take moves up to n eligible items from p into the picks and returns how
// many were taken.
func (pk *picker) take(p *pool, n int, src Source) int {
	taken := 0
	for taken < n && p.pos < len(p.items) {
		it := p.items[p.pos]
		p.pos++

		if pk.ids[it.ID] {
			continue
		}
		key := pk.resolver.Key(it)
		if pk.keys[key] {
			pk.collapsed = append(pk.collapsed, it.ID)
			continue
		}

		pk.ids[it.ID] = true
		pk.keys[key] = true
		pk.picks = append(pk.picks, Entry{ID: it.ID, Text: it.Text, Source: src})
		pk.bySource[src]++
		taken++
	}
	return taken
}

func (pk *picker) len() int { return len(pk.picks) }

func (pk *picker) count(src Source) int { return pk.bySource[src] }

func (pk *picker) selection() Selection {
	sel := Selection{
		Entries:   append([]Entry(nil), pk.picks...),
		Collapsed: append([]string(nil), pk.collapsed...),
	}
	sel.Learning, sel.Review, sel.Compensation = countSources(sel.Entries)
	return sel
}
