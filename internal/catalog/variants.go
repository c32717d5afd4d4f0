package catalog

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// VariantGroup lists the items that denote the same underlying concept.
type VariantGroup struct {
	Members []string `json:"members"`
}

// VariantIndex maps normalized display text to a variant group.
// A nil *VariantIndex means the index has not been loaded.
type VariantIndex struct {
	byText   map[string]VariantGroup
	memberOf map[string]string // item ID -> normalized group key
}

// NewVariantIndex builds an index from raw text keys. Keys are normalized,
// and groups whose keys collide after normalization are merged.
func NewVariantIndex(groups map[string]VariantGroup) *VariantIndex {
	vi := &VariantIndex{
		byText:   make(map[string]VariantGroup, len(groups)),
		memberOf: make(map[string]string),
	}
	for text, g := range groups {
		key := NormalizeText(text)
		if key == "" {
			continue
		}
		merged := vi.byText[key]
		for _, id := range g.Members {
			if _, dup := vi.memberOf[id]; dup {
				continue
			}
			merged.Members = append(merged.Members, id)
			vi.memberOf[id] = key
		}
		vi.byText[key] = merged
	}
	return vi
}

// Lookup returns the group registered under the (raw) text.
func (vi *VariantIndex) Lookup(text string) (VariantGroup, bool) {
	if vi == nil {
		return VariantGroup{}, false
	}
	g, ok := vi.byText[NormalizeText(text)]
	return g, ok
}

// GroupKey returns the meaning-group key for an item. Only groups with more
// than one member count; everything else is its own concept.
func (vi *VariantIndex) GroupKey(it Item) (string, bool) {
	if vi == nil {
		return "", false
	}
	key, ok := vi.memberOf[it.ID]
	if !ok {
		key = NormalizeText(it.Text)
	}
	g, ok := vi.byText[key]
	if !ok || len(g.Members) <= 1 {
		return "", false
	}
	return key, true
}

// Len returns the number of variant groups.
func (vi *VariantIndex) Len() int {
	if vi == nil {
		return 0
	}
	return len(vi.byText)
}

// NormalizeText canonicalizes display text for variant lookups: NFC
// composition, Unicode case folding and collapsed whitespace.
func NormalizeText(s string) string {
	s = norm.NFC.String(s)
	s = cases.Fold().String(s)
	return strings.Join(strings.Fields(s), " ")
}
