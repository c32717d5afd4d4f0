package meaning

import (
	"slices"
	"testing"

	"github.com/Stohl/tsp-skolan-sub000/internal/catalog"
)

func ids(items []catalog.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func testVariants() *catalog.VariantIndex {
	return catalog.NewVariantIndex(map[string]catalog.VariantGroup{
		"bil":  {Members: []string{"bil-1", "bil-2", "bil-3"}},
		"glad": {Members: []string{"glad", "lycklig"}},
		"sol":  {Members: []string{"sol"}},
	})
}

func testItems() []catalog.Item {
	return []catalog.Item{
		{ID: "hej", Text: "hej"},
		{ID: "bil-2", Text: "bil"},
		{ID: "lycklig", Text: "lycklig"},
		{ID: "bil-1", Text: "Bil"},
		{ID: "sol", Text: "sol"},
		{ID: "glad", Text: "glad"},
		{ID: "other-bil", Text: " BIL "},
	}
}

func TestResolve_KeepsFirstPerGroup(t *testing.T) {
	r := NewResolver(testVariants())

	got := ids(r.Resolve(testItems()))
	want := []string{"hej", "bil-2", "lycklig", "sol"}
	if !slices.Equal(got, want) {
		t.Errorf("Resolve = %v, want %v", got, want)
	}
}

func TestResolve_Idempotent(t *testing.T) {
	r := NewResolver(testVariants())

	once := r.Resolve(testItems())
	twice := r.Resolve(once)
	if !slices.Equal(ids(once), ids(twice)) {
		t.Errorf("Resolve(Resolve(x)) = %v, want %v", ids(twice), ids(once))
	}
}

func TestResolve_DoesNotMutateInput(t *testing.T) {
	r := NewResolver(testVariants())
	in := testItems()
	before := ids(in)

	_ = r.Resolve(in)
	if !slices.Equal(ids(in), before) {
		t.Errorf("input mutated: %v, want %v", ids(in), before)
	}
}

func TestResolve_NilIndexIsIdentity(t *testing.T) {
	for _, r := range []*Resolver{NewResolver(nil), nil} {
		got := r.Resolve(testItems())
		if !slices.Equal(ids(got), ids(testItems())) {
			t.Errorf("Resolve without index = %v, want identity", ids(got))
		}
	}
}

func TestSplit_ReportsDropped(t *testing.T) {
	r := NewResolver(testVariants())

	kept, dropped := r.Split(testItems())
	if len(kept)+len(dropped) != len(testItems()) {
		t.Fatalf("kept %d + dropped %d != %d", len(kept), len(dropped), len(testItems()))
	}
	want := []string{"bil-1", "glad", "other-bil"}
	if !slices.Equal(ids(dropped), want) {
		t.Errorf("dropped = %v, want %v", ids(dropped), want)
	}
}

func TestKey(t *testing.T) {
	r := NewResolver(testVariants())

	if a, b := r.Key(catalog.Item{ID: "bil-1"}), r.Key(catalog.Item{ID: "bil-3"}); a != b {
		t.Errorf("same group keys differ: %q vs %q", a, b)
	}
	if a, b := r.Key(catalog.Item{ID: "hej", Text: "hej"}), r.Key(catalog.Item{ID: "tack", Text: "tack"}); a == b {
		t.Errorf("ungrouped items share key %q", a)
	}
	if got := NewResolver(nil).Key(catalog.Item{ID: "bil-1"}); got != "item:bil-1" {
		t.Errorf("Key without index = %q, want item:bil-1", got)
	}
}
