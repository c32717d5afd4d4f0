package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItems() []Item {
	return []Item{
		{ID: "hej", Text: "hej"},
		{ID: "tack", Text: "tack"},
		{ID: "hund", Text: "hund", Tags: []string{"djur"}},
		{ID: "katt", Text: "katt", Tags: []string{"djur"}},
	}
}

func TestNew_BuildsLookups(t *testing.T) {
	phrases := []Phrase{
		{ID: "p1", Text: "hej hund", Words: []string{"hej", "hund"}},
		{ID: "p2", Text: "tack hund", Words: []string{"tack", "hund", "hund"}},
	}
	c, err := New(testItems(), phrases, nil, nil)
	require.NoError(t, err)

	it, ok := c.Item("hund")
	require.True(t, ok)
	assert.True(t, it.HasTag("djur"))

	_, ok = c.Item("missing")
	assert.False(t, ok)

	p, ok := c.Phrase("p2")
	require.True(t, ok)
	assert.Equal(t, "tack hund", p.Text)

	assert.Equal(t, []string{"p1", "p2"}, c.Index.PhrasesFor("hund"))
	assert.Equal(t, []string{"tack", "hund"}, c.Index.WordsOf("p2"), "duplicate words are collapsed")
	assert.Equal(t, 2, c.Index.Len())
}

func TestNew_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		items   []Item
		phrases []Phrase
	}{
		{"duplicate item", []Item{{ID: "a"}, {ID: "a"}}, nil},
		{"empty item id", []Item{{Text: "x"}}, nil},
		{"duplicate phrase", []Item{{ID: "a"}}, []Phrase{{ID: "p"}, {ID: "p"}}},
		{"dangling word", []Item{{ID: "a"}}, []Phrase{{ID: "p", Words: []string{"a", "b"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.items, tt.phrases, nil, nil)
			require.Error(t, err)
		})
	}
}

func TestSubset_KeepsCatalogOrder(t *testing.T) {
	c, err := New(testItems(), nil, nil, nil)
	require.NoError(t, err)

	got := c.Subset([]string{"katt", "hej", "nope"})
	require.Len(t, got, 2)
	assert.Equal(t, "hej", got[0].ID)
	assert.Equal(t, "katt", got[1].ID)
}

func TestNilIndexAndTables(t *testing.T) {
	var idx *Index
	assert.Nil(t, idx.PhrasesFor("a"))
	assert.Nil(t, idx.WordsOf("p"))
	assert.Zero(t, idx.Len())

	var pt *PriorityTable
	assert.Equal(t, NoPriority, pt.Of("a"))

	c, err := New(testItems(), nil, nil, nil)
	require.NoError(t, err)
	assert.Nil(t, c.Index, "no phrases means no index")
}

func TestPriorityTable(t *testing.T) {
	pt := NewPriorityTable(map[string]float64{"hej": 1, "tack": 2.5})
	assert.Equal(t, 1.0, pt.Of("hej"))
	assert.Equal(t, 2.5, pt.Of("tack"))
	assert.Equal(t, NoPriority, pt.Of("hund"))
	assert.Greater(t, pt.Of("hund"), 1e12)
	assert.Equal(t, 2, pt.Len())
}
