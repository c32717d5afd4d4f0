package sentences

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Stohl/tsp-skolan-sub000/internal/catalog"
	"github.com/Stohl/tsp-skolan-sub000/internal/events"
)

func buildCatalog(t *testing.T, items []string, phrases []catalog.Phrase) *catalog.Catalog {
	t.Helper()
	its := make([]catalog.Item, len(items))
	for i, id := range items {
		its[i] = catalog.Item{ID: id, Text: id}
	}
	c, err := catalog.New(its, phrases, nil, nil)
	require.NoError(t, err)
	return c
}

func set(ids ...string) map[string]bool {
	m := make(map[string]bool, len(ids))
	for _, id := range ids {
		m[id] = true
	}
	return m
}

func abcdCatalog(t *testing.T) *catalog.Catalog {
	return buildCatalog(t, []string{"A", "B", "C", "D", "E"}, []catalog.Phrase{
		{ID: "P1", Text: "A C", LevelTag: "1", Words: []string{"A", "C"}},
		{ID: "P2", Text: "B C", LevelTag: "2", Words: []string{"B", "C"}},
		{ID: "P3", Text: "A D", LevelTag: "1", Words: []string{"A", "D"}},
	})
}

func TestTopCandidates_RankingExample(t *testing.T) {
	rec := &events.Recorder{}
	r := NewRanker(abcdCatalog(t), nil, rec)

	top := r.TopCandidates(context.Background(), set("A", "B"), 1)
	require.Len(t, top, 1)
	assert.Equal(t, "C", top[0].ItemID)
	assert.Equal(t, 2, top[0].Count)

	all := r.TopCandidates(context.Background(), set("A", "B"), 3)
	require.Len(t, all, 2)
	assert.Equal(t, "D", all[1].ItemID)
	assert.Equal(t, 1, all[1].Count)

	ev := rec.OfKind(events.KindCandidates)
	require.Len(t, ev, 2)
	assert.Equal(t, []string{"C"}, ev[0].ItemIDs)
}

func TestCandidates_TiesByID(t *testing.T) {
	c := buildCatalog(t, []string{"A", "X", "Y"}, []catalog.Phrase{
		{ID: "p1", LevelTag: "1", Words: []string{"A", "Y"}},
		{ID: "p2", LevelTag: "1", Words: []string{"A", "X"}},
	})
	got := NewRanker(c, nil, nil).Candidates(set("A"))
	require.Len(t, got, 2)
	assert.Equal(t, "X", got[0].ItemID)
	assert.Equal(t, "Y", got[1].ItemID)
}

func TestPartition_EachPhraseOnce(t *testing.T) {
	c := buildCatalog(t, []string{"A", "B", "C", "D"}, []catalog.Phrase{
		{ID: "complete", LevelTag: "1", Words: []string{"A", "B"}},
		{ID: "near", LevelTag: "3", Words: []string{"A", "B", "C"}},
		{ID: "far", LevelTag: "5", Words: []string{"A", "C", "D"}},
		{ID: "untagged", Words: []string{"A", "C"}},
		{ID: "unknown-tag", LevelTag: "9", Words: []string{"B"}},
		{ID: "unreachable", LevelTag: "1", Words: []string{"C", "D"}},
	})
	r := NewRanker(c, nil, nil)
	learned := set("A", "B")

	p := r.Partition(learned)
	assert.Equal(t, []string{"complete"}, refIDs(p.Complete))
	assert.Equal(t, []string{"near"}, refIDs(p.NearComplete))
	assert.Equal(t, "C", p.NearComplete[0].Missing)
	assert.Equal(t, []string{"far"}, refIDs(p.NotNear))
	assert.ElementsMatch(t, []string{"untagged", "unknown-tag"}, refIDs(p.Untagged))

	// Stable across calls.
	again := r.Partition(learned)
	assert.Equal(t, p, again)

	total := len(p.Complete) + len(p.NearComplete) + len(p.NotNear) + len(p.Untagged)
	assert.Equal(t, 5, total, "a phrase reachable via two learned items is counted once")
}

func TestNearComplete(t *testing.T) {
	r := NewRanker(abcdCatalog(t), nil, nil)

	got := r.NearComplete(set("A", "B"), "C")
	require.Len(t, got, 2)
	assert.Equal(t, "P1", got[0].ID)
	assert.Equal(t, "A C", got[0].Text)
	assert.Equal(t, "1", got[0].LevelTag)
	assert.Equal(t, []string{"A", "C"}, got[0].Words)
	assert.Equal(t, "C", got[0].Missing)
	assert.Equal(t, "P2", got[1].ID)

	assert.Empty(t, r.NearComplete(set("A", "B"), "A"), "learned items complete nothing")
	assert.Empty(t, r.NearComplete(set("B"), "D"), "P3 misses both A and D")
}

func TestNearComplete_MatchesCandidateCount(t *testing.T) {
	r := NewRanker(buildCatalog(t, []string{"A", "C", "D"}, []catalog.Phrase{
		{ID: "P1", Text: "A C", LevelTag: "1", Words: []string{"A", "C"}},
		{ID: "P2", Text: "C", LevelTag: "1", Words: []string{"C"}},
		{ID: "P3", Text: "C D", LevelTag: "1", Words: []string{"C", "D"}},
	}), nil, nil)
	learned := set("A")

	cands := r.Candidates(learned)
	require.Len(t, cands, 1)
	assert.Equal(t, "C", cands[0].ItemID)
	assert.Equal(t, 1, cands[0].Count)

	near := r.NearComplete(learned, "C")
	require.Len(t, near, cands[0].Count, "phrases without a learned word are not reachable")
	assert.Equal(t, "P1", near[0].ID)
}

func TestPhraseRefWordsAreCopies(t *testing.T) {
	c := abcdCatalog(t)
	r := NewRanker(c, nil, nil)

	got := r.NearComplete(set("A", "B"), "C")
	require.NotEmpty(t, got)
	got[0].Words[0] = "Z"

	assert.Equal(t, []string{"A", "C"}, c.Index.WordsOf("P1"))
	assert.Equal(t, []string{"A", "C"}, r.NearComplete(set("A", "B"), "C")[0].Words)
}

func TestCompletePhrases(t *testing.T) {
	r := NewRanker(abcdCatalog(t), nil, nil)

	got := r.CompletePhrases(set("A", "B", "C"))
	require.Len(t, got, 2)
	assert.Equal(t, "P1", got[0].ID)
	assert.Equal(t, "P2", got[1].ID)
}

func TestCustomLevelTags(t *testing.T) {
	r := NewRanker(abcdCatalog(t), []string{"2"}, nil)

	got := r.Candidates(set("A", "B"))
	require.Len(t, got, 1)
	assert.Equal(t, "C", got[0].ItemID)
	assert.Equal(t, 1, got[0].Count, "only P2 carries level 2")
}

func TestNoIndex(t *testing.T) {
	r := NewRanker(buildCatalog(t, []string{"A"}, nil), nil, nil)

	assert.Empty(t, r.TopCandidates(context.Background(), set("A"), 3))
	assert.Empty(t, r.NearComplete(set(), "A"))
	assert.Equal(t, Partition{}, r.Partition(set("A")))
	assert.Empty(t, r.CompletePhrases(set("A")))
}

func refIDs(refs []PhraseRef) []string {
	out := make([]string, len(refs))
	for i, r := range refs {
		out[i] = r.ID
	}
	return out
}
