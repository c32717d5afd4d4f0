package session

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Stohl/tsp-skolan-sub000/internal/catalog"
	"github.com/Stohl/tsp-skolan-sub000/internal/events"
	"github.com/Stohl/tsp-skolan-sub000/internal/meaning"
	"github.com/Stohl/tsp-skolan-sub000/internal/progress"
	"github.com/Stohl/tsp-skolan-sub000/internal/shuffle"
)

// ProgressReader is the read side of the progress store.
type ProgressReader interface {
	Get(id string) progress.Record
}

// Request parameterizes one selection.
type Request struct {
	SessionID string
	// Items restricts selection to these item IDs. Nil means the whole catalog.
	Items []string
	// Seed drives every random choice, so equal seeds give equal sessions.
	Seed int64
}

// Selection is the outcome of a selection call.
type Selection struct {
	Entries      []Entry
	Learning     int
	Review       int
	Compensation int
	Fallback     bool
	// Collapsed lists items skipped because their meaning group was
	// already represented.
	Collapsed []string
}

// IDs returns the entry IDs in session order.
func (s Selection) IDs() []string {
	ids := make([]string, len(s.Entries))
	for i, e := range s.Entries {
		ids[i] = e.ID
	}
	return ids
}

// Selector builds session entry lists from the catalog and learner progress.
type Selector struct {
	cfg      Config
	catalog  *catalog.Catalog
	progress ProgressReader
	resolver *meaning.Resolver
	sink     events.Sink
	now      func() time.Time
}

// NewSelector creates a selector. sink may be nil.
func NewSelector(cfg Config, cat *catalog.Catalog, prog ProgressReader, sink events.Sink) *Selector {
	return &Selector{
		cfg:      cfg,
		catalog:  cat,
		progress: prog,
		resolver: meaning.NewResolver(cat.Variants),
		sink:     events.OrNop(sink),
		now:      time.Now,
	}
}

// Mixed selects a reinforcement session: up to SessionSize-ReviewCount
// Learning items, most recently practiced first, plus ReviewCount shuffled
// Learned items. A shortage on either side is filled from the other. The
// result is shuffled; if no item has progress, the first SessionSize
// catalog items are returned instead.
func (s *Selector) Mixed(ctx context.Context, req Request) Selection {
	size := s.cfg.SessionSize
	review := min(max(s.cfg.ReviewCount, 0), size)
	minLearning := size - review

	learning, learned := s.partition(s.candidates(req.Items))
	learningPool := &pool{items: s.rankLearning(learning)}
	learnedPool := &pool{items: shuffle.Slice(learned, req.Seed)}

	pk := newPicker(s.resolver)
	pk.take(learningPool, minLearning, SourceLearning)
	pk.take(learnedPool, review, SourceReview)

	if shortfall := minLearning - pk.count(SourceLearning); shortfall > 0 {
		got := pk.take(learnedPool, shortfall, SourceCompensation)
		s.emit(ctx, events.Event{
			Kind:      events.KindShortfall,
			SessionID: req.SessionID,
			Count:     got,
			Detail:    fmt.Sprintf("learning short by %d, compensated %d from learned", shortfall, got),
		})
	}

	// Top up from whichever pool is further below its quota.
	for pk.len() < size {
		learnDeficit := minLearning - pk.count(SourceLearning)
		reviewDeficit := review - pk.count(SourceReview) - pk.count(SourceCompensation)
		if reviewDeficit > learnDeficit {
			if pk.take(learnedPool, 1, SourceCompensation) == 0 && pk.take(learningPool, 1, SourceLearning) == 0 {
				break
			}
			continue
		}
		if pk.take(learningPool, 1, SourceLearning) == 0 && pk.take(learnedPool, 1, SourceCompensation) == 0 {
			break
		}
	}

	sel := s.finish(pk, req.Seed+1)
	if len(sel.Entries) == 0 {
		sel = s.fallback(ctx, req)
	}

	s.report(ctx, req.SessionID, sel)
	return sel
}

// MultipleChoice selects exactly SessionSize items: ranked Learning items
// first, topped up with shuffled Learned items. It returns an
// *InsufficientItemsError when fewer distinct items are available.
func (s *Selector) MultipleChoice(ctx context.Context, req Request) (Selection, error) {
	size := s.cfg.SessionSize

	learning, learned := s.partition(s.candidates(req.Items))

	pk := newPicker(s.resolver)
	pk.take(&pool{items: s.rankLearning(learning)}, size, SourceLearning)
	if pk.len() < size {
		pk.take(&pool{items: shuffle.Slice(learned, req.Seed)}, size-pk.len(), SourceReview)
	}

	if pk.len() < size {
		err := &InsufficientItemsError{Mode: ModeMultipleChoice, Need: size, Have: pk.len()}
		s.emit(ctx, events.Event{
			Kind:      events.KindInsufficientItems,
			SessionID: req.SessionID,
			Count:     pk.len(),
			Detail:    err.Error(),
		})
		return Selection{}, err
	}

	sel := pk.selection()
	s.report(ctx, req.SessionID, sel)
	return sel, nil
}

// Phrases selects up to SessionSize phrases from complete, shuffled by seed.
func (s *Selector) Phrases(ctx context.Context, req Request, complete []catalog.Phrase) Selection {
	shuffled := shuffle.Slice(complete, req.Seed)
	n := min(len(shuffled), s.cfg.SessionSize)

	sel := Selection{Entries: make([]Entry, 0, n)}
	for _, p := range shuffled[:n] {
		sel.Entries = append(sel.Entries, Entry{ID: p.ID, Text: p.Text, Phrase: true, Source: SourcePhrase})
	}
	s.report(ctx, req.SessionID, sel)
	return sel
}

func (s *Selector) candidates(ids []string) []catalog.Item {
	if ids == nil {
		return s.catalog.Items()
	}
	return s.catalog.Subset(ids)
}

// partition splits items by progress level, dropping Unmarked items.
func (s *Selector) partition(items []catalog.Item) (learning, learned []catalog.Item) {
	for _, it := range items {
		switch s.progress.Get(it.ID).Level {
		case progress.Learning:
			learning = append(learning, it)
		case progress.Learned:
			learned = append(learned, it)
		}
	}
	return learning, learned
}

// rankLearning orders Learning items: never practiced first, then most
// recently practiced, then by curated priority, then by ID.
func (s *Selector) rankLearning(items []catalog.Item) []catalog.Item {
	type ranked struct {
		item catalog.Item
		last time.Time
		prio float64
	}
	rs := make([]ranked, len(items))
	for i, it := range items {
		rs[i] = ranked{
			item: it,
			last: s.progress.Get(it.ID).Stats.LastPracticed,
			prio: s.catalog.Priorities.Of(it.ID),
		}
	}

	sort.SliceStable(rs, func(i, j int) bool {
		a, b := rs[i], rs[j]
		if a.last.IsZero() != b.last.IsZero() {
			return a.last.IsZero()
		}
		if !a.last.Equal(b.last) {
			return a.last.After(b.last)
		}
		if a.prio != b.prio {
			return a.prio < b.prio
		}
		return a.item.ID < b.item.ID
	})

	out := make([]catalog.Item, len(rs))
	for i, r := range rs {
		out[i] = r.item
	}
	return out
}

// finish deduplicates the picks, runs the meaning resolver over them and
// shuffles the result.
func (s *Selector) finish(pk *picker, seed int64) Selection {
	sel := pk.selection()

	items := make([]catalog.Item, 0, len(sel.Entries))
	source := make(map[string]Source, len(sel.Entries))
	for _, e := range sel.Entries {
		if _, dup := source[e.ID]; dup {
			continue
		}
		source[e.ID] = e.Source
		items = append(items, catalog.Item{ID: e.ID, Text: e.Text})
	}

	kept, dropped := s.resolver.Split(items)
	for _, it := range dropped {
		sel.Collapsed = append(sel.Collapsed, it.ID)
	}

	entries := make([]Entry, len(kept))
	for i, it := range kept {
		entries[i] = Entry{ID: it.ID, Text: it.Text, Source: source[it.ID]}
	}
	sel.Entries = shuffle.Slice(entries, seed)
	sel.Learning, sel.Review, sel.Compensation = countSources(sel.Entries)
	return sel
}

func (s *Selector) fallback(ctx context.Context, req Request) Selection {
	pk := newPicker(s.resolver)
	pk.take(&pool{items: s.candidates(req.Items)}, s.cfg.SessionSize, SourceFallback)

	sel := pk.selection()
	sel.Fallback = true
	s.emit(ctx, events.Event{
		Kind:      events.KindFallback,
		SessionID: req.SessionID,
		ItemIDs:   sel.IDs(),
		Count:     len(sel.Entries),
		Detail:    "no learning or learned items",
	})
	return sel
}

func (s *Selector) report(ctx context.Context, sessionID string, sel Selection) {
	if len(sel.Collapsed) > 0 {
		s.emit(ctx, events.Event{
			Kind:      events.KindMeaningCollapsed,
			SessionID: sessionID,
			ItemIDs:   sel.Collapsed,
			Count:     len(sel.Collapsed),
		})
	}
	s.emit(ctx, events.Event{
		Kind:      events.KindSelection,
		SessionID: sessionID,
		ItemIDs:   sel.IDs(),
		Count:     len(sel.Entries),
		Detail: fmt.Sprintf("learning=%d review=%d compensation=%d fallback=%t",
			sel.Learning, sel.Review, sel.Compensation, sel.Fallback),
	})
}

func (s *Selector) emit(ctx context.Context, e events.Event) {
	e.Time = s.now()
	s.sink.Emit(ctx, e)
}

func countSources(entries []Entry) (learning, review, compensation int) {
	for _, e := range entries {
		switch e.Source {
		case SourceLearning:
			learning++
		case SourceReview:
			review++
		case SourceCompensation:
			compensation++
		}
	}
	return learning, review, compensation
}
