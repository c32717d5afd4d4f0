// Package app is the entry point UI layers call into: it starts sessions,
// records answers and answers "what next" queries over one catalog and one
// progress store.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Stohl/tsp-skolan-sub000/internal/catalog"
	"github.com/Stohl/tsp-skolan-sub000/internal/events"
	"github.com/Stohl/tsp-skolan-sub000/internal/mastery"
	"github.com/Stohl/tsp-skolan-sub000/internal/meaning"
	"github.com/Stohl/tsp-skolan-sub000/internal/progress"
	"github.com/Stohl/tsp-skolan-sub000/internal/sentences"
	"github.com/Stohl/tsp-skolan-sub000/internal/session"
)

var (
	// ErrUnknownMode is returned for a practice mode the service does not offer.
	ErrUnknownMode = errors.New("unknown practice mode")

	// ErrUnknownItem is returned for item IDs missing from the catalog.
	ErrUnknownItem = errors.New("unknown item")

	// ErrPhraseEntry is returned when an item answer is recorded for a
	// phrase entry, or the reverse.
	ErrPhraseEntry = errors.New("entry kind mismatch")
)

// DefaultTopN is the default number of next-item candidates.
const DefaultTopN = 3

// Options holds the service dependencies. Zero values get defaults.
type Options struct {
	Session   session.Config
	LevelTags []string
	TopN      int
	Sink      events.Sink
	Logger    *zap.Logger
	Clock     func() time.Time
}

// Service implements the practice operations over a catalog and a
// progress store.
type Service struct {
	catalog  *catalog.Catalog
	progress *progress.Store
	selector *session.Selector
	scorer   *mastery.Service
	ranker   *sentences.Ranker
	resolver *meaning.Resolver
	sink     events.Sink
	log      *zap.Logger
	now      func() time.Time
	topN     int
}

// New creates a service.
func New(cat *catalog.Catalog, store *progress.Store, opts Options) *Service {
	if opts.Session.SessionSize <= 0 {
		opts.Session = session.DefaultConfig()
	}
	if opts.TopN <= 0 {
		opts.TopN = DefaultTopN
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	sink := events.OrNop(opts.Sink)

	return &Service{
		catalog:  cat,
		progress: store,
		selector: session.NewSelector(opts.Session, cat, store, sink),
		scorer:   mastery.NewService(store, sink, mastery.WithClock(opts.Clock)),
		ranker:   sentences.NewRanker(cat, opts.LevelTags, sink),
		resolver: meaning.NewResolver(cat.Variants),
		sink:     sink,
		log:      opts.Logger.Named("app"),
		now:      opts.Clock,
		topN:     opts.TopN,
	}
}

// StartOptions parameterizes StartSession.
type StartOptions struct {
	// Items is the custom list for ModeCustom; other modes ignore it.
	Items []string
	// Seed fixes every random choice. Zero picks one from the clock.
	Seed int64
}

// StartSession selects the entries for a new session in the given mode.
//
// Multiple-choice fails with *session.InsufficientItemsError when the
// learner has fewer than a full session of items. Any mode that finds
// nothing at all to practice fails the same way.
func (s *Service) StartSession(ctx context.Context, mode session.Mode, opts StartOptions) (*session.Session, error) {
	now := s.now()
	seed := opts.Seed
	if seed == 0 {
		seed = now.UnixNano()
	}
	req := session.Request{SessionID: uuid.NewString(), Seed: seed}

	var (
		sel session.Selection
		err error
	)
	switch mode {
	case session.ModeMixed:
		sel = s.selector.Mixed(ctx, req)
	case session.ModeCustom:
		if len(opts.Items) == 0 {
			return nil, fmt.Errorf("custom practice needs at least one item")
		}
		req.Items = opts.Items
		sel = s.selector.Mixed(ctx, req)
	case session.ModeMultipleChoice:
		sel, err = s.selector.MultipleChoice(ctx, req)
		if err != nil {
			return nil, err
		}
	case session.ModePhrases:
		complete := s.ranker.CompletePhrases(s.progress.AtLevel(progress.Learned))
		sel = s.selector.Phrases(ctx, req, complete)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}

	if len(sel.Entries) == 0 {
		return nil, &session.InsufficientItemsError{Mode: mode, Need: 1, Have: 0}
	}

	s.log.Debug("session started",
		zap.String("session_id", req.SessionID),
		zap.String("mode", string(mode)),
		zap.Int("entries", len(sel.Entries)),
		zap.Int64("seed", seed),
	)
	return session.NewWithID(req.SessionID, mode, sel, seed, now), nil
}

// RecordAnswer logs an answer for an item entry and applies it to the
// item's progress. A *progress.PersistError comes back with a valid outcome
// when only the save failed.
func (s *Service) RecordAnswer(ctx context.Context, sess *session.Session, itemID string, correct bool) (mastery.Outcome, error) {
	if e, ok := sess.Entry(itemID); ok && e.Phrase {
		return mastery.Outcome{}, fmt.Errorf("%w: %s is a phrase", ErrPhraseEntry, itemID)
	}
	if _, err := sess.Record(itemID, correct, s.now()); err != nil {
		return mastery.Outcome{}, err
	}

	out, err := s.scorer.RecordAnswer(ctx, sess.ID, itemID, correct)
	if err != nil {
		s.log.Warn("answer not persisted", zap.String("item_id", itemID), zap.Error(err))
	}
	return out, err
}

// RecordPhraseAnswer logs an answer for a phrase entry. Phrase answers do
// not change item progress.
func (s *Service) RecordPhraseAnswer(ctx context.Context, sess *session.Session, phraseID string, correct bool) error {
	if e, ok := sess.Entry(phraseID); ok && !e.Phrase {
		return fmt.Errorf("%w: %s is an item", ErrPhraseEntry, phraseID)
	}
	a, err := sess.Record(phraseID, correct, s.now())
	if err != nil {
		return err
	}

	detail := "incorrect"
	if correct {
		detail = "correct"
	}
	s.sink.Emit(ctx, events.Event{
		Kind:      events.KindAnswer,
		SessionID: sess.ID,
		Time:      a.At,
		Subject:   phraseID,
		Detail:    detail,
	})
	return nil
}

// ForceToLearned marks an item Learned regardless of its progress.
func (s *Service) ForceToLearned(ctx context.Context, itemID string) (mastery.Outcome, error) {
	if _, ok := s.catalog.Item(itemID); !ok {
		return mastery.Outcome{}, fmt.Errorf("%w: %q", ErrUnknownItem, itemID)
	}
	return s.scorer.ForceToLearned(ctx, itemID)
}

// BulkTag sets every item in ids to level (and points, if non-nil) at once.
func (s *Service) BulkTag(ctx context.Context, ids []string, level progress.Level, points *int) error {
	for _, id := range ids {
		if _, ok := s.catalog.Item(id); !ok {
			return fmt.Errorf("%w: %q", ErrUnknownItem, id)
		}
	}
	return s.scorer.BulkSet(ctx, ids, level, points)
}

// TopCandidates returns the n unlearned items that would complete the most
// phrases, each with the phrases it completes. n <= 0 means the default.
func (s *Service) TopCandidates(ctx context.Context, n int) []sentences.Candidate {
	if n <= 0 {
		n = s.topN
	}
	return s.ranker.TopCandidates(ctx, s.progress.AtLevel(progress.Learned), n)
}

// NearComplete lists the phrases learning itemID would complete.
func (s *Service) NearComplete(itemID string) []sentences.PhraseRef {
	return s.ranker.NearComplete(s.progress.AtLevel(progress.Learned), itemID)
}

// PhrasePartition buckets the phrases reachable from the learned set.
func (s *Service) PhrasePartition() sentences.Partition {
	return s.ranker.Partition(s.progress.AtLevel(progress.Learned))
}

// Choices returns n multiple-choice options for an item entry and the
// index of the correct one. Distractors come from the whole catalog.
func (s *Service) Choices(sess *session.Session, itemID string, n int) ([]catalog.Item, int, error) {
	target, ok := s.catalog.Item(itemID)
	if !ok {
		return nil, 0, fmt.Errorf("%w: %q", ErrUnknownItem, itemID)
	}
	opts, idx := session.Choices(target, s.catalog.Items(), n, s.resolver, sess.Seed+int64(sess.Current))
	return opts, idx, nil
}

// Summary tallies a session.
func (s *Service) Summary(sess *session.Session) *session.Summary {
	return session.BuildSummary(sess, s.now())
}

// Progress returns the current record of an item.
func (s *Service) Progress(itemID string) progress.Record {
	return s.progress.Get(itemID)
}

// Counts returns the number of items at each level.
func (s *Service) Counts() map[progress.Level]int {
	return s.progress.Counts()
}

// Catalog returns the catalog the service runs on.
func (s *Service) Catalog() *catalog.Catalog {
	return s.catalog
}
