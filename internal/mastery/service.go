package mastery

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Stohl/tsp-skolan-sub000/internal/events"
	"github.com/Stohl/tsp-skolan-sub000/internal/progress"
)

// Outcome is the result of applying one answer or override to an item.
type Outcome struct {
	ItemID     string
	Record     progress.Record
	Transition *StateTransition
}

// Service applies scoring rules to the progress store and reports every
// decision to the event sink.
type Service struct {
	store *progress.Store
	sink  events.Sink
	now   func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a scoring service over store. sink may be nil.
func NewService(store *progress.Store, sink events.Sink, opts ...Option) *Service {
	s := &Service{
		store: store,
		sink:  events.OrNop(sink),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RecordAnswer applies a correct/incorrect answer to itemID.
//
// A *progress.PersistError is returned alongside a valid Outcome when the
// update could not be saved; the in-memory record is still updated.
func (s *Service) RecordAnswer(ctx context.Context, sessionID, itemID string, correct bool) (Outcome, error) {
	now := s.now()

	var transition *StateTransition
	rec, err := s.store.Modify(ctx, itemID, func(cur progress.Record) progress.Record {
		next, t := Apply(cur, correct, now)
		transition = t
		return next
	})

	detail := "incorrect"
	if correct {
		detail = "correct"
	}
	s.sink.Emit(ctx, events.Event{
		Kind:      events.KindAnswer,
		SessionID: sessionID,
		Time:      now,
		Subject:   itemID,
		Count:     rec.Points,
		Detail:    detail,
	})

	return s.finish(ctx, sessionID, itemID, rec, transition, now, err)
}

// ForceToLearned marks itemID Learned unconditionally.
func (s *Service) ForceToLearned(ctx context.Context, itemID string) (Outcome, error) {
	now := s.now()

	var transition *StateTransition
	rec, err := s.store.Modify(ctx, itemID, func(cur progress.Record) progress.Record {
		next, t := ForceLearned(cur, now)
		transition = t
		return next
	})

	return s.finish(ctx, "", itemID, rec, transition, now, err)
}

// BulkSet puts every item in ids at level (and points, if non-nil) in one
// persisted step. Answer history is left as is.
func (s *Service) BulkSet(ctx context.Context, ids []string, level progress.Level, points *int) error {
	if !level.Valid() {
		return fmt.Errorf("bulk set: invalid level %d", int(level))
	}
	if points != nil && (*points < 0 || *points > progress.MaxPoints) {
		return fmt.Errorf("bulk set: points %d out of range 0-%d", *points, progress.MaxPoints)
	}
	if points != nil && level == progress.Learned && *points != progress.MaxPoints {
		return fmt.Errorf("bulk set: learned items have %d points, got %d", progress.MaxPoints, *points)
	}

	now := s.now()
	err := s.store.BulkSet(ctx, ids, level, points)
	s.sink.Emit(ctx, events.Event{
		Kind:    events.KindTransition,
		Time:    now,
		ItemIDs: ids,
		Count:   len(ids),
		Detail:  TriggerBulk + ":" + level.String(),
	})
	s.warnPersist(ctx, "", now, err)
	return err
}

// Get returns the current record for itemID.
func (s *Service) Get(itemID string) progress.Record {
	return s.store.Get(itemID)
}

func (s *Service) finish(ctx context.Context, sessionID, itemID string, rec progress.Record, t *StateTransition, now time.Time, err error) (Outcome, error) {
	if t != nil {
		t.ItemID = itemID
		s.sink.Emit(ctx, events.Event{
			Kind:      events.KindTransition,
			SessionID: sessionID,
			Time:      now,
			Subject:   itemID,
			Detail:    fmt.Sprintf("%s->%s (%s)", t.From, t.To, t.Trigger),
		})
	}
	s.warnPersist(ctx, sessionID, now, err)
	return Outcome{ItemID: itemID, Record: rec, Transition: t}, err
}

func (s *Service) warnPersist(ctx context.Context, sessionID string, now time.Time, err error) {
	var pe *progress.PersistError
	if errors.As(err, &pe) {
		s.sink.Emit(ctx, events.Event{
			Kind:      events.KindPersistWarning,
			SessionID: sessionID,
			Time:      now,
			Detail:    pe.Error(),
		})
	}
}
