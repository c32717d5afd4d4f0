// Package events carries the structured decision trace emitted by the
// selector, the scoring engine and the ranker. Tests assert on recorded
// events instead of parsing log output.
package events

import (
	"context"
	"slices"
	"sync"
	"time"
)

// Kind identifies what decision an event describes.
type Kind string

const (
	KindSelection         Kind = "selection"
	KindShortfall         Kind = "shortfall"
	KindFallback          Kind = "fallback"
	KindMeaningCollapsed  Kind = "meaning-collapsed"
	KindInsufficientItems Kind = "insufficient-items"
	KindAnswer            Kind = "answer"
	KindTransition        Kind = "transition"
	KindCandidates        Kind = "candidates"
	KindPersistWarning    Kind = "persist-warning"
)

// Event is one decision record.
type Event struct {
	Kind      Kind
	SessionID string
	Time      time.Time
	// Subject is the item or phrase the event is about, if any.
	Subject string
	ItemIDs []string
	Count   int
	Detail  string
}

// Sink receives events. Implementations must be safe for concurrent use.
type Sink interface {
	Emit(ctx context.Context, e Event)
}

// Nop discards every event.
type Nop struct{}

func (Nop) Emit(context.Context, Event) {}

// OrNop returns s, or Nop when s is nil.
func OrNop(s Sink) Sink {
	if s == nil {
		return Nop{}
	}
	return s
}

// Recorder keeps every event in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Emit(_ context.Context, e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e.ItemIDs = slices.Clone(e.ItemIDs)
	r.events = append(r.events, e)
}

// Events returns a copy of everything recorded so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.events)
}

// OfKind returns the recorded events of kind k, in emit order.
func (r *Recorder) OfKind(k Kind) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Event
	for _, e := range r.events {
		if e.Kind == k {
			out = append(out, e)
		}
	}
	return out
}

// Reset drops all recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

// Fanout forwards each event to every sink in order.
type Fanout []Sink

func (f Fanout) Emit(ctx context.Context, e Event) {
	for _, s := range f {
		if s != nil {
			s.Emit(ctx, e)
		}
	}
}
