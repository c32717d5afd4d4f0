package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"go.uber.org/zap"

	"github.com/Stohl/tsp-skolan-sub000/internal/events"
)

// tsLayout is a fixed-width UTC timestamp, so stored values sort as text.
const tsLayout = "2006-01-02T15:04:05.000000000Z07:00"

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit     int   // max results (0 = unlimited)
	After     int64 // sequence > After
	SessionID string
	Kind      events.Kind
}

// EventRecord is a stored event with its global sequence number.
type EventRecord struct {
	Sequence int64
	Event    events.Event
}

// SessionStats summarizes the answers logged for one session.
type SessionStats struct {
	SessionID string
	StartedAt time.Time
	Answers   int
	Correct   int
}

// EventRepo is the append-only event log. It implements events.Sink.
type EventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
	log *zap.Logger
}

var _ events.Sink = (*EventRepo)(nil)

// Emit appends e, logging instead of returning any storage error.
func (r *EventRepo) Emit(ctx context.Context, e events.Event) {
	if _, err := r.Append(ctx, e); err != nil {
		r.log.Warn("append event failed", zap.String("kind", string(e.Kind)), zap.Error(err))
	}
}

// Append stores e and returns its sequence number.
func (r *EventRepo) Append(ctx context.Context, e events.Event) (int64, error) {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}

	if e.Time.IsZero() {
		e.Time = time.Now()
	}
	ids := e.ItemIDs
	if ids == nil {
		ids = []string{}
	}
	idsJSON, err := json.Marshal(ids)
	if err != nil {
		return 0, fmt.Errorf("marshal item ids: %w", err)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(eventsTable).
		Columns(colSequence, colTimestamp, colKind, colSessionID, colSubject, colItemIDs, colCount, colDetail).
		Values(seqNum, e.Time.UTC().Format(tsLayout), string(e.Kind), e.SessionID, e.Subject, string(idsJSON), e.Count, e.Detail).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return 0, fmt.Errorf("save %s event: %w", e.Kind, err)
	}
	return seqNum, nil
}

// QueryEvents returns matching events, newest first.
func (r *EventRepo) QueryEvents(ctx context.Context, opts QueryOpts) ([]EventRecord, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(colSequence, colTimestamp, colKind, colSessionID, colSubject, colItemIDs, colCount, colDetail).
		From(entsql.Table(eventsTable))

	var preds []*entsql.Predicate
	if opts.After > 0 {
		preds = append(preds, entsql.GT(colSequence, opts.After))
	}
	if opts.SessionID != "" {
		preds = append(preds, entsql.EQ(colSessionID, opts.SessionID))
	}
	if opts.Kind != "" {
		preds = append(preds, entsql.EQ(colKind, string(opts.Kind)))
	}
	if len(preds) > 0 {
		sel.Where(entsql.And(preds...))
	}
	sel.OrderBy(entsql.Desc(colSequence))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var out []EventRecord
	for rows.Next() {
		var (
			rec     EventRecord
			ts      string
			kind    string
			idsJSON string
		)
		if err := rows.Scan(&rec.Sequence, &ts, &kind, &rec.Event.SessionID, &rec.Event.Subject, &idsJSON, &rec.Event.Count, &rec.Event.Detail); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		rec.Event.Kind = events.Kind(kind)
		if rec.Event.Time, err = time.Parse(tsLayout, ts); err != nil {
			return nil, fmt.Errorf("event %d: parse timestamp: %w", rec.Sequence, err)
		}
		if err := json.Unmarshal([]byte(idsJSON), &rec.Event.ItemIDs); err != nil {
			return nil, fmt.Errorf("event %d: decode item ids: %w", rec.Sequence, err)
		}
		if len(rec.Event.ItemIDs) == 0 {
			rec.Event.ItemIDs = nil
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return out, nil
}

// RecentSessions tallies answer events per session, most recent first.
func (r *EventRepo) RecentSessions(ctx context.Context, limit int) ([]SessionStats, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(
			colSessionID,
			entsql.Min(colTimestamp),
			entsql.Count("*"),
			"SUM(CASE WHEN detail = 'correct' THEN 1 ELSE 0 END)",
		).
		From(entsql.Table(eventsTable)).
		Where(entsql.And(
			entsql.EQ(colKind, string(events.KindAnswer)),
			entsql.NEQ(colSessionID, ""),
		)).
		GroupBy(colSessionID).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionStats
	for rows.Next() {
		var (
			st SessionStats
			ts string
		)
		if err := rows.Scan(&st.SessionID, &ts, &st.Answers, &st.Correct); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		if st.StartedAt, err = time.Parse(tsLayout, ts); err != nil {
			return nil, fmt.Errorf("session %s: parse timestamp: %w", st.SessionID, err)
		}
		out = append(out, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].StartedAt.After(out[j].StartedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
