package store

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/Stohl/tsp-skolan-sub000/internal/progress"
)

// insertBatch keeps each INSERT well under SQLite's bound-parameter limit.
const insertBatch = 500

// ProgressRepo implements progress.Persister on the progress table.
type ProgressRepo struct {
	db *sql.DB
}

var _ progress.Persister = (*ProgressRepo)(nil)

// Load returns every stored record keyed by item ID.
func (r *ProgressRepo) Load(ctx context.Context) (map[string]progress.Record, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(colItemID, colLevel, colPoints, colCorrect, colIncorrect, colLastPracticed, colDifficulty).
		From(entsql.Table(progressTable)).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query progress: %w", err)
	}
	defer rows.Close()

	out := make(map[string]progress.Record)
	for rows.Next() {
		var (
			id   string
			rec  progress.Record
			lvl  int
			last string
		)
		if err := rows.Scan(&id, &lvl, &rec.Points, &rec.Stats.Correct, &rec.Stats.Incorrect, &last, &rec.Stats.Difficulty); err != nil {
			return nil, fmt.Errorf("scan progress: %w", err)
		}
		rec.Level = progress.Level(lvl)
		if last != "" {
			t, err := time.Parse(time.RFC3339Nano, last)
			if err != nil {
				return nil, fmt.Errorf("item %s: parse last practiced %q: %w", id, last, err)
			}
			rec.Stats.LastPracticed = t
		}
		out[id] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate progress: %w", err)
	}
	return out, nil
}

// Save replaces the stored records with records in one transaction, so a
// failed save leaves the previous state intact.
func (r *ProgressRepo) Save(ctx context.Context, records map[string]progress.Record) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	del, args := entsql.Dialect(dialect.SQLite).Delete(progressTable).Query()
	if _, err = tx.ExecContext(ctx, del, args...); err != nil {
		return fmt.Errorf("clear progress: %w", err)
	}

	ids := make([]string, 0, len(records))
	for id := range records {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for start := 0; start < len(ids); start += insertBatch {
		ins := entsql.Dialect(dialect.SQLite).
			Insert(progressTable).
			Columns(colItemID, colLevel, colPoints, colCorrect, colIncorrect, colLastPracticed, colDifficulty)
		for _, id := range ids[start:min(start+insertBatch, len(ids))] {
			rec := records[id]
			ins.Values(id, int(rec.Level), rec.Points, rec.Stats.Correct, rec.Stats.Incorrect,
				formatTime(rec.Stats.LastPracticed), rec.Stats.Difficulty)
		}
		query, args := ins.Query()
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert progress: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit progress: %w", err)
	}
	return nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}
