package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table and column names.
const (
	progressTable = "progress"
	eventsTable   = "events"

	colID            = "id"
	colItemID        = "item_id"
	colLevel         = "level"
	colPoints        = "points"
	colCorrect       = "correct"
	colIncorrect     = "incorrect"
	colLastPracticed = "last_practiced"
	colDifficulty    = "difficulty"

	colSequence  = "sequence"
	colTimestamp = "timestamp"
	colKind      = "kind"
	colSessionID = "session_id"
	colSubject   = "subject"
	colItemIDs   = "item_ids"
	colCount     = "count"
	colDetail    = "detail"
)

var (
	// progressColumns holds one row per touched item.
	progressColumns = []*schema.Column{
		{Name: colItemID, Type: field.TypeString},
		{Name: colLevel, Type: field.TypeInt, Default: 0},
		{Name: colPoints, Type: field.TypeInt, Default: 0},
		{Name: colCorrect, Type: field.TypeInt, Default: 0},
		{Name: colIncorrect, Type: field.TypeInt, Default: 0},
		// RFC 3339 timestamp; empty means never practiced.
		{Name: colLastPracticed, Type: field.TypeString, Default: ""},
		{Name: colDifficulty, Type: field.TypeFloat64, Default: 50},
	}
	progressSchema = &schema.Table{
		Name:       progressTable,
		Columns:    progressColumns,
		PrimaryKey: []*schema.Column{progressColumns[0]},
		Indexes: []*schema.Index{
			{Name: "progress_level", Columns: []*schema.Column{progressColumns[1]}},
		},
	}

	// eventsColumns holds the append-only decision log.
	eventsColumns = []*schema.Column{
		{Name: colID, Type: field.TypeInt, Increment: true},
		{Name: colSequence, Type: field.TypeInt64, Unique: true},
		{Name: colTimestamp, Type: field.TypeString},
		{Name: colKind, Type: field.TypeString},
		{Name: colSessionID, Type: field.TypeString, Default: ""},
		{Name: colSubject, Type: field.TypeString, Default: ""},
		{Name: colItemIDs, Type: field.TypeString, Default: "[]"},
		{Name: colCount, Type: field.TypeInt, Default: 0},
		{Name: colDetail, Type: field.TypeString, Default: ""},
	}
	eventsSchema = &schema.Table{
		Name:       eventsTable,
		Columns:    eventsColumns,
		PrimaryKey: []*schema.Column{eventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "events_session_id", Columns: []*schema.Column{eventsColumns[4]}},
			{Name: "events_kind", Columns: []*schema.Column{eventsColumns[3]}},
		},
	}

	tables = []*schema.Table{progressSchema, eventsSchema}
)

// migrate creates or updates every table.
func migrate(ctx context.Context, drv *entsql.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("new migrate: %w", err)
	}
	return m.Create(ctx, tables...)
}
