package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Every event table carries the global sequence number and a UTC timestamp
// in unix nanoseconds.
func eventColumns(extra ...*schema.Column) []*schema.Column {
	return append([]*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeInt64},
		{Name: "session_id", Type: field.TypeString},
	}, extra...)
}

func eventTable(name string, extra ...*schema.Column) *schema.Table {
	cols := eventColumns(extra...)
	return &schema.Table{
		Name:       name,
		Columns:    cols,
		PrimaryKey: []*schema.Column{cols[0]},
		Indexes: []*schema.Index{
			{Name: name + "_session_id", Columns: []*schema.Column{cols[3]}},
		},
	}
}

var (
	sessionEventsTable = eventTable("session_events",
		&schema.Column{Name: "action", Type: field.TypeString},
		&schema.Column{Name: "reveals", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "duration_ms", Type: field.TypeInt64, Default: 0},
	)
	revealEventsTable = eventTable("reveal_events",
		&schema.Column{Name: "message_id", Type: field.TypeString},
		&schema.Column{Name: "known", Type: field.TypeBool, Default: true},
	)
	timerEventsTable = eventTable("timer_events",
		&schema.Column{Name: "timer", Type: field.TypeString},
		&schema.Column{Name: "action", Type: field.TypeString},
		&schema.Column{Name: "duration_ms", Type: field.TypeInt64, Default: 0},
	)
	cueEventsTable = eventTable("cue_events",
		&schema.Column{Name: "cue", Type: field.TypeString},
		&schema.Column{Name: "error", Type: field.TypeString, Default: ""},
	)

	globalSequenceColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt},
		{Name: "next_val", Type: field.TypeInt64, Default: 1},
	}
	globalSequenceTable = &schema.Table{
		Name:       "global_sequence",
		Columns:    globalSequenceColumns,
		PrimaryKey: []*schema.Column{globalSequenceColumns[0]},
	}

	tables = []*schema.Table{
		sessionEventsTable,
		revealEventsTable,
		timerEventsTable,
		cueEventsTable,
		globalSequenceTable,
	}
)
