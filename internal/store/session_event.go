package store

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	return r.insertEvent(ctx, sessionEventsTable.Name,
		[]string{"session_id", "action", "reveals", "duration_ms"},
		data.SessionID, data.Action, data.Reveals, data.DurationMs)
}

func (r *eventRepo) QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error) {
	b := builder()
	t := b.Table(sessionEventsTable.Name)
	sel := b.Select(
		t.C("session_id"),
		entsql.Min(t.C("timestamp")),
		fmt.Sprintf("MAX(CASE WHEN %s = '%s' THEN %s END)", t.C("action"), ActionEnd, t.C("timestamp")),
	).
		From(t).
		GroupBy(t.C("session_id")).
		OrderBy(entsql.Desc(entsql.Min(t.C("sequence"))))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	var records []SessionSummaryRecord
	err := r.query(ctx, sel, func(rows *entsql.Rows) error {
		var (
			rec     SessionSummaryRecord
			started int64
			ended   sql.NullInt64
		)
		if err := rows.Scan(&rec.SessionID, &started, &ended); err != nil {
			return fmt.Errorf("scan session summary: %w", err)
		}
		rec.StartedAt = fromUnixNano(started)
		if ended.Valid {
			rec.EndedAt = fromUnixNano(ended.Int64)
		}
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query session summaries: %w", err)
	}
	if len(records) == 0 {
		return records, nil
	}

	counts, err := r.revealCounts(ctx, records)
	if err != nil {
		return nil, err
	}
	for i := range records {
		records[i].Reveals = counts[records[i].SessionID]
	}
	return records, nil
}

// revealCounts returns the number of reveals per session id.
func (r *eventRepo) revealCounts(ctx context.Context, sessions []SessionSummaryRecord) (map[string]int, error) {
	ids := make([]any, len(sessions))
	for i, s := range sessions {
		ids[i] = s.SessionID
	}

	b := builder()
	t := b.Table(revealEventsTable.Name)
	sel := b.Select(t.C("session_id"), entsql.Count("*")).
		From(t).
		Where(entsql.In(t.C("session_id"), ids...)).
		GroupBy(t.C("session_id"))

	counts := make(map[string]int, len(sessions))
	err := r.query(ctx, sel, func(rows *entsql.Rows) error {
		var (
			id string
			n  int
		)
		if err := rows.Scan(&id, &n); err != nil {
			return fmt.Errorf("scan reveal count: %w", err)
		}
		counts[id] = n
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query reveal counts: %w", err)
	}
	return counts, nil
}
