package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendRevealEvent(ctx context.Context, data RevealEventData) error {
	return r.insertEvent(ctx, revealEventsTable.Name,
		[]string{"session_id", "message_id", "known"},
		data.SessionID, data.MessageID, data.Known)
}

func (r *eventRepo) QueryReveals(ctx context.Context, sessionID string) ([]RevealEventRecord, error) {
	b := builder()
	t := b.Table(revealEventsTable.Name)
	sel := b.Select(t.C("sequence"), t.C("timestamp"), t.C("session_id"), t.C("message_id"), t.C("known")).
		From(t).
		Where(entsql.EQ(t.C("session_id"), sessionID)).
		OrderBy(t.C("sequence"))

	var records []RevealEventRecord
	err := r.query(ctx, sel, func(rows *entsql.Rows) error {
		var (
			rec RevealEventRecord
			ts  int64
		)
		if err := rows.Scan(&rec.Sequence, &ts, &rec.SessionID, &rec.MessageID, &rec.Known); err != nil {
			return fmt.Errorf("scan reveal: %w", err)
		}
		rec.Timestamp = fromUnixNano(ts)
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query reveals: %w", err)
	}
	return records, nil
}
