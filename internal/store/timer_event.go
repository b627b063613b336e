package store

import "context"

func (r *eventRepo) AppendTimerEvent(ctx context.Context, data TimerEventData) error {
	return r.insertEvent(ctx, timerEventsTable.Name,
		[]string{"session_id", "timer", "action", "duration_ms"},
		data.SessionID, data.Timer, data.Action, data.DurationMs)
}

func (r *eventRepo) AppendCueEvent(ctx context.Context, data CueEventData) error {
	return r.insertEvent(ctx, cueEventsTable.Name,
		[]string{"session_id", "cue", "error"},
		data.SessionID, data.Cue, data.Error)
}
