package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries.
type QueryOpts struct {
	Limit int // max results (0 = unlimited)
}

// Session lifecycle actions.
const (
	ActionStart = "start"
	ActionEnd   = "end"
)

// Timer actions.
const (
	TimerStart  = "start"
	TimerExpire = "expire"
)

// SessionEventData captures a session start or end.
type SessionEventData struct {
	SessionID  string
	Action     string
	Reveals    int   // on end only
	DurationMs int64 // on end only
}

// RevealEventData captures one quest message reveal.
type RevealEventData struct {
	SessionID string
	MessageID string
	Known     bool
}

// TimerEventData captures a countdown start or expiration.
type TimerEventData struct {
	SessionID  string
	Timer      string
	Action     string
	DurationMs int64
}

// CueEventData captures a sound cue request and its outcome.
type CueEventData struct {
	SessionID string
	Cue       string
	Error     string
}

// RevealEventRecord is a persisted reveal.
type RevealEventRecord struct {
	Sequence  int64
	Timestamp time.Time
	SessionID string
	MessageID string
	Known     bool
}

// SessionSummaryRecord summarizes one session for history views.
type SessionSummaryRecord struct {
	SessionID string
	StartedAt time.Time
	EndedAt   time.Time // zero if the session never recorded an end
	Reveals   int
}

// EventRepo provides append and query access to game events.
type EventRepo interface {
	AppendSessionEvent(ctx context.Context, data SessionEventData) error
	AppendRevealEvent(ctx context.Context, data RevealEventData) error
	AppendTimerEvent(ctx context.Context, data TimerEventData) error
	AppendCueEvent(ctx context.Context, data CueEventData) error

	// QuerySessionSummaries returns sessions, most recent first.
	QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error)

	// QueryReveals returns the reveals of a session in reveal order.
	QueryReveals(ctx context.Context, sessionID string) ([]RevealEventRecord, error)
}
