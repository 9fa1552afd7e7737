package sessions

import (
	"time"

	"github.com/mzhadan/pomotrack/internal/server/record"
)

// Status is the session state machine. The only exposed transition is
// active → completed; paused exists in the data model but no operation
// produces or consumes it yet.
type Status string

const (
	StatusActive    Status = "active"
	StatusPaused    Status = "paused"
	StatusCompleted Status = "completed"
)

// Session is one timed work/break run. TaskID is nil for untethered focus
// time. EndTime and Duration are set together, exactly once, when the
// session completes; Duration is elapsed wall-clock minutes, not rounded.
type Session struct {
	record.Meta
	TaskID        *string
	TimerTypeID   string
	StartTime     time.Time
	EndTime       *time.Time
	WorkDuration  int
	BreakDuration int
	Status        Status
	Duration      *float64
}
