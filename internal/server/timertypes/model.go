package timertypes

import "time"

// TimerType is a catalogue entry describing a work/break cycle preset.
// The catalogue is seeded by migration and read-only at runtime.
type TimerType struct {
	ID          string
	TypeName    string
	Description string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Version     int64
}
