// Package timertypes exposes the read-only timer type catalogue
// (e.g. the default Pomodoro 25/5 preset).
package timertypes

import "context"

type Repository interface {
	List(ctx context.Context) ([]*TimerType, error)
}
