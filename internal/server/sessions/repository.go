package sessions

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, session *Session) (*Session, error)
	List(ctx context.Context, userID string) ([]*Session, error)
	// Stop completes an active owned session in one guarded update that also
	// computes the elapsed minutes; zero matched rows — missing, foreign,
	// or not active anymore — yields ErrorNotFound.
	Stop(ctx context.Context, id, userID string, now time.Time) (float64, error)
}
