package tasks

import (
	"context"
	"time"
)

// Repository persists tasks. Reads are owner-scoped and see active records
// only; mutations are guarded updates per the record package contract.
type Repository interface {
	Create(ctx context.Context, task *Task) (*Task, error)
	// List returns the owner's active tasks, optionally filtered by type
	// (pass "" for all).
	List(ctx context.Context, userID string, taskType Type) ([]*Task, error)
	GetOwned(ctx context.Context, id, userID string) (*Task, error)
	// Complete flips status to completed and returns the number of rows the
	// guard matched; 0 can mean missing, foreign, inactive or already done.
	Complete(ctx context.Context, id, userID string, now time.Time) (int64, error)
	SoftDelete(ctx context.Context, id, userID string, now time.Time) error
}
