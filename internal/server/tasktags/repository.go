package tasktags

import "context"

// Repository persists task-tag links. Inserts are plain appends: duplicate
// links are currently allowed. The delete-many methods back the cascade
// cleanup triggered by tag and task deletion.
type Repository interface {
	Create(ctx context.Context, link *Link) (*Link, error)
	ListByTask(ctx context.Context, taskID string) ([]*Link, error)
	DeleteByTag(ctx context.Context, tagID string) (int64, error)
	DeleteByTask(ctx context.Context, taskID string) (int64, error)
}
