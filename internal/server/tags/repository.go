package tags

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, tag *Tag) (*Tag, error)
	List(ctx context.Context, userID string) ([]*Tag, error)
	GetOwned(ctx context.Context, id, userID string) (*Tag, error)
	// NameExists reports whether the owner already has an active tag named name.
	NameExists(ctx context.Context, userID, name string) (bool, error)
	SoftDelete(ctx context.Context, id, userID string, now time.Time) error
}
