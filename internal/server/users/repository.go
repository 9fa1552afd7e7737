package users

import (
	"context"
	"time"
)

// Repository persists identity records. Lookups only see active users.
type Repository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	// UsernameExists reports whether an active user other than excludeID
	// holds username. Pass "" to check against everyone.
	UsernameExists(ctx context.Context, username, excludeID string) (bool, error)
	// TouchLogin records a successful login: lastLoginAt, updatedAt and the
	// version bump happen in one guarded update.
	TouchLogin(ctx context.Context, id string, now time.Time) error
	// UpdateProfile sets the mutable profile fields (nil means keep) together
	// with updatedAt and the version bump.
	UpdateProfile(ctx context.Context, id string, name, username *string, now time.Time) error
}
