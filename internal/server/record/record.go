// Package record defines the lifecycle contract shared by every owned
// entity (tasks, tags, sessions, task-tag links): owner scoping, soft
// deletion, and optimistic versioning.
//
// Reads are always filtered to the caller's active records. Mutations are
// single guarded UPDATE statements that match id + owner + active flag plus
// any expected prior state and set version = version + 1 together with the
// field change; a concurrent writer that lost the race matches zero rows
// and receives ErrorNotFound instead of silently clobbering anything.
package record

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mzhadan/pomotrack/internal/common"
)

// Meta carries the lifecycle fields every owned record stores.
type Meta struct {
	ID        string
	UserID    string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
	Version   int64
}

// NewMeta returns the lifecycle fields of a freshly created record:
// active, version 1, both timestamps equal to now.
func NewMeta(userID string, now time.Time) Meta {
	return Meta{
		UserID:    userID,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
		Version:   1,
	}
}

// CheckAffected maps the result of a guarded single-row UPDATE to the shared
// outcome: zero rows means the predicate (id + owner + active + expected
// state) matched nothing and the caller gets ErrorNotFound, deliberately
// collapsing "doesn't exist", "not yours" and "wrong state".
func CheckAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}
