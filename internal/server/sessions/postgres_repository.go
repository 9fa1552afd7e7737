package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mzhadan/pomotrack/internal/common"
	"github.com/mzhadan/pomotrack/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, session *Session) (*Session, error) {

	query :=
		`INSERT INTO sessions (user_id, task_id, timer_type_id, start_time, work_duration, break_duration, status, is_active, created_at, updated_at, version)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		session.UserID, session.TaskID, session.TimerTypeID, session.StartTime,
		session.WorkDuration, session.BreakDuration, session.Status,
		session.IsActive, session.CreatedAt, session.UpdatedAt, session.Version).Scan(&session.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return session, nil
}

func (r *PostgresRepository) List(ctx context.Context, userID string) ([]*Session, error) {
	query :=
		`SELECT id, user_id, task_id, timer_type_id, start_time, end_time, work_duration, break_duration, status, duration, is_active, created_at, updated_at, version
		 FROM sessions
		 WHERE user_id = $1 AND is_active`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*Session
	for rows.Next() {
		var s Session
		if err := rows.Scan(&s.ID, &s.UserID, &s.TaskID, &s.TimerTypeID, &s.StartTime, &s.EndTime,
			&s.WorkDuration, &s.BreakDuration, &s.Status, &s.Duration,
			&s.IsActive, &s.CreatedAt, &s.UpdatedAt, &s.Version); err != nil {
			return nil, err
		}
		result = append(result, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Stop completes the session. The duration is computed inside the same
// statement that flips the status, so endTime, duration and the version bump
// are atomic with the transition and a losing concurrent stop matches
// nothing.
func (r *PostgresRepository) Stop(ctx context.Context, id, userID string, now time.Time) (float64, error) {
	query :=
		`UPDATE sessions
		 SET status = 'completed', end_time = $1,
		     duration = EXTRACT(EPOCH FROM ($1 - start_time)) / 60.0,
		     updated_at = $1, version = version + 1
		 WHERE id = $2 AND user_id = $3 AND status = 'active' AND is_active
		 RETURNING duration
		 `

	var duration float64
	err := r.db.QueryRowContext(ctx, query, now, id, userID).Scan(&duration)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrorNotFound
		}
		return 0, fmt.Errorf("db error: %w", err)
	}
	return duration, nil
}
