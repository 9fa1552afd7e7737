package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mzhadan/pomotrack/internal/common"
	"github.com/mzhadan/pomotrack/internal/dbx"
	"github.com/mzhadan/pomotrack/internal/server/record"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, task *Task) (*Task, error) {

	query :=
		`INSERT INTO tasks (user_id, title, description, task_type, status, is_active, created_at, updated_at, version)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		task.UserID, task.Title, task.Description, task.Type, task.Status,
		task.IsActive, task.CreatedAt, task.UpdatedAt, task.Version).Scan(&task.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return task, nil
}

const taskColumns = `id, user_id, title, description, task_type, status, is_active, created_at, updated_at, version`

func (r *PostgresRepository) List(ctx context.Context, userID string, taskType Type) ([]*Task, error) {
	// $2 = '' disables the type filter
	query := `SELECT ` + taskColumns + ` FROM tasks
		 WHERE user_id = $1 AND is_active AND ($2 = '' OR task_type = $2)`

	rows, err := r.db.QueryContext(ctx, query, userID, string(taskType))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*Task
	for rows.Next() {
		var t Task
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Type, &t.Status,
			&t.IsActive, &t.CreatedAt, &t.UpdatedAt, &t.Version); err != nil {
			return nil, err
		}
		result = append(result, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) GetOwned(ctx context.Context, id, userID string) (*Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks
		 WHERE id = $1 AND user_id = $2 AND is_active`

	var t Task
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&t.ID, &t.UserID, &t.Title, &t.Description, &t.Type, &t.Status,
		&t.IsActive, &t.CreatedAt, &t.UpdatedAt, &t.Version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &t, nil
}

func (r *PostgresRepository) Complete(ctx context.Context, id, userID string, now time.Time) (int64, error) {
	query :=
		`UPDATE tasks
		 SET status = 'completed', updated_at = $1, version = version + 1
		 WHERE id = $2 AND user_id = $3 AND is_active AND status <> 'completed'
		 `

	res, err := r.db.ExecContext(ctx, query, now, id, userID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) SoftDelete(ctx context.Context, id, userID string, now time.Time) error {
	query :=
		`UPDATE tasks
		 SET is_active = FALSE, updated_at = $1, version = version + 1
		 WHERE id = $2 AND user_id = $3 AND is_active
		 `

	res, err := r.db.ExecContext(ctx, query, now, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return record.CheckAffected(res)
}
