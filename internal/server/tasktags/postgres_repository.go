package tasktags

import (
	"context"
	"fmt"

	"github.com/mzhadan/pomotrack/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, link *Link) (*Link, error) {

	query :=
		`INSERT INTO task_tags (user_id, task_id, tag_id, created_at, version)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		link.UserID, link.TaskID, link.TagID, link.CreatedAt, link.Version).Scan(&link.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return link, nil
}

func (r *PostgresRepository) ListByTask(ctx context.Context, taskID string) ([]*Link, error) {
	query := `SELECT id, user_id, task_id, tag_id, created_at, version FROM task_tags
		 WHERE task_id = $1`

	rows, err := r.db.QueryContext(ctx, query, taskID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*Link
	for rows.Next() {
		var l Link
		if err := rows.Scan(&l.ID, &l.UserID, &l.TaskID, &l.TagID, &l.CreatedAt, &l.Version); err != nil {
			return nil, err
		}
		result = append(result, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteByTag hard-deletes every link referencing tagID. Not owner-checked:
// callers only reach this after a guarded delete of the tag itself.
func (r *PostgresRepository) DeleteByTag(ctx context.Context, tagID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM task_tags WHERE tag_id = $1`, tagID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) DeleteByTask(ctx context.Context, taskID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM task_tags WHERE task_id = $1`, taskID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return n, nil
}
