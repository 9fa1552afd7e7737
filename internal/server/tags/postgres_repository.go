package tags

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
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

func (r *PostgresRepository) Create(ctx context.Context, tag *Tag) (*Tag, error) {

	query :=
		`INSERT INTO tags (user_id, name, color, is_active, created_at, updated_at, version)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		tag.UserID, tag.Name, tag.Color, tag.IsActive, tag.CreatedAt, tag.UpdatedAt, tag.Version).Scan(&tag.ID)

	if err != nil {
		// partial unique index on (user_id, name) where is_active
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, common.ErrorConflict
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return tag, nil
}

func (r *PostgresRepository) List(ctx context.Context, userID string) ([]*Tag, error) {
	query := `SELECT id, user_id, name, color, is_active, created_at, updated_at, version FROM tags
		 WHERE user_id = $1 AND is_active`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*Tag
	for rows.Next() {
		var t Tag
		if err := rows.Scan(&t.ID, &t.UserID, &t.Name, &t.Color,
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

func (r *PostgresRepository) GetOwned(ctx context.Context, id, userID string) (*Tag, error) {
	query := `SELECT id, user_id, name, color, is_active, created_at, updated_at, version FROM tags
		 WHERE id = $1 AND user_id = $2 AND is_active`

	var t Tag
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&t.ID, &t.UserID, &t.Name, &t.Color, &t.IsActive, &t.CreatedAt, &t.UpdatedAt, &t.Version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &t, nil
}

func (r *PostgresRepository) NameExists(ctx context.Context, userID, name string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM tags WHERE user_id = $1 AND name = $2 AND is_active)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, userID, name).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

func (r *PostgresRepository) SoftDelete(ctx context.Context, id, userID string, now time.Time) error {
	query :=
		`UPDATE tags
		 SET is_active = FALSE, updated_at = $1, version = version + 1
		 WHERE id = $2 AND user_id = $3 AND is_active
		 `

	res, err := r.db.ExecContext(ctx, query, now, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return record.CheckAffected(res)
}
