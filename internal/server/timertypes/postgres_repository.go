package timertypes

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

func (r *PostgresRepository) List(ctx context.Context) ([]*TimerType, error) {
	query := `SELECT id, type_name, description, is_active, created_at, updated_at, version FROM timer_types
		 WHERE is_active`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*TimerType
	for rows.Next() {
		var t TimerType
		if err := rows.Scan(&t.ID, &t.TypeName, &t.Description,
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
