package users

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

// isUniqueViolation detects a partial-unique-index conflict (SQLSTATE 23505),
// the backstop behind the service-level existence checks.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *PostgresRepository) Create(ctx context.Context, user *User) (*User, error) {

	query :=
		`INSERT INTO users (email, username, name, password_hash, user_type, is_active, created_at, updated_at, last_login_at, version)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.Email, user.Username, user.Name, user.PasswordHash, user.UserType,
		user.IsActive, user.CreatedAt, user.UpdatedAt, user.LastLoginAt, user.Version).Scan(&user.ID)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.ErrorConflict
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

const userColumns = `id, email, username, name, password_hash, user_type, is_active, created_at, updated_at, last_login_at, version`

func (r *PostgresRepository) scanUser(row *sql.Row) (*User, error) {
	user := &User{}
	err := row.Scan(&user.ID, &user.Email, &user.Username, &user.Name, &user.PasswordHash,
		&user.UserType, &user.IsActive, &user.CreatedAt, &user.UpdatedAt, &user.LastLoginAt, &user.Version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 AND is_active`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND is_active`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 AND is_active)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

func (r *PostgresRepository) UsernameExists(ctx context.Context, username, excludeID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1 AND id::text <> $2 AND is_active)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, username, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

func (r *PostgresRepository) TouchLogin(ctx context.Context, id string, now time.Time) error {
	query :=
		`UPDATE users
		 SET last_login_at = $1, updated_at = $1, version = version + 1
		 WHERE id = $2 AND is_active
		 `

	res, err := r.db.ExecContext(ctx, query, now, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return record.CheckAffected(res)
}

func (r *PostgresRepository) UpdateProfile(ctx context.Context, id string, name, username *string, now time.Time) error {
	query :=
		`UPDATE users
		 SET name = COALESCE($1, name), username = COALESCE($2, username), updated_at = $3, version = version + 1
		 WHERE id = $4 AND is_active
		 `

	res, err := r.db.ExecContext(ctx, query, name, username, now, id)
	if err != nil {
		if isUniqueViolation(err) {
			return common.ErrorConflict
		}
		return fmt.Errorf("db error: %w", err)
	}
	return record.CheckAffected(res)
}
