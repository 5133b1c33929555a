package userinfo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const repoTimeout = 5 * time.Second

// Repository provides access to user-info storage.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository builds a new user-info repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListAll returns every stored record, newest first.
func (r *Repository) ListAll(ctx context.Context) ([]UserInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	query := `
SELECT id, name, age, interests, created_at, updated_at
FROM user_infos
ORDER BY created_at DESC;`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list user infos: %w", err)
	}
	defer rows.Close()

	var infos []UserInfo
	for rows.Next() {
		var info UserInfo
		if err := rows.Scan(&info.ID, &info.Name, &info.Age, &info.Interests, &info.CreatedAt, &info.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan user info: %w", err)
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user infos: %w", err)
	}
	return infos, nil
}

// Create inserts a new record.
func (r *Repository) Create(ctx context.Context, name string, age int, interests []string) (UserInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	if interests == nil {
		interests = []string{}
	}

	query := `
INSERT INTO user_infos (name, age, interests)
VALUES ($1, $2, $3)
RETURNING id, name, age, interests, created_at, updated_at;`

	var info UserInfo
	err := r.pool.QueryRow(ctx, query, name, age, interests).Scan(
		&info.ID, &info.Name, &info.Age, &info.Interests, &info.CreatedAt, &info.UpdatedAt,
	)
	if err != nil {
		return UserInfo{}, fmt.Errorf("create user info: %w", err)
	}
	return info, nil
}

// Update replaces the mutable fields of an existing record.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, name string, age int, interests []string) (UserInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	if interests == nil {
		interests = []string{}
	}

	query := `
UPDATE user_infos
SET name = $2, age = $3, interests = $4, updated_at = now()
WHERE id = $1
RETURNING id, name, age, interests, created_at, updated_at;`

	var info UserInfo
	err := r.pool.QueryRow(ctx, query, id, name, age, interests).Scan(
		&info.ID, &info.Name, &info.Age, &info.Interests, &info.CreatedAt, &info.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return UserInfo{}, ErrNotFound
		}
		return UserInfo{}, fmt.Errorf("update user info: %w", err)
	}
	return info, nil
}

// Delete removes a record by its internal key.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx, `DELETE FROM user_infos WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete user info: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
