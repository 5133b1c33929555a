package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultQueryTimeout = 5 * time.Second

// Repository provides database access for login records.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a new Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CreateAccount persists a new login record.
func (r *Repository) CreateAccount(ctx context.Context, account, passwordHash string) (Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultQueryTimeout)
	defer cancel()

	query := `
INSERT INTO accounts (account, password_hash)
VALUES ($1, $2)
RETURNING id, account, password_hash, created_at;`

	row := r.pool.QueryRow(ctx, query, account, passwordHash)

	var acc Account
	if err := row.Scan(&acc.ID, &acc.Account, &acc.PasswordHash, &acc.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return Account{}, ErrAccountExists
		}
		return Account{}, fmt.Errorf("scan account: %w", err)
	}

	return acc, nil
}

// FindAccount fetches a login record by account name.
func (r *Repository) FindAccount(ctx context.Context, account string) (Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultQueryTimeout)
	defer cancel()

	query := `
SELECT id, account, password_hash, created_at
FROM accounts
WHERE account = $1;`

	var acc Account
	err := r.pool.QueryRow(ctx, query, account).Scan(
		&acc.ID,
		&acc.Account,
		&acc.PasswordHash,
		&acc.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, ErrAccountNotFound
		}
		return Account{}, fmt.Errorf("find account: %w", err)
	}

	return acc, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
