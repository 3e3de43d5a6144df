package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	domain "github.com/user-importer/internal/domain/user"
)

const uniqueViolation = "23505"

// AccountRepository writes accounts through pgx. Duplicate logins and emails
// are rejected by the unique indexes atomically with the insert and mapped to
// the domain conflict sentinels.
type AccountRepository struct {
	pool *pgxpool.Pool
}

func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

func (r *AccountRepository) Create(ctx context.Context, account domain.Account) (string, error) {
	var id string
	err := r.pool.QueryRow(ctx, `
INSERT INTO accounts (login, email, password, first_name, last_name, display_name, role, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
RETURNING id
`, account.Login, account.Email, account.Password, account.FirstName, account.LastName, account.DisplayName, account.Role).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			if strings.Contains(pgErr.ConstraintName, "email") {
				return "", domain.ErrDuplicateEmail
			}
			return "", domain.ErrDuplicateLogin
		}
		return "", fmt.Errorf("insert account: %w", err)
	}
	return id, nil
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var account domain.Account
	err := r.pool.QueryRow(ctx, `
SELECT id, login, email, first_name, last_name, display_name, role
FROM accounts
WHERE email = $1
`, email).Scan(&account.ID, &account.Login, &account.Email, &account.FirstName, &account.LastName, &account.DisplayName, &account.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("get account by email: %w", err)
	}
	return &account, nil
}
