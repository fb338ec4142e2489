package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/marketplace-auth/internal/domain"
)

// UserRepository defines persistence access for accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByAccount(ctx context.Context, account string) (*domain.User, error)
	GetActiveByAccountRole(ctx context.Context, account string, role domain.Role) (*domain.User, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

// Create inserts the user and assigns its ID. The unique index on account is
// the final arbiter for concurrent registrations: a duplicate insert maps to
// domain.ErrAccountConflict regardless of any earlier lookup.
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (id, account, password_hash, role, is_active)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING created_at`

	user.ID = uuid.NewString()
	err := r.pool.QueryRow(ctx, query,
		user.ID,
		user.Account,
		user.PasswordHash,
		int(user.Role),
		user.IsActive,
	).Scan(&user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return domain.ErrAccountConflict
		}
		return err
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const query = `
        SELECT id, account, password_hash, role, is_active, created_at
        FROM users WHERE id=$1`

	return r.scanOne(ctx, query, id)
}

func (r *userRepository) GetByAccount(ctx context.Context, account string) (*domain.User, error) {
	const query = `
        SELECT id, account, password_hash, role, is_active, created_at
        FROM users WHERE account=$1`

	return r.scanOne(ctx, query, account)
}

// GetActiveByAccountRole looks up by the full login key. Role and active
// status are part of the predicate, so a wrong-role match behaves exactly
// like a missing account.
func (r *userRepository) GetActiveByAccountRole(ctx context.Context, account string, role domain.Role) (*domain.User, error) {
	const query = `
        SELECT id, account, password_hash, role, is_active, created_at
        FROM users WHERE account=$1 AND role=$2 AND is_active=TRUE`

	return r.scanOne(ctx, query, account, int(role))
}

func (r *userRepository) scanOne(ctx context.Context, query string, args ...any) (*domain.User, error) {
	var user domain.User
	var role int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&user.ID,
		&user.Account,
		&user.PasswordHash,
		&role,
		&user.IsActive,
		&user.CreatedAt,
	); err != nil {
		return nil, err
	}
	user.Role = domain.Role(role)
	return &user, nil
}
