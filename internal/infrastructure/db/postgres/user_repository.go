package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/sifrex/auth-api/internal/core/domain"
)

const uniqueViolation = "23505"

// UserRepository persists identity records and provider account links.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	id := user.ID
	if id == "" {
		id = uuid.NewString()
	}
	now := time.Now().UTC()

	var hash sql.NullString
	if user.PasswordHash != "" {
		hash = sql.NullString{String: user.PasswordHash, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, email, name, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id, user.Email, user.Name, hash, string(user.Role), now, now,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return r.FindByID(ctx, id)
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, `SELECT id, email, name, password_hash, role, created_at, updated_at
		FROM users WHERE id = $1`, id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, `SELECT id, email, name, password_hash, role, created_at, updated_at
		FROM users WHERE email = $1`, email)
}

func (r *UserRepository) UpdateRole(ctx context.Context, id string, role domain.Role) (*domain.User, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET role = $2, updated_at = now() WHERE id = $1`,
		id, string(role),
	)
	if err != nil {
		return nil, fmt.Errorf("update role: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, domain.ErrUserNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id string, name string) (*domain.User, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET name = $2, updated_at = now() WHERE id = $1`,
		id, name,
	)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, domain.ErrUserNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

func (r *UserRepository) LinkAccount(ctx context.Context, acc *domain.LinkedAccount) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO linked_accounts (user_id, provider, provider_account_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (provider, provider_account_id) DO NOTHING`,
		acc.UserID, acc.Provider, acc.ProviderAccountID, acc.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("link account: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByProviderAccount(ctx context.Context, provider, providerAccountID string) (*domain.User, error) {
	return r.findOne(ctx, `
		SELECT u.id, u.email, u.name, u.password_hash, u.role, u.created_at, u.updated_at
		FROM users u
		JOIN linked_accounts a ON a.user_id = u.id
		WHERE a.provider = $1 AND a.provider_account_id = $2`,
		provider, providerAccountID)
}

func (r *UserRepository) findOne(ctx context.Context, query string, args ...any) (*domain.User, error) {
	var (
		user      domain.User
		hash      sql.NullString
		roleLabel string
	)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&user.ID, &user.Email, &user.Name, &hash, &roleLabel, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	role, err := domain.ParseRole(roleLabel)
	if err != nil {
		// Reject bad labels at deserialization, not at the gate.
		return nil, fmt.Errorf("user %s: %w", user.ID, err)
	}
	user.Role = role
	user.PasswordHash = hash.String
	return &user, nil
}
