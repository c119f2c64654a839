package ports

import (
	"context"

	"github.com/sifrex/auth-api/internal/core/domain"
)

// UserRepository defines the persistence interface for identity records.
// The core never issues raw queries; these named operations are the whole
// storage surface.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateRole(ctx context.Context, id string, role domain.Role) (*domain.User, error)
	UpdateProfile(ctx context.Context, id string, name string) (*domain.User, error)
	Count(ctx context.Context) (int64, error)

	LinkAccount(ctx context.Context, acc *domain.LinkedAccount) error
	FindByProviderAccount(ctx context.Context, provider, providerAccountID string) (*domain.User, error)
}
