package ports

import (
	"context"

	"github.com/sifrex/auth-api/internal/core/domain"
)

// RequestMeta carries transport-level facts the services only record, never
// branch on.
type RequestMeta struct {
	IP        string
	UserAgent string
}

type AuthService interface {
	Register(ctx context.Context, email, name, password string, meta RequestMeta) (*domain.User, error)
	Login(ctx context.Context, email, password string, meta RequestMeta) (*domain.TokenPair, *domain.User, error)
	Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error)
	LoginWithProvider(ctx context.Context, provider, providerAccountID, email, name string, meta RequestMeta) (*domain.TokenPair, *domain.User, error)
}
