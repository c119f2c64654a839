package ports

import (
	"context"

	"github.com/sifrex/auth-api/internal/core/domain"
)

type UserService interface {
	Profile(ctx context.Context, sess domain.Session) (*domain.User, error)
	UpdateProfile(ctx context.Context, sess domain.Session, name string) (*domain.User, error)
	ChangeRole(ctx context.Context, actor domain.Session, targetID string, role domain.Role, meta RequestMeta) (*domain.User, error)
	AuditTrail(ctx context.Context, actor domain.Session, targetID string, limit int64) ([]*domain.AuditEvent, error)
	Count(ctx context.Context) (int64, error)
}
