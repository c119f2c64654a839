package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/sifrex/auth-api/internal/core/domain"
	"github.com/sifrex/auth-api/internal/core/guard"
	"github.com/sifrex/auth-api/internal/core/ports"
)

// UserService serves profile reads/writes through the guarded-fetch template
// and admin-only role changes through the ordinal gate.
type UserService struct {
	repo  ports.UserRepository
	audit ports.AuditRepository
	gate  *guard.Guard
	log   zerolog.Logger
}

func NewUserService(repo ports.UserRepository, audit ports.AuditRepository, gate *guard.Guard, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, audit: audit, gate: gate, log: log}
}

func (s *UserService) Profile(ctx context.Context, sess domain.Session) (*domain.User, error) {
	return guard.Fetch(ctx, s.gate, sess, domain.RoleBasic,
		func(ctx context.Context, subjectID string) (*domain.User, error) {
			user, err := s.repo.FindByID(ctx, subjectID)
			if err != nil {
				return nil, err
			}
			return user.Public(), nil
		})
}

func (s *UserService) UpdateProfile(ctx context.Context, sess domain.Session, name string) (*domain.User, error) {
	return guard.Fetch(ctx, s.gate, sess, domain.RoleBasic,
		func(ctx context.Context, subjectID string) (*domain.User, error) {
			user, err := s.repo.UpdateProfile(ctx, subjectID, name)
			if err != nil {
				return nil, err
			}
			return user.Public(), nil
		})
}

// ChangeRole assigns a new role to target. Only admins and above may call it,
// and the new label must already have passed ParseRole at the handler.
func (s *UserService) ChangeRole(ctx context.Context, actor domain.Session, targetID string, role domain.Role, meta ports.RequestMeta) (*domain.User, error) {
	if !actor.Authenticated {
		return nil, domain.ErrUnauthenticated
	}
	if !actor.Role.AtLeast(domain.RoleAdmin) {
		return nil, domain.ErrInsufficientRole
	}
	if !role.Valid() {
		return nil, domain.ErrInsufficientRole
	}

	updated, err := s.repo.UpdateRole(ctx, targetID, role)
	if err != nil {
		return nil, err
	}

	if s.audit != nil {
		event := &domain.AuditEvent{
			UserID:    targetID,
			Type:      domain.AuditRoleChanged,
			Details:   map[string]any{"actor": actor.SubjectID, "new_role": role.String()},
			IP:        meta.IP,
			UserAgent: meta.UserAgent,
			Success:   true,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.audit.Record(ctx, event); err != nil {
			s.log.Error().Err(err).Str("event_type", event.Type).Msg("audit record failed")
		}
	}
	return updated.Public(), nil
}

// AuditTrail returns the newest audit events for target. Admin only; the
// trail feeds the admin surface, never an authorization decision.
func (s *UserService) AuditTrail(ctx context.Context, actor domain.Session, targetID string, limit int64) ([]*domain.AuditEvent, error) {
	if !actor.Authenticated {
		return nil, domain.ErrUnauthenticated
	}
	if !actor.Role.AtLeast(domain.RoleAdmin) {
		return nil, domain.ErrInsufficientRole
	}
	if s.audit == nil {
		return nil, nil
	}
	return s.audit.RecentForUser(ctx, targetID, limit)
}

func (s *UserService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
