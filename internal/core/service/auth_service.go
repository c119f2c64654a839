package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/sifrex/auth-api/internal/core/domain"
	"github.com/sifrex/auth-api/internal/core/ports"
	"github.com/sifrex/auth-api/internal/core/session"
)

const (
	// hashCost matches the production setting of the platform; do not lower
	// it outside tests.
	hashCost          = 12
	minPasswordLength = 8
)

// dummyHash is compared against when the identifier is unknown, so the
// wrong-password and no-such-user paths cost roughly the same.
var dummyHash = []byte("$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW")

// AuthService implements registration, credential login, token refresh, and
// OAuth completion.
type AuthService struct {
	repo    ports.UserRepository
	audit   ports.AuditRepository
	limiter ports.LoginLimiter
	issuer  *session.Issuer
	log     zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, audit ports.AuditRepository, limiter ports.LoginLimiter, issuer *session.Issuer, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, audit: audit, limiter: limiter, issuer: issuer, log: log}
}

func (s *AuthService) Register(ctx context.Context, email, name, password string, meta ports.RequestMeta) (*domain.User, error) {
	if email == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if len(password) < minPasswordLength {
		return nil, domain.ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Role:         domain.RoleBasic,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.record(ctx, &domain.AuditEvent{
		UserID:    created.ID,
		Type:      domain.AuditRegistered,
		IP:        meta.IP,
		UserAgent: meta.UserAgent,
		Success:   true,
	})
	return created.Public(), nil
}

// Login verifies credentials for email. The limiter is consulted before any
// storage access, and the unknown-user and wrong-password outcomes are
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string, meta ports.RequestMeta) (*domain.TokenPair, *domain.User, error) {
	if email == "" || password == "" {
		return nil, nil, domain.ErrInvalidCredentials
	}

	res, err := s.limiter.Check(ctx, email)
	if err != nil {
		// Fail closed: a broken limiter must not open the credential path.
		s.log.Error().Err(err).Msg("login limiter unavailable")
		return nil, nil, domain.ErrRateLimited
	}
	if !res.Allowed {
		s.record(ctx, &domain.AuditEvent{
			Type:      domain.AuditLoginLimited,
			Details:   map[string]any{"email": email, "retry_after_s": int(res.RetryAfter.Seconds())},
			IP:        meta.IP,
			UserAgent: meta.UserAgent,
		})
		return nil, nil, &domain.RateLimitError{RetryAfter: res.RetryAfter}
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Burn comparable time before the uniform failure.
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			s.recordLoginFailure(ctx, "", email, meta)
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if user.PasswordHash == "" ||
		bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.recordLoginFailure(ctx, user.ID, email, meta)
		return nil, nil, domain.ErrInvalidCredentials
	}

	if err := s.limiter.Reset(ctx, email); err != nil {
		s.log.Warn().Err(err).Msg("login limiter reset failed")
	}

	pair, err := s.issuer.Pair(user)
	if err != nil {
		return nil, nil, err
	}

	s.record(ctx, &domain.AuditEvent{
		UserID:    user.ID,
		Type:      domain.AuditLoginSucceeded,
		IP:        meta.IP,
		UserAgent: meta.UserAgent,
		Success:   true,
	})
	return pair, user.Public(), nil
}

// Refresh exchanges a valid refresh token for a new pair. The role is reread
// from storage so a role change takes effect on the next renewal.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	subjectID, err := s.issuer.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}

	user, err := s.repo.FindByID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, err
	}

	pair, err := s.issuer.Pair(user)
	if err != nil {
		return nil, err
	}

	s.record(ctx, &domain.AuditEvent{
		UserID:  user.ID,
		Type:    domain.AuditTokenRefreshed,
		Success: true,
	})
	return pair, nil
}

// LoginWithProvider completes an OAuth sign-in: resolve or create the
// identity, make sure the provider account is linked, and issue tokens.
func (s *AuthService) LoginWithProvider(ctx context.Context, provider, providerAccountID, email, name string, meta ports.RequestMeta) (*domain.TokenPair, *domain.User, error) {
	if provider == "" || providerAccountID == "" || email == "" {
		return nil, nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByProviderAccount(ctx, provider, providerAccountID)
	switch {
	case err == nil:
		// already linked
	case errors.Is(err, domain.ErrUserNotFound):
		user, err = s.linkOrCreate(ctx, provider, providerAccountID, email, name)
		if err != nil {
			return nil, nil, err
		}
	default:
		return nil, nil, err
	}

	pair, err := s.issuer.Pair(user)
	if err != nil {
		return nil, nil, err
	}

	s.record(ctx, &domain.AuditEvent{
		UserID:    user.ID,
		Type:      domain.AuditOAuthLogin,
		Details:   map[string]any{"provider": provider},
		IP:        meta.IP,
		UserAgent: meta.UserAgent,
		Success:   true,
	})
	return pair, user.Public(), nil
}

func (s *AuthService) linkOrCreate(ctx context.Context, provider, providerAccountID, email, name string) (*domain.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		now := time.Now().UTC()
		user, err = s.repo.Create(ctx, &domain.User{
			Email:     email,
			Name:      name,
			Role:      domain.RoleBasic,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	if err != nil {
		return nil, err
	}

	if err := s.repo.LinkAccount(ctx, &domain.LinkedAccount{
		UserID:            user.ID,
		Provider:          provider,
		ProviderAccountID: providerAccountID,
		CreatedAt:         time.Now().UTC(),
	}); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) recordLoginFailure(ctx context.Context, userID, email string, meta ports.RequestMeta) {
	s.record(ctx, &domain.AuditEvent{
		UserID:    userID,
		Type:      domain.AuditLoginFailed,
		Details:   map[string]any{"email": email},
		IP:        meta.IP,
		UserAgent: meta.UserAgent,
	})
}

// record appends an audit event. Audit failures are logged, never surfaced;
// the trail is best-effort by design.
func (s *AuthService) record(ctx context.Context, event *domain.AuditEvent) {
	if s.audit == nil {
		return
	}
	event.CreatedAt = time.Now().UTC()
	if err := s.audit.Record(ctx, event); err != nil {
		s.log.Error().Err(err).Str("event_type", event.Type).Msg("audit record failed")
	}
}
