// Package guard holds the authorization decisions: the ordinal role gate and
// the guarded fetch template. Both are pure with respect to HTTP; decisions
// come back as values and the transport layer navigates.
package guard

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/sifrex/auth-api/internal/core/domain"
)

// UnauthorizedPath is where insufficient-role denials land.
const UnauthorizedPath = "/unauthorized"

// SigninPath returns the locale-qualified sign-in path.
func SigninPath(locale string) string {
	return "/" + locale + "/signin"
}

// Guard evaluates sessions against minimum role requirements.
type Guard struct {
	log zerolog.Logger
}

func New(log zerolog.Logger) *Guard {
	return &Guard{log: log}
}

// Authorize gates a resolved session against a minimum role. Unauthenticated
// sessions are sent to the locale-qualified sign-in page; authenticated ones
// below the required rank go to the unauthorized page. Unknown role labels
// cannot reach this point (ParseRole rejects them at every boundary).
func (g *Guard) Authorize(sess domain.Session, min domain.Role, locale string) domain.Decision {
	if !sess.Authenticated {
		return domain.RedirectTo(SigninPath(locale))
	}
	if !sess.Role.AtLeast(min) {
		return domain.RedirectTo(UnauthorizedPath)
	}
	return domain.Allow()
}

// Fetch runs fn only after the session clears the gate for min. Any error fn
// returns is logged with its full cause and replaced by ErrDataAccessDenied;
// callers never see storage detail. There is no path on which fn runs with an
// unresolved session.
func Fetch[T any](ctx context.Context, g *Guard, sess domain.Session, min domain.Role, fn func(ctx context.Context, subjectID string) (T, error)) (T, error) {
	var zero T
	if !sess.Authenticated {
		return zero, domain.ErrUnauthenticated
	}
	if !sess.Role.AtLeast(min) {
		return zero, domain.ErrInsufficientRole
	}
	out, err := fn(ctx, sess.SubjectID)
	if err != nil {
		g.log.Error().
			Err(err).
			Str("subject_id", sess.SubjectID).
			Str("min_role", min.String()).
			Msg("guarded fetch failed")
		return zero, domain.ErrDataAccessDenied
	}
	return out, nil
}
