package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sifrex/auth-api/internal/core/domain"
)

// Issuer mints and verifies HS256 token pairs. Access tokens expire after a
// fixed short duration; the longer-lived refresh token is the sliding window
// that lets clients renew without re-authenticating.
type Issuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewIssuer(secret string, accessTTL, refreshTTL time.Duration) *Issuer {
	if accessTTL <= 0 {
		accessTTL = 30 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &Issuer{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// Pair issues an access+refresh token pair for the user.
func (i *Issuer) Pair(user *domain.User) (*domain.TokenPair, error) {
	access, err := i.mint(user, TypeAccess, i.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := i.mint(user, TypeRefresh, i.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(i.accessTTL.Seconds()),
	}, nil
}

func (i *Issuer) mint(user *domain.User, typ string, ttl time.Duration) (string, error) {
	now := i.now()
	claims := &Claims{
		Email: user.Email,
		Role:  string(user.Role),
		Type:  typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// VerifyRefresh validates a refresh-typed token and returns the subject id.
// Access tokens, expired tokens, and foreign signatures all fail with
// ErrUnauthenticated.
func (i *Issuer) VerifyRefresh(token string) (string, error) {
	claims, err := parseClaims(token, i.secret)
	if err != nil || claims.Type != TypeRefresh {
		return "", domain.ErrUnauthenticated
	}
	return claims.Subject, nil
}

func parseClaims(token string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, domain.ErrUnauthenticated
	}
	return claims, nil
}
