package session

import "github.com/golang-jwt/jwt/v5"

// Token types carried in the "typ" claim. Access tokens resolve sessions;
// refresh tokens are only accepted by the refresh endpoint.
const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

const tokenIssuer = "sifrex-auth"

// Claims is the JWT payload for both token types.
type Claims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	Type  string `json:"typ"`
	jwt.RegisteredClaims
}
