package domain

import "time"

// Audit event types recorded by the services.
const (
	AuditLoginSucceeded = "login_succeeded"
	AuditLoginFailed    = "login_failed"
	AuditLoginLimited   = "login_rate_limited"
	AuditRegistered     = "user_registered"
	AuditRoleChanged    = "role_changed"
	AuditTokenRefreshed = "token_refreshed"
	AuditOAuthLogin     = "oauth_login"
)

// AuditEvent is one append-only entry in the audit trail.
type AuditEvent struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id,omitempty"`
	Type      string         `json:"type"`
	Details   map[string]any `json:"details,omitempty"`
	IP        string         `json:"ip,omitempty"`
	UserAgent string         `json:"user_agent,omitempty"`
	Success   bool           `json:"success"`
	CreatedAt time.Time      `json:"created_at"`
}
