package ports

import (
	"context"

	"github.com/sifrex/auth-api/internal/core/domain"
)

// AuditRepository appends events to the audit trail. Implementations must be
// safe for concurrent use; Record failures are logged by callers and never
// abort the request that produced the event.
type AuditRepository interface {
	Record(ctx context.Context, event *domain.AuditEvent) error
	RecentForUser(ctx context.Context, userID string, limit int64) ([]*domain.AuditEvent, error)
}
