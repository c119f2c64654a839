package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sifrex/auth-api/internal/core/domain"
)

const auditCollection = "audit_events"

// AuditRepository appends audit events to a capped-growth collection.
// The trail is append-only; nothing here updates or deletes.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

type auditDoc struct {
	ID        string         `bson:"_id"`
	UserID    string         `bson:"user_id,omitempty"`
	Type      string         `bson:"type"`
	Details   map[string]any `bson:"details,omitempty"`
	IP        string         `bson:"ip,omitempty"`
	UserAgent string         `bson:"user_agent,omitempty"`
	Success   bool           `bson:"success"`
	CreatedAt int64          `bson:"created_at"`
}

func (r *AuditRepository) Record(ctx context.Context, event *domain.AuditEvent) error {
	id := event.ID
	if id == "" {
		id = uuid.NewString()
	}
	created := event.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}

	doc := auditDoc{
		ID:        id,
		UserID:    event.UserID,
		Type:      event.Type,
		Details:   event.Details,
		IP:        event.IP,
		UserAgent: event.UserAgent,
		Success:   event.Success,
		CreatedAt: created.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

// RecentForUser returns the latest events for one subject, newest first.
// Used by the admin surface, not by any authorization decision.
func (r *AuditRepository) RecentForUser(ctx context.Context, userID string, limit int64) ([]*domain.AuditEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cur, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find audit events: %w", err)
	}
	defer cur.Close(ctx)

	var events []*domain.AuditEvent
	for cur.Next(ctx) {
		var doc auditDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode audit event: %w", err)
		}
		events = append(events, &domain.AuditEvent{
			ID:        doc.ID,
			UserID:    doc.UserID,
			Type:      doc.Type,
			Details:   doc.Details,
			IP:        doc.IP,
			UserAgent: doc.UserAgent,
			Success:   doc.Success,
			CreatedAt: time.Unix(doc.CreatedAt, 0).UTC(),
		})
	}
	return events, cur.Err()
}
