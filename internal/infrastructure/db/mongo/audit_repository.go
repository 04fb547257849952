package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/routeai/admin-console/internal/core/domain"
)

const auditCollection = "console_audit"

// AuditRepository persists committed console mutations to the console_audit
// collection.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

type auditDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	OperatorID  string             `bson:"operator_id"`
	UserID      string             `bson:"user_id"`
	Action      string             `bson:"action"`
	Role        string             `bson:"role,omitempty"`
	AmountCents int64              `bson:"amount_cents,omitempty"`
	Reason      string             `bson:"reason,omitempty"`
	At          int64              `bson:"at"`
}

func (r *AuditRepository) Insert(ctx context.Context, entry *domain.AuditEntry) error {
	doc := auditDoc{
		OperatorID:  entry.OperatorID,
		UserID:      entry.UserID,
		Action:      string(entry.Action),
		Role:        string(entry.Role),
		AmountCents: entry.AmountCents,
		Reason:      entry.Reason,
		At:          entry.At.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// ListByUser returns the most recent entries targeting a user, newest first.
func (r *AuditRepository) ListByUser(ctx context.Context, userID string, limit int64) ([]domain.AuditEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	opts := options.Find().SetSort(bson.D{{Key: "at", Value: -1}}).SetLimit(limit)
	cur, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find audit entries: %w", err)
	}
	defer cur.Close(ctx)

	var entries []domain.AuditEntry
	for cur.Next(ctx) {
		var doc auditDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode audit entry: %w", err)
		}
		entries = append(entries, domain.AuditEntry{
			OperatorID:  doc.OperatorID,
			UserID:      doc.UserID,
			Action:      domain.AuditAction(doc.Action),
			Role:        domain.Role(doc.Role),
			AmountCents: doc.AmountCents,
			Reason:      doc.Reason,
			At:          time.Unix(doc.At, 0).UTC(),
		})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit entries: %w", err)
	}
	return entries, nil
}
