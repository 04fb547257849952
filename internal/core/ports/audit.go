package ports

import (
	"context"

	"github.com/routeai/admin-console/internal/core/domain"
)

// AuditRepository persists the console's audit trail.
type AuditRepository interface {
	Insert(ctx context.Context, entry *domain.AuditEntry) error
	// ListByUser returns the most recent entries targeting a user, newest first.
	ListByUser(ctx context.Context, userID string, limit int64) ([]domain.AuditEntry, error)
}

// AuditRecorder accepts committed mutations for asynchronous persistence.
// Recording never fails the mutation that triggered it.
type AuditRecorder interface {
	Record(entry domain.AuditEntry)
}
