package ports

import (
	"context"

	"github.com/routeai/admin-console/internal/core/domain"
)

// UserDirectory is the upstream user service the console consumes. It is the
// sole authority on user data: mutations return the server-confirmed result
// and the console applies exactly that, never a locally derived value.
//
// Failures are either a *domain.RemoteError (structured rejection or
// transport fault) or a context error.
type UserDirectory interface {
	// ListUsers returns the full managed-user list in server-defined order.
	ListUsers(ctx context.Context) ([]domain.User, error)

	// UpdateRole sets the user's role. The summary is optional free text
	// forwarded to the server for its own audit trail.
	UpdateRole(ctx context.Context, userID string, role domain.Role, summary string) error

	// AdjustCredits applies a signed credit mutation and returns the new
	// authoritative balance in cents.
	AdjustCredits(ctx context.Context, userID string, amountCents int64, reason string) (int64, error)
}
