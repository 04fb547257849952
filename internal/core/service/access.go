package service

import (
	"github.com/routeai/admin-console/internal/core/domain"
)

// AccessGate gates all console functionality behind the admin role. It is a
// pure predicate with three observable states and no side effects.
type AccessGate struct{}

func NewAccessGate() *AccessGate {
	return &AccessGate{}
}

// Evaluate returns the gate state for a session. A nil session means the
// identity has not resolved yet; callers should keep rendering a loading
// state rather than denying.
func (g *AccessGate) Evaluate(session *domain.Session) domain.AccessState {
	if session == nil {
		return domain.AccessPending
	}
	if session.Role != domain.RoleAdmin {
		return domain.AccessDenied
	}
	return domain.AccessGranted
}

// Admit returns ErrAccessDenied unless the session resolves to an admin.
func (g *AccessGate) Admit(session *domain.Session) error {
	if g.Evaluate(session) != domain.AccessGranted {
		return domain.ErrAccessDenied
	}
	return nil
}
