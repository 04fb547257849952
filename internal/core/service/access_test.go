package service

import (
	"errors"
	"testing"

	"github.com/routeai/admin-console/internal/core/domain"
)

func TestAccessGate_Evaluate(t *testing.T) {
	gate := NewAccessGate()

	if got := gate.Evaluate(nil); got != domain.AccessPending {
		t.Fatalf("nil session: expected pending, got %s", got)
	}

	admin := &domain.Session{OperatorID: "op1", Role: domain.RoleAdmin}
	if got := gate.Evaluate(admin); got != domain.AccessGranted {
		t.Fatalf("admin: expected granted, got %s", got)
	}

	for _, role := range []domain.Role{domain.RolePro, domain.RoleUser, domain.RoleTester, ""} {
		s := &domain.Session{OperatorID: "op1", Role: role}
		if got := gate.Evaluate(s); got != domain.AccessDenied {
			t.Errorf("role %q: expected denied, got %s", role, got)
		}
	}
}

func TestAccessGate_Admit(t *testing.T) {
	gate := NewAccessGate()

	if err := gate.Admit(&domain.Session{OperatorID: "op1", Role: domain.RoleAdmin}); err != nil {
		t.Fatalf("admin admit failed: %v", err)
	}
	if err := gate.Admit(&domain.Session{OperatorID: "op1", Role: domain.RoleUser}); !errors.Is(err, domain.ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied, got %v", err)
	}
	if err := gate.Admit(nil); !errors.Is(err, domain.ErrAccessDenied) {
		t.Fatalf("pending session must not be admitted, got %v", err)
	}
}
