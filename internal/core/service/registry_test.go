package service

import (
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/routeai/admin-console/internal/core/domain"
)

func TestRegistry_OneConsolePerOperator(t *testing.T) {
	reg := NewRegistry(&stubDirectory{users: testUsers()}, nil, nil, zerolog.Nop())

	first, err := reg.Console(operator)
	if err != nil {
		t.Fatalf("console failed: %v", err)
	}
	second, err := reg.Console(operator)
	if err != nil {
		t.Fatalf("console failed: %v", err)
	}
	if first != second {
		t.Fatalf("same operator must get the same console")
	}

	other, err := reg.Console(domain.Session{OperatorID: "op2", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("console failed: %v", err)
	}
	if other == first {
		t.Fatalf("different operators must not share a console")
	}
}

func TestRegistry_DeniesNonAdmin(t *testing.T) {
	reg := NewRegistry(&stubDirectory{users: testUsers()}, nil, nil, zerolog.Nop())

	if _, err := reg.Console(domain.Session{OperatorID: "op2", Role: domain.RoleUser}); err == nil {
		t.Fatalf("expected error")
	}
	if len(reg.consoles) != 0 {
		t.Fatalf("denied session must not leave a console behind")
	}
}

func TestRegistry_RevokedSessionLosesConsole(t *testing.T) {
	reg := NewRegistry(&stubDirectory{users: testUsers()}, nil, nil, zerolog.Nop())

	first, _ := reg.Console(operator)
	reg.Revoke(operator.OperatorID)

	second, err := reg.Console(operator)
	if err != nil {
		t.Fatalf("console failed: %v", err)
	}
	if first == second {
		t.Fatalf("revoked operator must get a fresh console")
	}
}

func TestRegistry_EvictsIdleConsoles(t *testing.T) {
	reg := NewRegistry(&stubDirectory{users: testUsers()}, nil, nil, zerolog.Nop())

	clock := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	reg.now = func() time.Time { return clock }

	first, _ := reg.Console(operator)

	clock = clock.Add(defaultConsoleIdleTTL + time.Minute)
	second, err := reg.Console(operator)
	if err != nil {
		t.Fatalf("console failed: %v", err)
	}
	if first == second {
		t.Fatalf("idle console must be evicted and rebuilt")
	}
}
