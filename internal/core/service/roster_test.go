package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/routeai/admin-console/internal/core/domain"
)

// stubDirectory is a scriptable ports.UserDirectory.
type stubDirectory struct {
	users    []domain.User
	listErr  error
	listCall int

	roleErr    error
	roleCalls  []string
	creditErr  error
	newBalance int64
	creditCall int
}

func (d *stubDirectory) ListUsers(context.Context) ([]domain.User, error) {
	d.listCall++
	if d.listErr != nil {
		return nil, d.listErr
	}
	out := make([]domain.User, len(d.users))
	copy(out, d.users)
	return out, nil
}

func (d *stubDirectory) UpdateRole(_ context.Context, userID string, role domain.Role, _ string) error {
	d.roleCalls = append(d.roleCalls, userID+":"+string(role))
	return d.roleErr
}

func (d *stubDirectory) AdjustCredits(_ context.Context, _ string, _ int64, _ string) (int64, error) {
	d.creditCall++
	if d.creditErr != nil {
		return 0, d.creditErr
	}
	return d.newBalance, nil
}

func cents(n int64) *int64 {
	return &n
}

func testUsers() []domain.User {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	return []domain.User{
		{ID: "u3", Email: "c@x.com", Role: domain.RoleUser, CreatedAt: now, BalanceCents: cents(500)},
		{ID: "u1", Email: "a@x.com", Role: domain.RoleAdmin, CreatedAt: now},
		{ID: "u2", Email: "b@x.com", Role: domain.RolePro, CreatedAt: now, BalanceCents: cents(-250)},
	}
}

func TestRoster_Load_PreservesServerOrder(t *testing.T) {
	dir := &stubDirectory{users: testUsers()}
	roster := NewRoster(dir, zerolog.Nop())

	if err := roster.Load(context.Background()); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	got := roster.Users()
	want := []string{"u3", "u1", "u2"}
	if len(got) != len(want) {
		t.Fatalf("expected %d users, got %d", len(want), len(got))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, got[i].ID)
		}
	}
}

func TestRoster_Load_Idempotent(t *testing.T) {
	dir := &stubDirectory{users: testUsers()}
	roster := NewRoster(dir, zerolog.Nop())

	if err := roster.Load(context.Background()); err != nil {
		t.Fatalf("first load failed: %v", err)
	}
	first := roster.Users()

	if err := roster.Load(context.Background()); err != nil {
		t.Fatalf("second load failed: %v", err)
	}
	second := roster.Users()

	if len(first) != len(second) {
		t.Fatalf("loads differ in size: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID || first[i].Role != second[i].Role {
			t.Errorf("row %d differs between loads", i)
		}
	}
}

func TestRoster_Load_ClearsOnError(t *testing.T) {
	dir := &stubDirectory{users: testUsers()}
	roster := NewRoster(dir, zerolog.Nop())

	if err := roster.Load(context.Background()); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	dir.listErr = errors.New("boom")
	if err := roster.Load(context.Background()); err == nil {
		t.Fatalf("expected error")
	}

	if len(roster.Users()) != 0 {
		t.Fatalf("stale list retained after failed load")
	}
	if roster.Loaded() {
		t.Fatalf("roster must not report loaded after failure")
	}
	if _, err := roster.Get("u1"); !errors.Is(err, domain.ErrRosterNotLoaded) {
		t.Fatalf("expected ErrRosterNotLoaded, got %v", err)
	}
}

func TestRoster_ApplyRoleUpdate(t *testing.T) {
	dir := &stubDirectory{users: testUsers()}
	roster := NewRoster(dir, zerolog.Nop())
	_ = roster.Load(context.Background())

	if err := roster.ApplyRoleUpdate("u3", domain.RolePro); err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	row, err := roster.Get("u3")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if row.Role != domain.RolePro {
		t.Fatalf("expected pro, got %s", row.Role)
	}
	// Only the role field changes.
	if row.BalanceCents == nil || *row.BalanceCents != 500 {
		t.Fatalf("balance must be untouched")
	}

	if err := roster.ApplyRoleUpdate("ghost", domain.RolePro); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestRoster_ApplyBalanceUpdate(t *testing.T) {
	dir := &stubDirectory{users: testUsers()}
	roster := NewRoster(dir, zerolog.Nop())
	_ = roster.Load(context.Background())

	if err := roster.ApplyBalanceUpdate("u1", 12345); err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	row, _ := roster.Get("u1")
	if row.BalanceCents == nil || *row.BalanceCents != 12345 {
		t.Fatalf("expected 12345, got %v", row.BalanceCents)
	}
	if row.Role != domain.RoleAdmin {
		t.Fatalf("role must be untouched")
	}
}
