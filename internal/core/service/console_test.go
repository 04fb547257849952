package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/routeai/admin-console/internal/core/domain"
	"github.com/routeai/admin-console/internal/core/ports"
)

type stubRecorder struct {
	entries []domain.AuditEntry
}

func (r *stubRecorder) Record(entry domain.AuditEntry) {
	r.entries = append(r.entries, entry)
}

type stubGuard struct {
	allow bool
	err   error
	calls int
}

func (g *stubGuard) Reserve(context.Context, string, string, int64, string) (bool, error) {
	g.calls++
	return g.allow, g.err
}

func newTestConsole(t *testing.T, dir *stubDirectory) *Console {
	t.Helper()
	c := NewConsole(operator, dir, nil, nil, zerolog.Nop())
	if _, err := c.LoadRoster(context.Background()); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	return c
}

func TestConsole_NonAdminCannotLoad(t *testing.T) {
	dir := &stubDirectory{users: testUsers()}
	c := NewConsole(domain.Session{OperatorID: "op2", Role: domain.RolePro}, dir, nil, nil, zerolog.Nop())

	if _, err := c.LoadRoster(context.Background()); !errors.Is(err, domain.ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied, got %v", err)
	}
	if dir.listCall != 0 {
		t.Fatalf("denied operator must not reach the directory")
	}
}

func TestConsole_CreditAdjustmentAppliesServerBalance(t *testing.T) {
	// Balance 500, adjust by -100; the server answers 400 and the roster
	// shows exactly that.
	dir := &stubDirectory{users: testUsers(), newBalance: 400}
	c := newTestConsole(t, dir)

	if _, err := c.OpenCreditAdjustment("u3"); err != nil {
		t.Fatalf("open failed: %v", err)
	}
	view, err := c.ProposeCreditAdjustment(ports.CreditAdjustmentInput{
		UserID: "u3", AmountCents: "-100", Reason: "refund",
	})
	if err != nil {
		t.Fatalf("propose failed: %v", err)
	}
	if view.State != domain.WorkflowConfirmationPending || view.ConfirmToken == "" {
		t.Fatalf("expected pending confirmation, got %+v", view)
	}

	view, err = c.CommitCreditAdjustment(context.Background(), "u3", view.ConfirmToken)
	if err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	if view.State != domain.WorkflowClosed {
		t.Fatalf("expected closed, got %s", view.State)
	}
	if dir.creditCall != 1 {
		t.Fatalf("expected exactly one mutation, got %d", dir.creditCall)
	}

	row, _ := c.roster.Get("u3")
	if row.BalanceCents == nil || *row.BalanceCents != 400 {
		t.Fatalf("roster must carry the server balance, got %v", row.BalanceCents)
	}
}

func TestConsole_RejectedRoleChangeLeavesRosterUntouched(t *testing.T) {
	// The upstream answers 403 {"error": "insufficient privilege"}: the
	// workflow stays open with the message inline and the roster row keeps
	// its role.
	dir := &stubDirectory{
		users:   testUsers(),
		roleErr: &domain.RemoteError{Kind: domain.RemoteMutation, StatusCode: 403, Message: "insufficient privilege"},
	}
	c := newTestConsole(t, dir)

	if _, err := c.OpenRoleChange("u3"); err != nil {
		t.Fatalf("open failed: %v", err)
	}
	view, err := c.SubmitRoleChange(context.Background(), ports.RoleChangeInput{
		UserID: "u3", Role: "pro",
	})
	if err == nil {
		t.Fatalf("expected error")
	}
	if view.State != domain.WorkflowOpen {
		t.Fatalf("expected open, got %s", view.State)
	}
	if view.Error != "insufficient privilege" {
		t.Fatalf("expected server message inline, got %q", view.Error)
	}
	if view.ProposedRole != domain.RolePro {
		t.Fatalf("proposal must be retained for retry")
	}

	row, _ := c.roster.Get("u3")
	if row.Role != domain.RoleUser {
		t.Fatalf("roster must be untouched on rejection, got %s", row.Role)
	}
}

func TestConsole_TransportFailureMessage(t *testing.T) {
	dir := &stubDirectory{
		users:     testUsers(),
		creditErr: &domain.RemoteError{Kind: domain.RemoteTransport, Message: "no response from user service"},
	}
	c := newTestConsole(t, dir)

	_, _ = c.OpenCreditAdjustment("u3")
	view, _ := c.ProposeCreditAdjustment(ports.CreditAdjustmentInput{UserID: "u3", AmountCents: "100", Reason: "topup"})
	view, err := c.CommitCreditAdjustment(context.Background(), "u3", view.ConfirmToken)
	if err == nil {
		t.Fatalf("expected error")
	}
	if view.State != domain.WorkflowOpen || view.Error != "no response from user service" {
		t.Fatalf("expected reopened workflow with transport message, got %+v", view)
	}

	row, _ := c.roster.Get("u3")
	if row.BalanceCents == nil || *row.BalanceCents != 500 {
		t.Fatalf("roster must be untouched on transport failure")
	}
}

func TestConsole_OneWorkflowAtATime(t *testing.T) {
	dir := &stubDirectory{users: testUsers()}
	c := newTestConsole(t, dir)

	_, _ = c.OpenRoleChange("u3")
	if c.ActiveWorkflow().Kind != domain.WorkflowRoleChange {
		t.Fatalf("expected role workflow active")
	}

	// Opening the other workflow abandons the first, unsaved proposal included.
	if _, err := c.OpenCreditAdjustment("u2"); err != nil {
		t.Fatalf("open failed: %v", err)
	}
	active := c.ActiveWorkflow()
	if active.Kind != domain.WorkflowCreditAdjustment || active.UserID != "u2" {
		t.Fatalf("expected credit workflow for u2, got %+v", active)
	}

	view := c.CancelWorkflow()
	if view.State != domain.WorkflowClosed {
		t.Fatalf("expected closed after cancel, got %s", view.State)
	}
}

func TestConsole_WorkflowTargetMismatch(t *testing.T) {
	dir := &stubDirectory{users: testUsers()}
	c := newTestConsole(t, dir)

	_, _ = c.OpenRoleChange("u3")
	if _, err := c.SubmitRoleChange(context.Background(), ports.RoleChangeInput{UserID: "u2", Role: "pro"}); !errors.Is(err, domain.ErrWorkflowUserMismatch) {
		t.Fatalf("expected ErrWorkflowUserMismatch, got %v", err)
	}

	c.CancelWorkflow()
	if _, err := c.SubmitRoleChange(context.Background(), ports.RoleChangeInput{UserID: "u3", Role: "pro"}); !errors.Is(err, domain.ErrNoWorkflow) {
		t.Fatalf("expected ErrNoWorkflow, got %v", err)
	}
}

func TestConsole_DuplicateSubmitRejected(t *testing.T) {
	dir := &stubDirectory{users: testUsers(), newBalance: 400}
	guard := &stubGuard{allow: false}
	c := NewConsole(operator, dir, nil, guard, zerolog.Nop())
	if _, err := c.LoadRoster(context.Background()); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	_, _ = c.OpenCreditAdjustment("u3")
	view, _ := c.ProposeCreditAdjustment(ports.CreditAdjustmentInput{UserID: "u3", AmountCents: "-100", Reason: "refund"})

	_, err := c.CommitCreditAdjustment(context.Background(), "u3", view.ConfirmToken)
	if !errors.Is(err, domain.ErrDuplicateSubmit) {
		t.Fatalf("expected ErrDuplicateSubmit, got %v", err)
	}
	if dir.creditCall != 0 {
		t.Fatalf("duplicate submit must not reach the directory")
	}
}

func TestConsole_GuardOutageIsNonFatal(t *testing.T) {
	dir := &stubDirectory{users: testUsers(), newBalance: 400}
	guard := &stubGuard{err: errors.New("redis down")}
	c := NewConsole(operator, dir, nil, guard, zerolog.Nop())
	_, _ = c.LoadRoster(context.Background())

	_, _ = c.OpenCreditAdjustment("u3")
	view, _ := c.ProposeCreditAdjustment(ports.CreditAdjustmentInput{UserID: "u3", AmountCents: "-100", Reason: "refund"})

	if _, err := c.CommitCreditAdjustment(context.Background(), "u3", view.ConfirmToken); err != nil {
		t.Fatalf("guard outage must not block the mutation: %v", err)
	}
	if guard.calls != 1 || dir.creditCall != 1 {
		t.Fatalf("expected guard and directory each called once")
	}
}

func TestConsole_AuditRecorded(t *testing.T) {
	dir := &stubDirectory{users: testUsers(), newBalance: 400}
	recorder := &stubRecorder{}
	c := NewConsole(operator, dir, recorder, nil, zerolog.Nop())
	_, _ = c.LoadRoster(context.Background())

	_, _ = c.OpenRoleChange("u3")
	if _, err := c.SubmitRoleChange(context.Background(), ports.RoleChangeInput{UserID: "u3", Role: "pro", Summary: "upgrade"}); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	_, _ = c.OpenCreditAdjustment("u3")
	view, _ := c.ProposeCreditAdjustment(ports.CreditAdjustmentInput{UserID: "u3", AmountCents: "-100", Reason: "refund"})
	if _, err := c.CommitCreditAdjustment(context.Background(), "u3", view.ConfirmToken); err != nil {
		t.Fatalf("commit failed: %v", err)
	}

	if len(recorder.entries) != 2 {
		t.Fatalf("expected 2 audit entries, got %d", len(recorder.entries))
	}
	if recorder.entries[0].Action != domain.AuditRoleChange || recorder.entries[0].Role != domain.RolePro {
		t.Fatalf("unexpected role audit: %+v", recorder.entries[0])
	}
	if recorder.entries[1].Action != domain.AuditCreditAdjustment || recorder.entries[1].AmountCents != -100 {
		t.Fatalf("unexpected credit audit: %+v", recorder.entries[1])
	}
	if recorder.entries[0].OperatorID != operator.OperatorID {
		t.Fatalf("audit must name the operator")
	}
}

func TestConsole_BannerExpires(t *testing.T) {
	dir := &stubDirectory{users: testUsers()}
	c := newTestConsole(t, dir)

	clock := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return clock }

	_, _ = c.OpenRoleChange("u3")
	if _, err := c.SubmitRoleChange(context.Background(), ports.RoleChangeInput{UserID: "u3", Role: "pro"}); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if b := c.Roster().Banner; b == nil || b.Message != "role updated" {
		t.Fatalf("expected success banner, got %+v", b)
	}

	clock = clock.Add(10 * time.Second)
	if b := c.Roster().Banner; b != nil {
		t.Fatalf("banner must self-clear, got %+v", b)
	}
}
