package ports

import (
	"context"
	"time"

	"github.com/routeai/admin-console/internal/core/domain"
)

// RoleChangeInput carries a role-change submission from the transport layer.
type RoleChangeInput struct {
	UserID  string
	Role    string
	Summary string
}

// CreditAdjustmentInput carries a credit proposal from the transport layer.
// AmountCents arrives raw; the workflow parses it so non-integer input is
// rejected before any upstream call.
type CreditAdjustmentInput struct {
	UserID      string
	AmountCents string
	Reason      string
}

// BannerView is a transient page-level notice. It self-clears after a fixed
// delay and is omitted from views once expired.
type BannerView struct {
	Kind    string `json:"kind"` // "success" or "error"
	Message string `json:"message"`
}

// RosterView is the console's current user list plus any active banner.
type RosterView struct {
	Users    []domain.User `json:"users"`
	LoadedAt time.Time     `json:"loaded_at"`
	Banner   *BannerView   `json:"banner,omitempty"`
}

// WorkflowView is the observable state of the console's active workflow. The
// role and credit sections are populated according to Kind.
type WorkflowView struct {
	Kind  domain.WorkflowKind  `json:"kind,omitempty"`
	State domain.WorkflowState `json:"state"`

	UserID string `json:"user_id,omitempty"`
	Email  string `json:"email,omitempty"`

	// Role-change fields.
	CurrentRole  domain.Role   `json:"current_role,omitempty"`
	ProposedRole domain.Role   `json:"proposed_role,omitempty"`
	Summary      string        `json:"summary,omitempty"`
	AllowedRoles []domain.Role `json:"allowed_roles,omitempty"`

	// Credit-adjustment fields.
	BalanceCents *int64 `json:"balance_cents,omitempty"`
	AmountCents  int64  `json:"amount_cents,omitempty"`
	Reason       string `json:"reason,omitempty"`
	ConfirmToken string `json:"confirm_token,omitempty"`

	// CanSubmit reports whether local validation currently passes.
	CanSubmit bool `json:"can_submit"`
	// Error is the inline workflow error; it persists until the operator
	// retries, edits the proposal, or cancels.
	Error string `json:"error,omitempty"`
}

// ConsoleService drives one operator's console instance: its roster and its
// single active workflow.
type ConsoleService interface {
	LoadRoster(ctx context.Context) (RosterView, error)

	OpenRoleChange(userID string) (WorkflowView, error)
	SubmitRoleChange(ctx context.Context, in RoleChangeInput) (WorkflowView, error)

	OpenCreditAdjustment(userID string) (WorkflowView, error)
	ProposeCreditAdjustment(in CreditAdjustmentInput) (WorkflowView, error)
	CommitCreditAdjustment(ctx context.Context, userID, confirmToken string) (WorkflowView, error)
	DeclineConfirmation() (WorkflowView, error)

	CancelWorkflow() WorkflowView
	ActiveWorkflow() WorkflowView
}
