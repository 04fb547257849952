package service

import (
	"strings"

	"github.com/routeai/admin-console/internal/core/domain"
	"github.com/routeai/admin-console/internal/core/ports"
)

// RoleChangeWorkflow is the modal state machine that proposes, validates, and
// commits a role mutation for one user.
//
//	Closed → Open(proposal) → Submitting → Closed          (success)
//	                        ↘ Open(proposal)+error          (failure)
//
// The workflow performs no I/O itself: the console drives BeginSubmit /
// CompleteSubmit / FailSubmit around the upstream call.
type RoleChangeWorkflow struct {
	session  domain.Session
	state    domain.WorkflowState
	proposal *domain.RoleChangeProposal
	lastErr  string
}

func NewRoleChangeWorkflow(session domain.Session) *RoleChangeWorkflow {
	return &RoleChangeWorkflow{session: session, state: domain.WorkflowClosed}
}

func (w *RoleChangeWorkflow) State() domain.WorkflowState {
	return w.state
}

// UserID returns the target of the open proposal, or "" when closed.
func (w *RoleChangeWorkflow) UserID() string {
	if w.proposal == nil {
		return ""
	}
	return w.proposal.UserID
}

// Open seeds a proposal from the roster row: proposed role starts at the
// current role, and any prior summary or error is cleared. An admin's own row
// cannot be opened at all; this workflow must never strip the operator's own
// admin privileges.
func (w *RoleChangeWorkflow) Open(user domain.User) error {
	if user.ID == w.session.OperatorID && user.Role == domain.RoleAdmin {
		return domain.ErrOwnAdminRole
	}
	w.state = domain.WorkflowOpen
	w.proposal = &domain.RoleChangeProposal{
		UserID:      user.ID,
		CurrentRole: user.Role,
		Proposed:    user.Role,
	}
	w.lastErr = ""
	return nil
}

// Propose records the proposed role and summary. Editing the proposal clears
// any inline error. The role must belong to the closed set; whether it equals
// the current role only gates submission, not editing.
func (w *RoleChangeWorkflow) Propose(role domain.Role, summary string) error {
	if w.state != domain.WorkflowOpen {
		return domain.ErrNoWorkflow
	}
	if !role.Valid() {
		return domain.ErrRoleUnknown
	}
	// Second guard against self-demotion: the option list never offers a
	// non-admin role for the operator's own row.
	if w.proposal.UserID == w.session.OperatorID &&
		w.proposal.CurrentRole == domain.RoleAdmin && role != domain.RoleAdmin {
		return domain.ErrOwnAdminRole
	}
	w.proposal.Proposed = role
	w.proposal.Summary = strings.TrimSpace(summary)
	w.lastErr = ""
	return nil
}

// validate reports why submission is currently blocked, or nil.
func (w *RoleChangeWorkflow) validate() error {
	if w.proposal == nil {
		return domain.ErrNoWorkflow
	}
	if !w.proposal.Proposed.Valid() {
		return domain.ErrRoleUnknown
	}
	if w.proposal.Proposed == w.proposal.CurrentRole {
		return domain.ErrSameRole
	}
	return nil
}

// CanSubmit reports whether local validation passes for the open proposal.
func (w *RoleChangeWorkflow) CanSubmit() bool {
	return w.state == domain.WorkflowOpen && w.validate() == nil
}

// BeginSubmit validates the proposal and moves to Submitting, returning the
// proposal to send upstream. At most one submission is in flight.
func (w *RoleChangeWorkflow) BeginSubmit() (domain.RoleChangeProposal, error) {
	switch w.state {
	case domain.WorkflowSubmitting:
		return domain.RoleChangeProposal{}, domain.ErrSubmitInFlight
	case domain.WorkflowOpen:
	default:
		return domain.RoleChangeProposal{}, domain.ErrNoWorkflow
	}
	if err := w.validate(); err != nil {
		return domain.RoleChangeProposal{}, err
	}
	w.state = domain.WorkflowSubmitting
	return *w.proposal, nil
}

// CompleteSubmit closes the workflow after a confirmed server success. A
// workflow cancelled while the request was in flight stays closed and the
// late response is not applied by the caller.
func (w *RoleChangeWorkflow) CompleteSubmit() bool {
	if w.state != domain.WorkflowSubmitting {
		return false
	}
	w.state = domain.WorkflowClosed
	w.proposal = nil
	w.lastErr = ""
	return true
}

// FailSubmit reopens the workflow with the server or transport error shown
// inline; the proposal is retained so the operator can retry or cancel.
func (w *RoleChangeWorkflow) FailSubmit(msg string) {
	if w.state != domain.WorkflowSubmitting {
		return
	}
	w.state = domain.WorkflowOpen
	w.lastErr = msg
}

// Cancel discards the proposal and closes the workflow.
func (w *RoleChangeWorkflow) Cancel() {
	w.state = domain.WorkflowClosed
	w.proposal = nil
	w.lastErr = ""
}

// View renders the workflow for the transport layer.
func (w *RoleChangeWorkflow) View() ports.WorkflowView {
	v := ports.WorkflowView{
		Kind:  domain.WorkflowRoleChange,
		State: w.state,
	}
	if w.proposal != nil {
		v.UserID = w.proposal.UserID
		v.CurrentRole = w.proposal.CurrentRole
		v.ProposedRole = w.proposal.Proposed
		v.Summary = w.proposal.Summary
		v.AllowedRoles = w.allowedRoles()
	}
	v.CanSubmit = w.CanSubmit()
	v.Error = w.lastErr
	return v
}

// allowedRoles is the selectable option list for the open row. The closed set
// is offered as-is; the self-admin restriction is already enforced by Open.
func (w *RoleChangeWorkflow) allowedRoles() []domain.Role {
	return append([]domain.Role(nil), domain.Roles...)
}
