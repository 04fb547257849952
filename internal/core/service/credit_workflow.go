package service

import (
	"crypto/rand"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/routeai/admin-console/internal/core/domain"
	"github.com/routeai/admin-console/internal/core/ports"
)

// CreditAdjustmentWorkflow is the modal state machine for mutating a user's
// prepaid balance.
//
//	Closed → Open(proposal) → ConfirmationPending → Submitting → Closed
//	                        ↖ decline ↙                        ↘ Open+error
//
// Because the mutation is financial, a proposal must pass local validation and
// then be explicitly confirmed — the confirmation echoes the exact signed
// amount and the target's email — before any network call is issued. The new
// balance shown afterwards is always the server-returned value.
type CreditAdjustmentWorkflow struct {
	session  domain.Session
	state    domain.WorkflowState
	proposal *domain.CreditAdjustmentProposal
	token    string
	lastErr  string
}

func NewCreditAdjustmentWorkflow(session domain.Session) *CreditAdjustmentWorkflow {
	return &CreditAdjustmentWorkflow{session: session, state: domain.WorkflowClosed}
}

func (w *CreditAdjustmentWorkflow) State() domain.WorkflowState {
	return w.state
}

// UserID returns the target of the open proposal, or "" when closed.
func (w *CreditAdjustmentWorkflow) UserID() string {
	if w.proposal == nil {
		return ""
	}
	return w.proposal.UserID
}

// Open starts a proposal for the roster row. Amount and reason start empty;
// the current balance, when known, is carried as read-only context.
func (w *CreditAdjustmentWorkflow) Open(user domain.User) error {
	w.state = domain.WorkflowOpen
	w.proposal = &domain.CreditAdjustmentProposal{
		UserID:       user.ID,
		Email:        user.Email,
		BalanceCents: user.BalanceCents,
	}
	w.token = ""
	w.lastErr = ""
	return nil
}

// parseAmount accepts a raw amount and requires a non-zero signed integer
// number of cents. Anything else is rejected before reaching the network.
func parseAmount(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, domain.ErrAmountNotInteger
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, domain.ErrAmountNotInteger
	}
	if n == 0 {
		return 0, domain.ErrAmountZero
	}
	return n, nil
}

// Propose validates the draft and, when every rule holds, moves to
// ConfirmationPending with a fresh one-time confirmation token.
func (w *CreditAdjustmentWorkflow) Propose(rawAmount, reason string) error {
	if w.state != domain.WorkflowOpen {
		return domain.ErrNoWorkflow
	}
	amount, err := parseAmount(rawAmount)
	if err != nil {
		w.lastErr = ""
		return err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return domain.ErrReasonRequired
	}
	w.proposal.AmountCents = amount
	w.proposal.Reason = reason
	w.token = newConfirmToken()
	w.state = domain.WorkflowConfirmationPending
	w.lastErr = ""
	return nil
}

// Decline returns from the confirmation step to Open with the proposal intact.
func (w *CreditAdjustmentWorkflow) Decline() error {
	if w.state != domain.WorkflowConfirmationPending {
		return domain.ErrNoWorkflow
	}
	w.state = domain.WorkflowOpen
	w.token = ""
	return nil
}

// BeginSubmit checks the confirmation token and moves to Submitting,
// returning the confirmed proposal to send upstream.
func (w *CreditAdjustmentWorkflow) BeginSubmit(token string) (domain.CreditAdjustmentProposal, error) {
	switch w.state {
	case domain.WorkflowSubmitting:
		return domain.CreditAdjustmentProposal{}, domain.ErrSubmitInFlight
	case domain.WorkflowConfirmationPending:
	case domain.WorkflowOpen:
		return domain.CreditAdjustmentProposal{}, domain.ErrConfirmationRequired
	default:
		return domain.CreditAdjustmentProposal{}, domain.ErrNoWorkflow
	}
	if token == "" || token != w.token {
		return domain.CreditAdjustmentProposal{}, domain.ErrConfirmTokenMismatch
	}
	w.state = domain.WorkflowSubmitting
	return *w.proposal, nil
}

// CompleteSubmit closes the workflow after the server confirmed the mutation.
func (w *CreditAdjustmentWorkflow) CompleteSubmit() bool {
	if w.state != domain.WorkflowSubmitting {
		return false
	}
	w.state = domain.WorkflowClosed
	w.proposal = nil
	w.token = ""
	w.lastErr = ""
	return true
}

// FailSubmit reopens the workflow with the error shown inline; the proposal
// is retained. A fresh confirmation is required before retrying.
func (w *CreditAdjustmentWorkflow) FailSubmit(msg string) {
	if w.state != domain.WorkflowSubmitting {
		return
	}
	w.state = domain.WorkflowOpen
	w.token = ""
	w.lastErr = msg
}

// Cancel discards the proposal and closes the workflow.
func (w *CreditAdjustmentWorkflow) Cancel() {
	w.state = domain.WorkflowClosed
	w.proposal = nil
	w.token = ""
	w.lastErr = ""
}

// View renders the workflow for the transport layer. The confirmation token
// is only exposed while confirmation is pending.
func (w *CreditAdjustmentWorkflow) View() ports.WorkflowView {
	v := ports.WorkflowView{
		Kind:  domain.WorkflowCreditAdjustment,
		State: w.state,
	}
	if w.proposal != nil {
		v.UserID = w.proposal.UserID
		v.Email = w.proposal.Email
		v.BalanceCents = w.proposal.BalanceCents
		v.AmountCents = w.proposal.AmountCents
		v.Reason = w.proposal.Reason
	}
	if w.state == domain.WorkflowConfirmationPending {
		v.ConfirmToken = w.token
		v.CanSubmit = true
	}
	v.Error = w.lastErr
	return v
}

// newConfirmToken returns a short random hex token binding a commit request
// to the confirmation the operator saw.
func newConfirmToken() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		// fallback: current nanoseconds
		return fmt.Sprintf("%016x", time.Now().UnixNano())
	}
	return fmt.Sprintf("%x", b)
}
