package domain

// WorkflowState is the tagged state of a mutation workflow. Each workflow is a
// single variant carrying its proposal as payload, so inconsistent flag
// combinations ("submitting" with no proposal) cannot be represented.
type WorkflowState string

const (
	WorkflowClosed              WorkflowState = "closed"
	WorkflowOpen                WorkflowState = "open"
	WorkflowConfirmationPending WorkflowState = "confirmation_pending"
	WorkflowSubmitting          WorkflowState = "submitting"
)

// WorkflowKind distinguishes the two console workflows.
type WorkflowKind string

const (
	WorkflowRoleChange       WorkflowKind = "role_change"
	WorkflowCreditAdjustment WorkflowKind = "credit_adjustment"
)

// RoleChangeProposal is the ephemeral draft of a pending role mutation. It
// exists only while its workflow is open and is discarded on close or commit.
type RoleChangeProposal struct {
	UserID      string
	CurrentRole Role
	Proposed    Role
	Summary     string
}

// CreditAdjustmentProposal is the ephemeral draft of a pending credit
// mutation. AmountCents is signed: positive credits, negative debits.
type CreditAdjustmentProposal struct {
	UserID       string
	Email        string
	BalanceCents *int64 // read-only context, may be unknown
	AmountCents  int64
	Reason       string
}
