package handler

import (
	"encoding/json"
	"time"
)

type roleChangeRequest struct {
	Role    string `json:"role" validate:"required,oneof=admin pro user tester"`
	Summary string `json:"summary" validate:"omitempty,max=500"`
}

// creditProposalRequest carries the credit draft. AmountCents is a
// json.Number so non-numeric input fails at bind time, before any state
// change or upstream call; the workflow re-validates it as a non-zero
// integer.
type creditProposalRequest struct {
	AmountCents json.Number `json:"amount_cents" validate:"required"`
	Reason      string      `json:"reason" validate:"required"`
}

type creditCommitRequest struct {
	ConfirmToken string `json:"confirm_token" validate:"required"`
}

type auditEntryResponse struct {
	OperatorID  string    `json:"operator_id"`
	UserID      string    `json:"user_id"`
	Action      string    `json:"action"`
	Role        string    `json:"role,omitempty"`
	AmountCents int64     `json:"amount_cents,omitempty"`
	Reason      string    `json:"reason,omitempty"`
	At          time.Time `json:"at"`
}

type auditListResponse struct {
	Entries []auditEntryResponse `json:"entries"`
}
