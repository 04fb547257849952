package domain

import "time"

// AuditAction names a committed console mutation.
type AuditAction string

const (
	AuditRoleChange       AuditAction = "role_change"
	AuditCreditAdjustment AuditAction = "credit_adjustment"
)

// AuditEntry records one committed mutation for the audit trail. Entries are
// written only after the user service confirmed the mutation.
type AuditEntry struct {
	OperatorID  string
	UserID      string
	Action      AuditAction
	Role        Role  // role_change only
	AmountCents int64 // credit_adjustment only
	Reason      string
	At          time.Time
}
