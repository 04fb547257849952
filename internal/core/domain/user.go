package domain

import "time"

// Role classifies a platform account. The set is closed: the console never
// submits or renders a value outside it.
type Role string

const (
	RoleAdmin  Role = "admin"
	RolePro    Role = "pro"
	RoleUser   Role = "user"
	RoleTester Role = "tester"
)

// Roles lists every assignable role in display order.
var Roles = []Role{RoleAdmin, RolePro, RoleUser, RoleTester}

// Valid reports whether r belongs to the closed role set.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RolePro, RoleUser, RoleTester:
		return true
	}
	return false
}

// User is a managed platform account as reported by the upstream user service.
// BalanceCents is server-owned: nil means the balance was not loaded, and a
// present value is always the last one the server returned, never a local
// derivation.
type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	DisplayName  string     `json:"display_name,omitempty"`
	Role         Role       `json:"role"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	BalanceCents *int64     `json:"balance_cents,omitempty"`
}
