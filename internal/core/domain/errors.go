package domain

import (
	"errors"
	"fmt"
)

var (
	ErrAccessDenied = errors.New("access denied")

	// Roster errors.
	ErrUserNotFound    = errors.New("user not found in roster")
	ErrRosterNotLoaded = errors.New("roster not loaded")

	// Local validation errors. These never reach the network.
	ErrRoleUnknown      = errors.New("unknown role")
	ErrSameRole         = errors.New("proposed role equals current role")
	ErrOwnAdminRole     = errors.New("cannot change own admin role")
	ErrAmountNotInteger = errors.New("amount must be an integer number of cents")
	ErrAmountZero       = errors.New("amount must be non-zero")
	ErrReasonRequired   = errors.New("reason is required")

	// Workflow state errors.
	ErrNoWorkflow           = errors.New("no workflow open")
	ErrWorkflowUserMismatch = errors.New("workflow open for a different user")
	ErrSubmitInFlight       = errors.New("a submission is already in flight")
	ErrConfirmationRequired = errors.New("confirmation pending")
	ErrConfirmTokenMismatch = errors.New("confirmation token mismatch")
	ErrDuplicateSubmit      = errors.New("identical adjustment submitted moments ago")
)

// RemoteErrorKind discriminates failures of upstream user-service calls so
// callers can handle them exhaustively instead of sniffing strings.
type RemoteErrorKind string

const (
	// RemoteMutation means the server answered and rejected or could not
	// complete the request; Message carries its structured error body.
	RemoteMutation RemoteErrorKind = "mutation"
	// RemoteTransport means no response reached the client; Message is a
	// generic fallback.
	RemoteTransport RemoteErrorKind = "transport"
)

// RemoteError is the discriminated failure of a user-service call.
type RemoteError struct {
	Kind       RemoteErrorKind
	StatusCode int // 0 for transport failures
	Message    string
}

func (e *RemoteError) Error() string {
	if e.Kind == RemoteTransport {
		return fmt.Sprintf("user service unreachable: %s", e.Message)
	}
	return fmt.Sprintf("user service rejected request (%d): %s", e.StatusCode, e.Message)
}

// UserMessage is the text shown inline in an open workflow.
func (e *RemoteError) UserMessage() string {
	return e.Message
}

// AsRemoteError unwraps err into a *RemoteError when possible.
func AsRemoteError(err error) (*RemoteError, bool) {
	var re *RemoteError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}
