package domain

// Session identifies the authenticated operator driving a console instance.
// It is passed explicitly into the access gate and both workflows; nothing in
// the console reads identity from ambient state.
type Session struct {
	OperatorID string
	Email      string
	Role       Role
}

// AccessState is the access gate's observable state.
type AccessState string

const (
	// AccessPending means the session has not resolved yet; render a loading
	// state rather than denying.
	AccessPending AccessState = "pending"
	// AccessDenied is terminal for the page; there is no retry path short of
	// re-authentication.
	AccessDenied AccessState = "denied"
	AccessGranted AccessState = "granted"
)
