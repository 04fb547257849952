package domain

import "testing"

func TestRole_Valid(t *testing.T) {
	for _, r := range Roles {
		if !r.Valid() {
			t.Errorf("expected %q to be valid", r)
		}
	}

	for _, r := range []Role{"", "superadmin", "Admin", "client"} {
		if r.Valid() {
			t.Errorf("expected %q to be invalid", r)
		}
	}
}

func TestRemoteError_Messages(t *testing.T) {
	mutation := &RemoteError{Kind: RemoteMutation, StatusCode: 403, Message: "insufficient privilege"}
	if mutation.UserMessage() != "insufficient privilege" {
		t.Fatalf("unexpected message: %s", mutation.UserMessage())
	}

	transport := &RemoteError{Kind: RemoteTransport, Message: "no response from user service"}
	if transport.UserMessage() == "" {
		t.Fatalf("transport error must carry a fallback message")
	}

	if re, ok := AsRemoteError(mutation); !ok || re.StatusCode != 403 {
		t.Fatalf("AsRemoteError failed: %v %v", re, ok)
	}
	if _, ok := AsRemoteError(ErrSameRole); ok {
		t.Fatalf("plain errors must not unwrap as RemoteError")
	}
}
