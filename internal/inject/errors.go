package inject

import (
	"errors"
	"fmt"
)

// ErrorKind is the failure taxonomy surfaced in a Result. Recoverable
// kinds are absorbed by the fallback chain; only the final cause of an
// exhausted chain reaches the caller.
type ErrorKind string

const (
	// ErrorNone means the request succeeded.
	ErrorNone ErrorKind = ""
	// WindowNotFound: the OS reports no foreground window. Fatal, no
	// retry possible.
	WindowNotFound ErrorKind = "window-not-found"
	// PermissionDenied: the target process blocks synthetic input,
	// typically across an elevated privilege boundary.
	PermissionDenied ErrorKind = "permission-denied"
	// PartialInjection: some but not all characters landed.
	PartialInjection ErrorKind = "partial-injection"
	// ClipboardConflict: another process mutated the clipboard
	// mid-operation.
	ClipboardConflict ErrorKind = "clipboard-conflict"
	// Timeout: a strategy attempt exceeded its bound.
	Timeout ErrorKind = "timeout"
	// UnsupportedApplication: the profile explicitly marks the target
	// unsupported. Surfaced without retry.
	UnsupportedApplication ErrorKind = "unsupported-application"
)

// Recoverable reports whether a failure of this kind is eligible for a
// fallback strategy.
func (k ErrorKind) Recoverable() bool {
	switch k {
	case PermissionDenied, PartialInjection, ClipboardConflict, Timeout:
		return true
	}
	return false
}

// Error carries an ErrorKind through the state machine alongside the
// underlying cause.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("inject: %s", e.Kind)
	}
	return fmt.Sprintf("inject: %s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// kindOf extracts the ErrorKind from err. Errors that did not come out
// of the state machine count as PermissionDenied: the target rejected
// our input for a reason we cannot name more precisely.
func kindOf(err error) ErrorKind {
	if err == nil {
		return ErrorNone
	}
	var ie *Error
	if errors.As(err, &ie) {
		return ie.Kind
	}
	return PermissionDenied
}
