// Package window provides read-only snapshots of the window currently
// receiving keyboard input. Snapshots are fetched fresh for every request
// and must never be cached: the foreground window can change between calls.
package window

import "errors"

// Info describes the foreground window at the moment it was queried.
// The handle is owned by the OS and is only meaningful for the lifetime
// of the snapshot.
type Info struct {
	Handle      uintptr
	ProcessName string
	WindowClass string
	Title       string
}

// Provider returns the current foreground window.
type Provider interface {
	Foreground() (Info, error)
}

var (
	// ErrNoForegroundWindow is returned when the OS reports no focused
	// window at all, e.g. the desktop has no active application.
	ErrNoForegroundWindow = errors.New("window: no foreground window")

	// ErrAccessDenied is returned when the OS refuses access to the
	// foreground window's metadata.
	ErrAccessDenied = errors.New("window: access to window metadata denied")
)
