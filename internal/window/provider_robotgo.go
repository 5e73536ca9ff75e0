//go:build !windows

package window

import (
	"fmt"

	"github.com/go-vgo/robotgo"
)

// OSProvider reads the foreground window through robotgo. The window
// class is not exposed by robotgo outside Windows, so classification on
// these platforms relies on process name and title alone.
type OSProvider struct{}

// NewOSProvider returns the platform provider for the current OS.
func NewOSProvider() *OSProvider {
	return &OSProvider{}
}

// Foreground queries the active window. A zero pid means no application
// currently holds keyboard focus.
func (p *OSProvider) Foreground() (Info, error) {
	pid := robotgo.GetPid()
	if pid == 0 {
		return Info{}, ErrNoForegroundWindow
	}

	name, err := robotgo.FindName(pid)
	if err != nil {
		return Info{}, fmt.Errorf("%w: pid %d: %v", ErrAccessDenied, pid, err)
	}

	return Info{
		Handle:      uintptr(pid),
		ProcessName: name,
		Title:       robotgo.GetTitle(),
	}, nil
}
