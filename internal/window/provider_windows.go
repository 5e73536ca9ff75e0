//go:build windows

package window

import (
	"fmt"
	"path/filepath"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32                       = windows.NewLazySystemDLL("user32.dll")
	procGetForegroundWindow      = user32.NewProc("GetForegroundWindow")
	procGetWindowTextW           = user32.NewProc("GetWindowTextW")
	procGetClassNameW            = user32.NewProc("GetClassNameW")
	procGetWindowThreadProcessId = user32.NewProc("GetWindowThreadProcessId")
)

// OSProvider reads the foreground window through user32/kernel32. Unlike
// the portable provider it reports the Win32 window class, which the
// classifier uses for processes that host many window types.
type OSProvider struct{}

// NewOSProvider returns the platform provider for the current OS.
func NewOSProvider() *OSProvider {
	return &OSProvider{}
}

// Foreground queries the active window via GetForegroundWindow. A zero
// HWND is a valid OS state (no focused application) and maps to
// ErrNoForegroundWindow.
func (p *OSProvider) Foreground() (Info, error) {
	hwnd, _, _ := procGetForegroundWindow.Call()
	if hwnd == 0 {
		return Info{}, ErrNoForegroundWindow
	}

	info := Info{
		Handle:      hwnd,
		Title:       windowText(hwnd),
		WindowClass: className(hwnd),
	}

	var pid uint32
	procGetWindowThreadProcessId.Call(hwnd, uintptr(unsafe.Pointer(&pid)))
	if pid == 0 {
		return Info{}, fmt.Errorf("%w: no owning process for HWND %#x", ErrAccessDenied, hwnd)
	}

	name, err := processImageName(pid)
	if err != nil {
		return Info{}, fmt.Errorf("%w: pid %d: %v", ErrAccessDenied, pid, err)
	}
	info.ProcessName = name

	return info, nil
}

func windowText(hwnd uintptr) string {
	var buf [512]uint16
	n, _, _ := procGetWindowTextW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	return windows.UTF16ToString(buf[:n])
}

func className(hwnd uintptr) string {
	var buf [256]uint16
	n, _, _ := procGetClassNameW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	return windows.UTF16ToString(buf[:n])
}

func processImageName(pid uint32) (string, error) {
	// Limited query rights are enough for the image name and work across
	// privilege boundaries where full query rights are refused.
	handle, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, pid)
	if err != nil {
		return "", fmt.Errorf("OpenProcess: %w", err)
	}
	defer windows.CloseHandle(handle)

	var buf [windows.MAX_PATH]uint16
	size := uint32(len(buf))
	if err := windows.QueryFullProcessImageName(handle, 0, &buf[0], &size); err != nil {
		return "", fmt.Errorf("QueryFullProcessImageName: %w", err)
	}
	return filepath.Base(windows.UTF16ToString(buf[:size])), nil
}
