package inject

import (
	"fmt"
	"runtime"

	"github.com/go-vgo/robotgo"
)

// Keyboard sends synthetic input events to whatever holds keyboard
// focus. Implementations talk to a global, stateful OS resource and are
// not safe for concurrent use; the engine serializes all access.
type Keyboard interface {
	// TypeRune delivers one codepoint as a synthetic Unicode input
	// event. Codepoints above U+FFFF are delivered as their two UTF-16
	// surrogate events back to back.
	TypeRune(r rune) error
	// Tap presses and releases a named key with optional modifiers.
	Tap(key string, mods ...string) error
}

// Clipboard reads and writes the system clipboard. The clipboard is
// shared across the process boundary; callers must treat the window
// between a read and a restoring write as exclusively owned.
type Clipboard interface {
	Read() (string, error)
	Write(text string) error
}

// robotKeyboard sends input through robotgo.
type robotKeyboard struct{}

// NewKeyboard returns the production keyboard adapter.
func NewKeyboard() Keyboard { return robotKeyboard{} }

func (robotKeyboard) TypeRune(r rune) error {
	// robotgo splits non-BMP codepoints into surrogate events itself.
	robotgo.TypeStr(string(r))
	return nil
}

func (robotKeyboard) Tap(key string, mods ...string) error {
	args := make([]interface{}, len(mods))
	for i, m := range mods {
		args[i] = m
	}
	if err := robotgo.KeyTap(key, args...); err != nil {
		return fmt.Errorf("inject: key tap %s: %w", key, err)
	}
	return nil
}

// robotClipboard is the production clipboard adapter.
type robotClipboard struct{}

// NewClipboard returns the production clipboard adapter.
func NewClipboard() Clipboard { return robotClipboard{} }

func (robotClipboard) Read() (string, error) {
	s, err := robotgo.ReadAll()
	if err != nil {
		return "", fmt.Errorf("inject: read clipboard: %w", err)
	}
	return s, nil
}

func (robotClipboard) Write(text string) error {
	if err := robotgo.WriteAll(text); err != nil {
		return fmt.Errorf("inject: write clipboard: %w", err)
	}
	return nil
}

// pasteModifier returns the modifier key of the platform paste chord.
func pasteModifier() string {
	if runtime.GOOS == "darwin" {
		return "cmd"
	}
	return "ctrl"
}
