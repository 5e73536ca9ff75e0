package inject

import "fmt"

// clipGuard snapshots the clipboard on acquisition and puts the
// snapshot back on Release. Leaving the clipboard polluted is a
// user-visible regression distinct from injection failure, so Release
// must run on every exit path: success, failure, cancellation, fault.
type clipGuard struct {
	cb       Clipboard
	snapshot string
	released bool
}

// acquireClipboard snapshots the current clipboard contents.
func acquireClipboard(cb Clipboard) (*clipGuard, error) {
	snap, err := cb.Read()
	if err != nil {
		return nil, &Error{Kind: ClipboardConflict, Err: err}
	}
	return &clipGuard{cb: cb, snapshot: snap}, nil
}

// Stage writes text to the clipboard and reads it back to confirm the
// write landed. A mismatch means another process raced us; the write is
// retried once before the conflict is surfaced.
func (g *clipGuard) Stage(text string) error {
	for attempt := 0; attempt < 2; attempt++ {
		if err := g.cb.Write(text); err != nil {
			return &Error{Kind: ClipboardConflict, Err: err}
		}
		got, err := g.cb.Read()
		if err != nil {
			return &Error{Kind: ClipboardConflict, Err: err}
		}
		if got == text {
			return nil
		}
	}
	return &Error{Kind: ClipboardConflict, Err: fmt.Errorf("clipboard mutated by another process")}
}

// Release restores the snapshot byte for byte. Idempotent.
func (g *clipGuard) Release() error {
	if g.released {
		return nil
	}
	g.released = true
	if err := g.cb.Write(g.snapshot); err != nil {
		return fmt.Errorf("inject: restore clipboard: %w", err)
	}
	return nil
}
