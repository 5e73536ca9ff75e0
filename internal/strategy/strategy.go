// Package strategy defines the injection strategies and the selection
// rule that picks one from a compatibility profile and the text itself.
package strategy

// Strategy names one way of delivering text to the focused application.
type Strategy string

const (
	// DirectUnicode sends each codepoint as a synthetic Unicode input
	// event, surrogate pairs as two consecutive events.
	DirectUnicode Strategy = "direct-unicode"
	// ClipboardPaste stages the text on the clipboard and synthesizes
	// the platform paste chord.
	ClipboardPaste Strategy = "clipboard-paste"
	// SyntheticKeystroke replays the text as individual key taps.
	SyntheticKeystroke Strategy = "synthetic-keystroke"
	// Hybrid types short ASCII runs directly and pastes everything else.
	Hybrid Strategy = "hybrid"
)

// Valid reports whether s is one of the known strategies.
func (s Strategy) Valid() bool {
	switch s {
	case DirectUnicode, ClipboardPaste, SyntheticKeystroke, Hybrid:
		return true
	}
	return false
}

// Select picks the strategy for text. When the text contains codepoints
// outside the Basic Multilingual Plane and the profile is flagged as
// unable to take surrogate pairs through synthetic input, the clipboard
// path is forced regardless of preference: several terminal emulators
// silently drop or mangle non-BMP characters typed as key events, which
// is a correctness issue rather than a preference.
//
// Select never returns an invalid strategy; an unset or unknown
// preference resolves to ClipboardPaste.
func Select(preferred Strategy, noSurrogates bool, text string) Strategy {
	if noSurrogates && HasNonBMP(text) {
		return ClipboardPaste
	}
	if !preferred.Valid() {
		return ClipboardPaste
	}
	return preferred
}

// HasNonBMP reports whether text contains a codepoint above U+FFFF,
// i.e. one that needs a UTF-16 surrogate pair.
func HasNonBMP(text string) bool {
	for _, r := range text {
		if r > 0xFFFF {
			return true
		}
	}
	return false
}
