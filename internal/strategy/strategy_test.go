package strategy

import "testing"

func TestSelectReturnsPreference(t *testing.T) {
	got := Select(DirectUnicode, false, "plain ascii")
	if got != DirectUnicode {
		t.Errorf("Select = %q, want %q", got, DirectUnicode)
	}
}

func TestSelectForcesClipboardForSurrogates(t *testing.T) {
	// "Hi 👋" carries a non-BMP codepoint; a no-surrogates target must
	// get the clipboard path regardless of preference.
	got := Select(DirectUnicode, true, "Hi \U0001F44B")
	if got != ClipboardPaste {
		t.Errorf("Select = %q, want %q", got, ClipboardPaste)
	}
}

func TestSelectKeepsPreferenceForBMPText(t *testing.T) {
	// The limitation only matters when the text actually needs
	// surrogate pairs.
	got := Select(DirectUnicode, true, "Grüße, 你好")
	if got != DirectUnicode {
		t.Errorf("Select = %q, want %q", got, DirectUnicode)
	}
}

func TestSelectNeverReturnsInvalid(t *testing.T) {
	tests := []struct {
		name      string
		preferred Strategy
	}{
		{"empty preference", Strategy("")},
		{"unknown preference", Strategy("teleport")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Select(tt.preferred, false, "text")
			if !got.Valid() {
				t.Errorf("Select returned invalid strategy %q", got)
			}
			if got != ClipboardPaste {
				t.Errorf("Select = %q, want safe default %q", got, ClipboardPaste)
			}
		})
	}
}

func TestHasNonBMP(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"", false},
		{"ascii only", false},
		{"Grüße", false},
		{"你好", false},
		{"\uffff", false}, // top of the BMP, no surrogates needed
		{"Hi \U0001F44B", true},
		{"\U0001F600", true},
		{"math \U0001D538", true},
	}
	for _, tt := range tests {
		if got := HasNonBMP(tt.text); got != tt.want {
			t.Errorf("HasNonBMP(%q) = %t, want %t", tt.text, got, tt.want)
		}
	}
}

func TestValid(t *testing.T) {
	for _, s := range []Strategy{DirectUnicode, ClipboardPaste, SyntheticKeystroke, Hybrid} {
		if !s.Valid() {
			t.Errorf("%q should be valid", s)
		}
	}
	if Strategy("nope").Valid() {
		t.Error("unknown strategy should not be valid")
	}
}
