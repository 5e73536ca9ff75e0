package profile

import (
	"github.com/chaz8081/typesink/internal/classify"
	"github.com/chaz8081/typesink/internal/strategy"
)

// builtinTable returns a fresh copy of the category defaults. Callers
// own the returned maps; the built-ins themselves are code, not shared
// state.
func builtinTable() table {
	return table{
		Categories: map[classify.Category]Profile{
			classify.Browser: {
				Preferred:        strategy.DirectUnicode,
				Fallbacks:        []strategy.Strategy{strategy.ClipboardPaste},
				InterCharDelayMS: 2,
			},
			classify.IDE: {
				Preferred:        strategy.DirectUnicode,
				Fallbacks:        []strategy.Strategy{strategy.ClipboardPaste},
				InterCharDelayMS: 5,
				Limitations:      []string{LimitSlowQueue},
			},
			classify.OfficeSuite: {
				Preferred:             strategy.ClipboardPaste,
				Fallbacks:             []strategy.Strategy{strategy.DirectUnicode},
				InterCharDelayMS:      5,
				PrePositionCorrection: true,
			},
			classify.Terminal: {
				Preferred:        strategy.DirectUnicode,
				Fallbacks:        []strategy.Strategy{strategy.ClipboardPaste},
				InterCharDelayMS: 3,
				Limitations:      []string{LimitNoSurrogates},
			},
			classify.PlainTextEditor: {
				Preferred:        strategy.DirectUnicode,
				Fallbacks:        []strategy.Strategy{strategy.SyntheticKeystroke, strategy.ClipboardPaste},
				InterCharDelayMS: 1,
			},
			classify.Generic: {
				Preferred:        strategy.Hybrid,
				Fallbacks:        []strategy.Strategy{strategy.ClipboardPaste, strategy.DirectUnicode},
				InterCharDelayMS: 5,
			},
		},
		Overrides: map[string]Profile{
			// Windows Terminal advertises no surrogate support over
			// synthetic input and prefers paste for anything non-trivial.
			"windowsterminal": {
				Category:         classify.Terminal,
				Preferred:        strategy.DirectUnicode,
				Fallbacks:        []strategy.Strategy{strategy.ClipboardPaste},
				InterCharDelayMS: 3,
				Limitations:      []string{LimitNoSurrogates},
			},
			// Word resets caret focus on external activation.
			"winword": {
				Category:              classify.OfficeSuite,
				Preferred:             strategy.ClipboardPaste,
				Fallbacks:             []strategy.Strategy{strategy.DirectUnicode},
				InterCharDelayMS:      5,
				PrePositionCorrection: true,
			},
		},
	}
}
