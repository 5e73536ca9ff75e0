// Package profile holds the compatibility table: per-category injection
// parameters plus per-process overrides supplied by the settings layer.
// The table is immutable once loaded; updates go through an explicit
// reload that swaps the whole table, never through in-place mutation.
package profile

import (
	"time"

	"github.com/chaz8081/typesink/internal/classify"
	"github.com/chaz8081/typesink/internal/strategy"
)

// Limitation tags understood by the engine. Unknown tags are carried
// through untouched so a newer settings file degrades gracefully.
const (
	// LimitNoSurrogates marks targets that drop or mangle non-BMP
	// codepoints delivered as synthetic key events.
	LimitNoSurrogates = "no-unicode-surrogates"
	// LimitUnsupported marks targets injection must not touch at all.
	LimitUnsupported = "unsupported"
	// LimitSlowQueue marks targets whose input queue overruns without
	// inter-character delays.
	LimitSlowQueue = "slow-input-queue"
)

// Profile is the set of injection parameters for one application
// category or one specific process. Values are copied out of the store
// per request; a Profile is never shared mutable state.
type Profile struct {
	Category              classify.Category   `yaml:"category"`
	Preferred             strategy.Strategy   `yaml:"preferred"`
	Fallbacks             []strategy.Strategy `yaml:"fallbacks"`
	InterCharDelayMS      int                 `yaml:"inter_char_delay_ms"`
	PrePositionCorrection bool                `yaml:"pre_position_correction"`
	Limitations           []string            `yaml:"limitations"`
}

// InterCharDelay returns the spacing between synthetic input events.
func (p Profile) InterCharDelay() time.Duration {
	return time.Duration(p.InterCharDelayMS) * time.Millisecond
}

// Limited reports whether the profile carries the given limitation tag.
func (p Profile) Limited(tag string) bool {
	for _, t := range p.Limitations {
		if t == tag {
			return true
		}
	}
	return false
}

// SafeDefault is the profile of last resort: clipboard paste with
// conservative delays and no known limitations. The engine must never
// be left without a usable profile, even if the table is empty or the
// settings file is corrupt.
func SafeDefault() Profile {
	return Profile{
		Category:         classify.Generic,
		Preferred:        strategy.ClipboardPaste,
		Fallbacks:        []strategy.Strategy{strategy.DirectUnicode},
		InterCharDelayMS: 10,
	}
}
