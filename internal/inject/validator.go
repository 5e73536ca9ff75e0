package inject

import (
	"strings"

	"github.com/chaz8081/typesink/internal/classify"
	"github.com/chaz8081/typesink/internal/window"
)

// FieldReader exposes the focused field's content for targets that have
// an accessibility or introspection surface. The real implementation
// belongs to a platform collaborator; the engine only needs this seam.
type FieldReader interface {
	FocusedText(win window.Info) (string, error)
}

// Validator performs the best-effort post-injection check. Categories
// without an introspection surface are trusted outright: a read-back we
// cannot do is not a failure.
type Validator struct {
	reader FieldReader
}

// NewValidator returns a Validator backed by reader. A nil reader
// trusts every injection.
func NewValidator(reader FieldReader) *Validator {
	return &Validator{reader: reader}
}

// introspectable reports whether the category exposes a field we can
// read back.
func introspectable(cat classify.Category) bool {
	return cat == classify.Browser || cat == classify.IDE
}

// Validate reports whether expected appears in the focused field.
// Read-back errors count as success; validation is advisory and never
// blocks the result.
func (v *Validator) Validate(win window.Info, cat classify.Category, expected string) bool {
	if v == nil || v.reader == nil || !introspectable(cat) {
		return true
	}
	got, err := v.reader.FocusedText(win)
	if err != nil {
		return true
	}
	return strings.Contains(got, expected)
}
