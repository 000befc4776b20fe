package markup

import (
	"errors"
	"fmt"
)

// ErrMalformedSection matches every MalformedSectionError via errors.Is.
var ErrMalformedSection = errors.New("markup: malformed section")

// MalformedSectionError reports a section fragment that has no closing brace.
type MalformedSectionError struct {
	// Index is the zero-based position of the fragment after the preamble.
	Index int
	// Fragment is the raw text that followed the opening brace.
	Fragment string
}

func (e *MalformedSectionError) Error() string {
	return fmt.Sprintf("markup: section %d is missing a closing brace: %q", e.Index, preview(e.Fragment))
}

// Is lets errors.Is match the ErrMalformedSection sentinel.
func (e *MalformedSectionError) Is(target error) bool {
	return target == ErrMalformedSection
}

func preview(s string) string {
	const limit = 40
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
