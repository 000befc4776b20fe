package prompt

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("prompt: aborted")
	// ErrNoCandidates is returned when there is nothing to choose from.
	ErrNoCandidates = errors.New("prompt: no columns to choose from")
)
