package prompt

import (
	"context"
	"fmt"

	"github.com/goliatone/go-ecimark/pkg/source"
)

// PickColumn asks which header holds the descriptions after automatic
// resolution failed. The requested header, when one was given, is reported
// before the question.
func PickColumn(ctx context.Context, driver Driver, unresolved *source.UnresolvedColumnError) (string, error) {
	if unresolved == nil || len(unresolved.Candidates) == 0 {
		return "", ErrNoCandidates
	}
	if unresolved.Requested != "" {
		msg := fmt.Sprintf("Column %q was not found.", unresolved.Requested)
		if err := driver.Info(ctx, msg); err != nil {
			return "", err
		}
	}

	idx, err := driver.Select(ctx, SelectConfig{
		Message:  "Which column holds the descriptions?",
		Options:  unresolved.Candidates,
		Help:     "Headers are lowercased with spaces turned into underscores.",
		PageSize: 10,
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(unresolved.Candidates) {
		return "", fmt.Errorf("prompt: selection %d out of range", idx)
	}
	return unresolved.Candidates[idx], nil
}

// ConfirmOverwrite asks before replacing an existing output file.
func ConfirmOverwrite(ctx context.Context, driver Driver, path string) (bool, error) {
	return driver.Confirm(ctx, ConfirmConfig{
		Message: fmt.Sprintf("%s already exists. Overwrite?", path),
		Default: true,
	})
}
