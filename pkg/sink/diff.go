package sink

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/goliatone/go-ecimark/pkg/source"
)

// Render returns the bytes Write would put on disk for outs.
func Render(kind source.Kind, outs []string) (string, error) {
	if kind == source.KindText {
		return strings.Join(outs, ""), nil
	}
	var buf bytes.Buffer
	if err := EncodeTable(&buf, outs); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Diff returns a unified diff between the file at path and the output that
// outs would produce. A missing file diffs against empty content. An empty
// result means the file is up to date.
func Diff(path string, kind source.Kind, outs []string) (string, error) {
	current, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("sink: read %s: %w", path, err)
	}
	next, err := Render(kind, outs)
	if err != nil {
		return "", err
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(current)),
		B:        difflib.SplitLines(next),
		FromFile: path,
		ToFile:   path + " (new)",
		Context:  2,
	})
	if err != nil {
		return "", fmt.Errorf("sink: diff %s: %w", path, err)
	}
	return diff, nil
}
