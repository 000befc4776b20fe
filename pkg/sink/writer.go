// Package sink writes formatted descriptions beside their input file.
// Tabular input becomes a one-column table headed "descriptions" with one
// escaped record per line; free-text input is written as-is.
package sink

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-ecimark/pkg/source"
)

const (
	// FilteredSuffix is appended to the input file stem.
	FilteredSuffix = "-FILTERED"
	// TableHeader is the single header of tabular output.
	TableHeader = "descriptions"
)

var recordEscaper = strings.NewReplacer("\n", `\n`, `"`, `\"`)

// TargetPath derives the output path for source. fileType is the suffix
// stripped from the base name and re-appended after FilteredSuffix; when
// empty the path's own extension is used.
func TargetPath(sourcePath, fileType string) string {
	dir := filepath.Dir(sourcePath)
	base := filepath.Base(sourcePath)
	if fileType == "" {
		fileType = filepath.Ext(base)
	}
	stem := strings.TrimSuffix(base, fileType)
	return filepath.Join(dir, stem+FilteredSuffix+fileType)
}

// EscapeRecord turns newlines and double quotes into the two-character
// sequences \n and \" so a record fits on one line.
func EscapeRecord(s string) string {
	return recordEscaper.Replace(s)
}

// Writer writes formatted output to disk.
type Writer struct {
	Perm os.FileMode
}

// New creates a Writer that creates files with mode 0644.
func New() *Writer {
	return &Writer{Perm: 0o644}
}

// Write persists outs to path using the layout for kind and returns the
// number of bytes written.
func (w *Writer) Write(path string, kind source.Kind, outs []string) (int64, error) {
	if kind == source.KindText {
		return w.WriteText(path, strings.Join(outs, ""))
	}
	return w.WriteTable(path, outs)
}

// WriteText writes out unchanged.
func (w *Writer) WriteText(path, out string) (int64, error) {
	return w.writeFile(path, func(dst io.Writer) error {
		_, err := io.WriteString(dst, out)
		return err
	})
}

// WriteTable writes the header line followed by one escaped line per record.
func (w *Writer) WriteTable(path string, outs []string) (int64, error) {
	return w.writeFile(path, func(dst io.Writer) error {
		return EncodeTable(dst, outs)
	})
}

// EncodeTable writes tabular output to dst.
func EncodeTable(dst io.Writer, outs []string) error {
	if _, err := io.WriteString(dst, TableHeader+"\n"); err != nil {
		return err
	}
	for _, out := range outs {
		if _, err := io.WriteString(dst, EscapeRecord(out)+"\n"); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeFile(path string, fill func(io.Writer) error) (written int64, err error) {
	perm := w.Perm
	if perm == 0 {
		perm = 0o644
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, perm)
	if err != nil {
		return 0, fmt.Errorf("sink: create %s: %w", path, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("sink: close %s: %w", path, closeErr))
		}
	}()

	counter := &countingWriter{w: file}
	buf := bufio.NewWriter(counter)
	if err := fill(buf); err != nil {
		return counter.n, fmt.Errorf("sink: write %s: %w", path, err)
	}
	if err := buf.Flush(); err != nil {
		return counter.n, fmt.Errorf("sink: flush %s: %w", path, err)
	}
	return counter.n, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
