package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// DefaultColumn is the header picked without asking.
const DefaultColumn = "desc"

// Table is a decoded delimited file with normalised headers.
type Table struct {
	Headers []string
	Rows    [][]string
}

// ParseTable reads delimited text with a header row. Headers are lowercased
// and spaces become underscores; blank lines are skipped.
func ParseTable(r io.Reader, delimiter rune) (*Table, error) {
	reader := csv.NewReader(r)
	if delimiter != 0 {
		reader.Comma = delimiter
	}
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("source: table has no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("source: read header: %w", err)
	}

	table := &Table{Headers: make([]string, len(header))}
	for i, h := range header {
		table.Headers[i] = NormaliseHeader(h)
	}

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("source: read row: %w", err)
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

// NormaliseHeader lowercases a header and replaces spaces with underscores.
func NormaliseHeader(h string) string {
	return strings.ReplaceAll(strings.ToLower(h), " ", "_")
}

// Index returns the position of the normalised header name, or -1.
func (t *Table) Index(name string) int {
	for i, h := range t.Headers {
		if h == name {
			return i
		}
	}
	return -1
}

// Column returns the values of the named column, one per row. Short rows
// yield empty strings.
func (t *Table) Column(name string) ([]string, error) {
	idx := t.Index(name)
	if idx < 0 {
		return nil, &UnresolvedColumnError{Requested: name, Candidates: t.Candidates()}
	}
	values := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		if idx < len(row) {
			values[i] = row[idx]
		}
	}
	return values, nil
}

// Candidates returns a copy of the headers.
func (t *Table) Candidates() []string {
	return append([]string(nil), t.Headers...)
}

// ResolveColumn picks the description column. An explicitly requested header
// wins, then "desc"; anything else is an UnresolvedColumnError listing the
// available headers.
func ResolveColumn(headers []string, requested string) (string, error) {
	requested = NormaliseHeader(strings.TrimSpace(requested))
	candidates := append([]string(nil), headers...)

	if requested != "" {
		for _, h := range headers {
			if h == requested {
				return h, nil
			}
		}
		return "", &UnresolvedColumnError{Requested: requested, Candidates: candidates}
	}

	for _, h := range headers {
		if h == DefaultColumn {
			return h, nil
		}
	}
	return "", &UnresolvedColumnError{Candidates: candidates}
}
