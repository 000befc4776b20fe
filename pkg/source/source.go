// Package source reads description records from disk. Free-text files
// (".txt") yield one record holding the whole file; anything else is parsed
// as a delimited table whose description column supplies one record per row.
// Input is transcoded to UTF-8 before it leaves this package.
package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Kind distinguishes free-text from tabular input.
type Kind string

const (
	KindText  Kind = "text"
	KindTable Kind = "table"
)

// TextExtension marks free-text input.
const TextExtension = ".txt"

// KindForType maps a file type suffix such as ".txt" or ".csv" to a Kind.
func KindForType(fileType string) Kind {
	if strings.EqualFold(normaliseType(fileType), TextExtension) {
		return KindText
	}
	return KindTable
}

// Options configures Open.
type Options struct {
	// Type is the file type suffix; defaults to the path's extension.
	Type string
	// Column requests a specific description column for tables.
	Column string
	// Delimiter overrides the field separator; ".tsv" defaults to tab,
	// everything else to comma.
	Delimiter rune
}

// Records are the raw descriptions read from one input file.
type Records struct {
	Path    string
	Type    string
	Kind    Kind
	Charset string
	Column  string
	Headers []string
	Values  []string
}

// Open reads path and returns its description records.
func Open(ctx context.Context, path string, opts Options) (*Records, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("source: read %s: %w", path, err)
	}

	text, charset, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("source: decode %s: %w", path, err)
	}

	fileType := normaliseType(opts.Type)
	if fileType == "" {
		fileType = filepath.Ext(path)
	}

	records := &Records{
		Path:    path,
		Type:    fileType,
		Kind:    KindForType(fileType),
		Charset: charset,
	}

	if records.Kind == KindText {
		records.Values = []string{text}
		return records, nil
	}

	table, err := ParseTable(strings.NewReader(text), delimiterFor(fileType, opts.Delimiter))
	if err != nil {
		return nil, fmt.Errorf("source: parse %s: %w", path, err)
	}
	records.Headers = table.Candidates()

	column, err := ResolveColumn(table.Headers, opts.Column)
	if err != nil {
		return nil, err
	}
	values, err := table.Column(column)
	if err != nil {
		return nil, err
	}

	records.Column = column
	records.Values = values
	return records, nil
}

// Headers reads only the normalised header row of a tabular file.
func Headers(path string, opts Options) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("source: read %s: %w", path, err)
	}
	text, _, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("source: decode %s: %w", path, err)
	}
	fileType := normaliseType(opts.Type)
	if fileType == "" {
		fileType = filepath.Ext(path)
	}
	table, err := ParseTable(strings.NewReader(text), delimiterFor(fileType, opts.Delimiter))
	if err != nil {
		return nil, fmt.Errorf("source: parse %s: %w", path, err)
	}
	return table.Candidates(), nil
}

func delimiterFor(fileType string, override rune) rune {
	if override != 0 {
		return override
	}
	if strings.EqualFold(fileType, ".tsv") {
		return '\t'
	}
	return ','
}

func normaliseType(fileType string) string {
	fileType = strings.TrimSpace(fileType)
	if fileType != "" && !strings.HasPrefix(fileType, ".") {
		fileType = "." + fileType
	}
	return fileType
}
