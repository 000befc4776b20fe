package hints

import (
	"strings"
)

// Built-in hint names.
const (
	HintList      = "list"
	HintTable     = "table"
	HintSegment   = "seg"
	HintParagraph = "graf"
)

// Default returns a registry with the list, table, seg and graf strategies
// rendered from the embedded templates.
func Default() *Registry {
	engine := NewEngine(nil)
	registry := NewRegistry()
	registry.MustRegister(NewList(engine))
	registry.MustRegister(NewTable(engine))
	registry.MustRegister(NewSegment(engine))
	registry.MustRegister(NewParagraph(engine))
	return registry
}

type templateStrategy struct {
	name     string
	template string
	engine   *Engine
	data     func(body string) map[string]any
}

func (s *templateStrategy) Name() string { return s.name }

func (s *templateStrategy) Render(body string) (string, error) {
	return s.engine.Render(s.template, s.data(body))
}

// NewList renders each non-empty line as a <li>. A line ending in ':' is
// joined with the line that follows it.
func NewList(engine *Engine) Strategy {
	return &templateStrategy{
		name:     HintList,
		template: "list.tpl",
		engine:   engine,
		data: func(body string) map[string]any {
			return map[string]any{"items": listItems(body)}
		},
	}
}

// NewTable renders lines as table rows; the first line is the header.
// Cells are separated by tabs or runs of two spaces.
func NewTable(engine *Engine) Strategy {
	return &templateStrategy{
		name:     HintTable,
		template: "table.tpl",
		engine:   engine,
		data: func(body string) map[string]any {
			return map[string]any{"rows": tableRows(body)}
		},
	}
}

// NewSegment renders "label: value" lines as plain lines and every other
// line as a bold heading.
func NewSegment(engine *Engine) Strategy {
	return &templateStrategy{
		name:     HintSegment,
		template: "seg.tpl",
		engine:   engine,
		data: func(body string) map[string]any {
			return map[string]any{"lines": segmentLines(body)}
		},
	}
}

// NewParagraph renders the body as one paragraph with <br> line breaks.
func NewParagraph(engine *Engine) Strategy {
	return &templateStrategy{
		name:     HintParagraph,
		template: "graf.tpl",
		engine:   engine,
		data: func(body string) map[string]any {
			return map[string]any{"body": body}
		},
	}
}

func listItems(body string) []string {
	joined := strings.ReplaceAll(body, ":\n", ":")
	var items []string
	for _, line := range strings.Split(joined, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		items = append(items, line)
	}
	return items
}

// TableRow is one rendered table row.
type TableRow struct {
	Header bool
	Cells  []string
}

func tableRows(body string) []TableRow {
	lines := strings.Split(body, "\n")
	rows := make([]TableRow, 0, len(lines))
	for i, line := range lines {
		line = strings.ReplaceAll(line, "  ", "\t")
		cells := strings.Split(line, "\t")
		for len(cells) > 0 && cells[len(cells)-1] == "" {
			cells = cells[:len(cells)-1]
		}
		rows = append(rows, TableRow{Header: i == 0, Cells: cells})
	}
	return rows
}

// SegmentLine is one rendered segment line.
type SegmentLine struct {
	Pair bool
	Text string
}

func segmentLines(body string) []SegmentLine {
	lines := strings.Split(body, "\n")
	out := make([]SegmentLine, 0, len(lines))
	for _, line := range lines {
		out = append(out, SegmentLine{Pair: strings.Contains(line, ":"), Text: line})
	}
	return out
}
