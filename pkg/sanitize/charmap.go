package sanitize

import (
	_ "embed"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

//go:embed htmlmap.yml
var defaultCharMapYAML []byte

// CharMap maps characters to their HTML entity replacements, split into the
// base table and the extra title table.
type CharMap struct {
	Base  map[rune]string
	Title map[rune]string
}

type charMapFile struct {
	Base  map[string]string `yaml:"base"`
	Title map[string]string `yaml:"title"`
}

// DefaultCharMap returns the embedded character table.
func DefaultCharMap() (CharMap, error) {
	return ParseCharMap(defaultCharMapYAML, "htmlmap.yml")
}

// LoadCharMap reads a YAML character table from fsys.
func LoadCharMap(fsys fs.FS, path string) (CharMap, error) {
	if fsys == nil {
		return CharMap{}, fmt.Errorf("sanitize: filesystem is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return CharMap{}, fmt.Errorf("sanitize: read %s: %w", path, err)
	}
	return ParseCharMap(data, path)
}

// ParseCharMap decodes a YAML character table. Keys may be the literal
// character, a decimal code point ("174") or a "U+00AE" code point.
func ParseCharMap(data []byte, source string) (CharMap, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return CharMap{}, fmt.Errorf("sanitize: char map %s is empty", source)
	}

	var doc charMapFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return CharMap{}, fmt.Errorf("sanitize: parse %s: %w", source, err)
	}

	base, err := normaliseTable(doc.Base, source, "base")
	if err != nil {
		return CharMap{}, err
	}
	title, err := normaliseTable(doc.Title, source, "title")
	if err != nil {
		return CharMap{}, err
	}
	return CharMap{Base: base, Title: title}, nil
}

func normaliseTable(raw map[string]string, source, table string) (map[rune]string, error) {
	out := make(map[rune]string, len(raw))
	for key, entity := range raw {
		r, err := parseRuneKey(key)
		if err != nil {
			return nil, fmt.Errorf("sanitize: %s %s key %q: %w", source, table, key, err)
		}
		out[r] = entity
	}
	return out, nil
}

func parseRuneKey(key string) (rune, error) {
	if utf8.RuneCountInString(key) == 1 {
		r, _ := utf8.DecodeRuneInString(key)
		return r, nil
	}
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return 0, fmt.Errorf("empty key")
	}
	base := 10
	if upper := strings.ToUpper(trimmed); strings.HasPrefix(upper, "U+") {
		trimmed = trimmed[2:]
		base = 16
	}
	code, err := strconv.ParseInt(trimmed, base, 32)
	if err != nil {
		return 0, err
	}
	if !utf8.ValidRune(rune(code)) {
		return 0, fmt.Errorf("invalid code point %d", code)
	}
	return rune(code), nil
}

// EntityMap replaces mapped characters with their entities. GroupTitle uses
// the title table layered over the base table.
type EntityMap struct {
	base  map[rune]string
	title map[rune]string
}

// NewEntityMap copies m into an immutable sanitizer.
func NewEntityMap(m CharMap) *EntityMap {
	base := make(map[rune]string, len(m.Base))
	for r, entity := range m.Base {
		base[r] = entity
	}
	title := make(map[rune]string, len(m.Base)+len(m.Title))
	for r, entity := range base {
		title[r] = entity
	}
	for r, entity := range m.Title {
		title[r] = entity
	}
	return &EntityMap{base: base, title: title}
}

// Sanitize replaces every mapped rune in text.
func (e *EntityMap) Sanitize(text string, group Group) string {
	table := e.base
	if group == GroupTitle {
		table = e.title
	}
	if len(table) == 0 || text == "" {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if entity, ok := table[r]; ok {
			b.WriteString(entity)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
