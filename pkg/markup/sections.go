package markup

import "strings"

const (
	sectionOpen  = "{"
	sectionClose = "}"
	hintSep      = "#"
)

// Section is a single tagged portion of a description.
type Section struct {
	Tag  string
	Body string
}

// SectionTag is the parsed form of a raw section tag such as "features#list".
type SectionTag struct {
	Name    string
	Hint    string
	HasHint bool
}

// ParseTag splits a raw tag on the first '#' into name and format hint.
func ParseTag(raw string) SectionTag {
	name, hint, found := strings.Cut(raw, hintSep)
	return SectionTag{Name: name, Hint: hint, HasHint: found}
}

// SectionMap is an insertion-ordered mapping from raw tag to trimmed body.
// Setting an existing tag replaces its body but keeps its original position.
type SectionMap struct {
	keys   []string
	bodies map[string]string
}

// NewSectionMap returns an empty map.
func NewSectionMap() *SectionMap {
	return &SectionMap{bodies: make(map[string]string)}
}

// Set stores body under tag.
func (m *SectionMap) Set(tag, body string) {
	if _, exists := m.bodies[tag]; !exists {
		m.keys = append(m.keys, tag)
	}
	m.bodies[tag] = body
}

// Get returns the body stored under tag.
func (m *SectionMap) Get(tag string) (string, bool) {
	if m == nil {
		return "", false
	}
	body, ok := m.bodies[tag]
	return body, ok
}

// Len reports the number of distinct tags.
func (m *SectionMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the tags in first-seen order.
func (m *SectionMap) Keys() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.keys...)
}

// Sections returns the tag/body pairs in first-seen order.
func (m *SectionMap) Sections() []Section {
	if m == nil {
		return nil
	}
	out := make([]Section, 0, len(m.keys))
	for _, key := range m.keys {
		out = append(out, Section{Tag: key, Body: m.bodies[key]})
	}
	return out
}

// ParseSections splits text into its tagged sections. Anything before the
// first '{' is discarded. Every fragment after a '{' must contain a '}'; the
// text up to the first '}' is the tag and the trimmed remainder is the body.
func ParseSections(text string) (*SectionMap, error) {
	sections := NewSectionMap()

	fragments := strings.Split(text, sectionOpen)
	for i, fragment := range fragments[1:] {
		tag, body, found := strings.Cut(fragment, sectionClose)
		if !found {
			return nil, &MalformedSectionError{Index: i, Fragment: fragment}
		}
		sections.Set(tag, strings.TrimSpace(body))
	}

	return sections, nil
}
