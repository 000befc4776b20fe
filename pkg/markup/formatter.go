package markup

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-ecimark/pkg/sanitize"
)

const (
	// OpeningTag starts every formatted description.
	OpeningTag = "<ECI>"
	// ClosingTag is the tag matching OpeningTag, for use with WithClosingTag.
	ClosingTag = "</ECI>"
	// ProductNameSection is the only section that is title-cased.
	ProductNameSection = "product_name"
)

// Formatter converts raw descriptions into <ECI> markup. A Formatter holds
// only read-only configuration and may be shared across goroutines.
type Formatter struct {
	titles     *TitleCaser
	sanitizer  sanitize.Sanitizer
	hints      HintRenderer
	closingTag string
}

// New constructs a Formatter. Without options it reproduces the plain
// pass-through behaviour: product names are title-cased, everything else is
// copied verbatim and no closing tag is written.
func New(options ...Option) *Formatter {
	f := &Formatter{
		titles:    defaultTitleCaser,
		sanitizer: sanitize.NoOp(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	return f
}

var defaultFormatter = New()

// Format formats text with the default Formatter.
func Format(text string) (string, error) {
	return defaultFormatter.Format(text)
}

// Format parses text into sections, filters each one and concatenates the
// results after the opening tag. The whole record fails on the first error.
func (f *Formatter) Format(text string) (string, error) {
	sections, err := ParseSections(text)
	if err != nil {
		return "", err
	}

	var out strings.Builder
	out.WriteString(OpeningTag)
	for _, section := range sections.Sections() {
		body, err := f.FilterSection(section.Tag, section.Body)
		if err != nil {
			return "", err
		}
		out.WriteString(body)
	}
	out.WriteString(f.closingTag)

	return out.String(), nil
}

// FilterSection formats a single section body according to its tag.
func (f *Formatter) FilterSection(tag, body string) (string, error) {
	parsed := ParseTag(tag)

	if parsed.Name == ProductNameSection {
		return f.sanitizer.Sanitize(f.titles.Apply(body), sanitize.GroupTitle), nil
	}

	body = f.sanitizer.Sanitize(body, sanitize.GroupBase)
	if f.hints == nil {
		return body, nil
	}

	rendered, err := f.hints.RenderHint(parsed.Hint, body)
	if err != nil {
		return "", fmt.Errorf("markup: render section %q: %w", tag, err)
	}
	return rendered, nil
}

// TitleCaser exposes the title caser used for product names.
func (f *Formatter) TitleCaser() *TitleCaser {
	return f.titles
}
