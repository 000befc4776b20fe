package markup

import (
	"strings"

	"github.com/goliatone/go-ecimark/pkg/sanitize"
)

// Option configures a Formatter.
type Option func(*Formatter)

// HintRenderer renders a section body for a format hint such as "list" or
// "table". Sections without a hint are passed an empty hint; implementations
// decide how empty and unknown hints are handled.
type HintRenderer interface {
	RenderHint(hint, body string) (string, error)
}

// WithStopWords replaces the title-case stop words.
func WithStopWords(words []string) Option {
	return func(f *Formatter) {
		if words != nil {
			f.titles = NewTitleCaser(words)
		}
	}
}

// WithSanitizer installs the character sanitization hook applied to every
// section body before it is formatted.
func WithSanitizer(s sanitize.Sanitizer) Option {
	return func(f *Formatter) {
		if s != nil {
			f.sanitizer = s
		}
	}
}

// WithHintRenderer renders every section other than product_name through r,
// keyed by the tag's "#hint" suffix.
func WithHintRenderer(r HintRenderer) Option {
	return func(f *Formatter) {
		f.hints = r
	}
}

// WithClosingTag appends tag after the last section. The default output has
// no closing tag.
func WithClosingTag(tag string) Option {
	return func(f *Formatter) {
		f.closingTag = strings.TrimSpace(tag)
	}
}
