// Package ecimark converts annotated product descriptions into <ECI> markup.
//
// A description is a sequence of sections, each opened by a {tag}. The
// product_name section is title-cased; every other section passes through.
// Format handles a single description, while NewPipeline translates whole
// .txt and delimited files into a sibling -FILTERED file.
//
//	out, err := ecimark.Format("{product_name}acme blaster{description}a great blaster")
//	// out == "<ECI>acme Blastera great blaster"
package ecimark

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-ecimark/internal/logging"
	"github.com/goliatone/go-ecimark/pkg/config"
	"github.com/goliatone/go-ecimark/pkg/journal"
	"github.com/goliatone/go-ecimark/pkg/markup"
	"github.com/goliatone/go-ecimark/pkg/markup/hints"
	"github.com/goliatone/go-ecimark/pkg/pipeline"
	"github.com/goliatone/go-ecimark/pkg/sanitize"
)

// MalformedSectionError aliases markup.MalformedSectionError for callers that
// only import the root package.
type MalformedSectionError = markup.MalformedSectionError

// ErrMalformedSection matches every MalformedSectionError.
var ErrMalformedSection = markup.ErrMalformedSection

// Format formats one description with the default formatter.
func Format(text string) (string, error) {
	return markup.Format(text)
}

// NewFormatter builds a formatter from cfg: stop words, closing tag,
// sanitizer mode and, when enabled, the hint strategies.
func NewFormatter(cfg config.Config) (*markup.Formatter, error) {
	sanitizer, err := NewSanitizer(cfg)
	if err != nil {
		return nil, err
	}

	opts := []markup.Option{markup.WithSanitizer(sanitizer)}
	if len(cfg.StopWords) > 0 {
		opts = append(opts, markup.WithStopWords(cfg.StopWords))
	}
	if cfg.ClosingTag != "" {
		opts = append(opts, markup.WithClosingTag(cfg.ClosingTag))
	}
	if cfg.RichHints {
		opts = append(opts, markup.WithHintRenderer(hints.Default()))
	}
	return markup.New(opts...), nil
}

// NewSanitizer resolves the sanitizer selected by cfg.Sanitize. A CharMap
// path replaces the embedded entity table.
func NewSanitizer(cfg config.Config) (sanitize.Sanitizer, error) {
	var chain []sanitize.Sanitizer
	switch cfg.Sanitize {
	case "", config.SanitizeNone:
		return sanitize.NoOp(), nil
	case config.SanitizeStrict, config.SanitizeStrictEntities:
		chain = append(chain, sanitize.Strict())
	case config.SanitizeEntities:
	default:
		return nil, fmt.Errorf("ecimark: %w: %q", config.ErrSanitizeInvalid, cfg.Sanitize)
	}

	if cfg.UsesEntities() {
		charMap, err := loadCharMap(cfg.CharMap)
		if err != nil {
			return nil, err
		}
		chain = append(chain, sanitize.NewEntityMap(charMap))
	}
	return sanitize.Chain(chain...), nil
}

func loadCharMap(path string) (sanitize.CharMap, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return sanitize.DefaultCharMap()
	}
	return sanitize.LoadCharMap(os.DirFS(filepath.Dir(path)), filepath.Base(path))
}

// NewPipeline builds a translation pipeline from cfg. logger and j are
// optional; the caller owns j.
func NewPipeline(cfg config.Config, logger logging.Logger, j *journal.Journal) (*pipeline.Pipeline, error) {
	formatter, err := NewFormatter(cfg)
	if err != nil {
		return nil, err
	}
	policy, err := pipeline.ParsePolicy(cfg.OnError)
	if err != nil {
		return nil, err
	}

	opts := []pipeline.Option{
		pipeline.WithFormatter(formatter),
		pipeline.WithPolicy(policy),
		pipeline.WithWorkers(cfg.Workers),
		pipeline.WithLogger(logger),
	}
	if j != nil {
		opts = append(opts, pipeline.WithJournal(j))
	}
	return pipeline.New(opts...), nil
}
