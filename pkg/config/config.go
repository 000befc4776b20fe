// Package config holds the runtime configuration of the translator. Values
// come from an optional YAML file and are overridden by CLI flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

// Malformed-record policies.
const (
	PolicyAbort = "abort"
	PolicySkip  = "skip"
	PolicyKeep  = "keep"
)

// Sanitizer modes.
const (
	SanitizeNone     = "none"
	SanitizeEntities = "entities"
	SanitizeStrict   = "strict"
	// SanitizeStrictEntities strips markup and then applies the entity map.
	SanitizeStrictEntities = "strict+entities"
)

var (
	ErrPolicyInvalid        = errors.New("config: on_error must be abort, skip or keep")
	ErrSanitizeInvalid      = errors.New("config: sanitize must be none, entities, strict or strict+entities")
	ErrCharMapRequiresMode  = errors.New("config: char_map requires an entities sanitize mode")
	ErrLoggingLevelInvalid  = errors.New("config: logging level is invalid")
	ErrLoggingFormatInvalid = errors.New("config: logging format is invalid")
)

// Config is the translator configuration.
type Config struct {
	// Type overrides the input file type suffix (".txt", ".csv", ".tsv").
	Type string `yaml:"type"`
	// Column names the description column of tabular input.
	Column string `yaml:"column"`
	// Delimiter is a single-character field separator for tabular input.
	Delimiter string `yaml:"delimiter"`
	// OnError selects what happens to a record that fails to format.
	OnError string `yaml:"on_error"`
	// Workers formats records concurrently when greater than one.
	Workers int `yaml:"workers"`
	// Journal is an optional SQLite path recording every processed record.
	Journal string `yaml:"journal"`
	// ClosingTag is appended after the last section; empty means none.
	ClosingTag string `yaml:"closing_tag"`
	// RichHints renders sections with the list, table, seg and graf
	// strategies instead of passing them through. Sections without a #hint,
	// or with an unknown one, render as a list.
	RichHints bool `yaml:"rich_hints"`
	// Sanitize selects the character sanitization hook.
	Sanitize string `yaml:"sanitize"`
	// CharMap overrides the embedded character entity table.
	CharMap string `yaml:"char_map"`
	// StopWords overrides the title-case stop words.
	StopWords []string `yaml:"stop_words"`
	Logging   Logging  `yaml:"logging"`
}

// Logging configures the go-logger provider.
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration that reproduces the plain formatter:
// abort on the first malformed record, sequential, no sanitization.
func Default() Config {
	return Config{
		OnError:  PolicyAbort,
		Workers:  1,
		Sanitize: SanitizeNone,
		Logging: Logging{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads a YAML file over the defaults. An empty path returns Default.
func Load(path string) (Config, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if len(strings.TrimSpace(string(data))) > 0 {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse yaml: %w", err)
		}
	}
	cfg.normalise()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalise() {
	c.OnError = strings.ToLower(strings.TrimSpace(c.OnError))
	c.Sanitize = strings.ToLower(strings.TrimSpace(c.Sanitize))
	c.ClosingTag = strings.TrimSpace(c.ClosingTag)
	if c.OnError == "" {
		c.OnError = PolicyAbort
	}
	if c.Sanitize == "" {
		c.Sanitize = SanitizeNone
	}
	if c.Workers == 0 {
		c.Workers = 1
	}
}

// Validate checks enumerations and ranges.
func (c Config) Validate() error {
	switch c.OnError {
	case PolicyAbort, PolicySkip, PolicyKeep:
	default:
		return ErrPolicyInvalid
	}
	switch c.Sanitize {
	case SanitizeNone, SanitizeEntities, SanitizeStrict, SanitizeStrictEntities:
	default:
		return ErrSanitizeInvalid
	}
	if strings.TrimSpace(c.CharMap) != "" && !c.UsesEntities() {
		return ErrCharMapRequiresMode
	}
	switch strings.ToLower(strings.TrimSpace(c.Logging.Level)) {
	case "", "trace", "debug", "info", "warn", "warning", "error", "fatal":
	default:
		return ErrLoggingLevelInvalid
	}
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "", "console", "json", "pretty":
	default:
		return ErrLoggingFormatInvalid
	}

	return validation.ValidateStruct(&c,
		validation.Field(&c.Workers, validation.Min(1), validation.Max(256)),
		validation.Field(&c.Delimiter, validation.By(singleRune)),
	)
}

// singleRune accepts an empty delimiter, the two-character escape `\t`, or
// exactly one rune.
func singleRune(value any) error {
	s, _ := value.(string)
	if s == "" || s == `\t` || utf8.RuneCountInString(s) == 1 {
		return nil
	}
	return errors.New("must be a single character or \\t")
}

// UsesEntities reports whether the entity map sanitizer is active.
func (c Config) UsesEntities() bool {
	return c.Sanitize == SanitizeEntities || c.Sanitize == SanitizeStrictEntities
}

// DelimiterRune returns the configured delimiter, or 0 for the default.
func (c Config) DelimiterRune() rune {
	if c.Delimiter == "" {
		return 0
	}
	if c.Delimiter == `\t` {
		return '\t'
	}
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	return r
}
