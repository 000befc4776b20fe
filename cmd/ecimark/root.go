package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-ecimark/internal/logging"
	"github.com/goliatone/go-ecimark/internal/logging/gologger"
	"github.com/goliatone/go-ecimark/pkg/config"
	"github.com/goliatone/go-ecimark/pkg/prompt"
	"github.com/goliatone/go-ecimark/pkg/sink"
	"github.com/goliatone/go-ecimark/pkg/source"
)

// app carries the streams, flag values and loaded configuration shared by
// every command.
type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	configPath string
	logLevel   string
	logFormat  string
	closingTag string
	richHints  bool
	sanitize   string
	charMap    string
	stopWords  []string

	cfg    config.Config
	logger logging.Logger

	interactive func() bool
	driver      func() prompt.Driver
}

func newApp(in io.Reader, out, errOut io.Writer) *app {
	return &app{
		in:     in,
		out:    out,
		errOut: errOut,
		logger: logging.NoOp(),
		interactive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
		driver: prompt.NewSurveyDriver,
	}
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "ecimark",
		Short: "Convert annotated product descriptions into <ECI> markup",
		Long: `ecimark formats product descriptions made of {tag} sections.

The product_name section is title-cased and every other section passes
through unchanged. Files are written beside the input as <name>-FILTERED<ext>.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "YAML configuration file")
	flags.StringVar(&a.logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	flags.StringVar(&a.logFormat, "log-format", "", "log format (console, json, pretty)")
	flags.StringVar(&a.closingTag, "closing-tag", "", "append this tag after the last section, e.g. </ECI>")
	flags.BoolVar(&a.richHints, "rich-hints", false, "render #list, #table, #seg and #graf section hints")
	flags.StringVar(&a.sanitize, "sanitize", "", "sanitizer: none, entities, strict or strict+entities")
	flags.StringVar(&a.charMap, "char-map", "", "YAML character entity table for the entities sanitizer")
	flags.StringSliceVar(&a.stopWords, "stop-words", nil, "comma-separated title-case stop words")

	root.AddCommand(
		newTranslateCommand(a),
		newFormatCommand(a),
		newPreviewCommand(a),
		newColumnsCommand(a),
	)
	return root
}

// load reads the config file and lets explicitly set flags override it.
func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Logging.Level = a.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format = a.logFormat
	}
	if flags.Changed("closing-tag") {
		cfg.ClosingTag = strings.TrimSpace(a.closingTag)
	}
	if flags.Changed("rich-hints") {
		cfg.RichHints = a.richHints
	}
	if flags.Changed("sanitize") {
		cfg.Sanitize = strings.ToLower(strings.TrimSpace(a.sanitize))
	}
	if flags.Changed("char-map") {
		cfg.CharMap = a.charMap
	}
	if flags.Changed("stop-words") {
		cfg.StopWords = a.stopWords
	}
	a.cfg = cfg
	return nil
}

// validate re-checks the configuration after command flags were applied and
// builds the logger.
func (a *app) validate() error {
	if err := a.cfg.Validate(); err != nil {
		return err
	}
	provider, err := gologger.NewProvider(gologger.Config{
		Level:  a.cfg.Logging.Level,
		Format: a.cfg.Logging.Format,
	})
	if err != nil {
		return err
	}
	a.logger = logging.Named(provider, "ecimark")
	return nil
}

func (a *app) sourceOptions(column string) source.Options {
	return source.Options{
		Type:      a.cfg.Type,
		Column:    column,
		Delimiter: a.cfg.DelimiterRune(),
	}
}

// resolveColumn settles the description column of a tabular file before a
// run. When neither "desc" nor the requested column exists and the process
// is attached to a terminal, the operator picks one.
func (a *app) resolveColumn(ctx context.Context, path string) (string, error) {
	opts := a.sourceOptions(a.cfg.Column)
	fileType := opts.Type
	if fileType == "" {
		fileType = filepath.Ext(path)
	}
	if source.KindForType(fileType) == source.KindText {
		return a.cfg.Column, nil
	}

	headers, err := source.Headers(path, opts)
	if err != nil {
		return "", err
	}
	column, err := source.ResolveColumn(headers, a.cfg.Column)
	if err == nil {
		return column, nil
	}

	var unresolved *source.UnresolvedColumnError
	if !errors.As(err, &unresolved) || !a.interactive() {
		return "", err
	}
	return prompt.PickColumn(ctx, a.driver(), unresolved)
}

// confirmOverwrite asks before replacing an existing target in a terminal.
func (a *app) confirmOverwrite(ctx context.Context, path string) (bool, error) {
	target := sink.TargetPath(path, fileTypeOf(a.cfg.Type))
	if _, err := os.Stat(target); err != nil || !a.interactive() {
		return true, nil
	}
	return prompt.ConfirmOverwrite(ctx, a.driver(), target)
}

func fileTypeOf(fileType string) string {
	fileType = strings.TrimSpace(fileType)
	if fileType != "" && !strings.HasPrefix(fileType, ".") {
		return "." + fileType
	}
	return fileType
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
