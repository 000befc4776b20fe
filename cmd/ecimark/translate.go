package main

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-ecimark"
	"github.com/goliatone/go-ecimark/pkg/journal"
	"github.com/goliatone/go-ecimark/pkg/pipeline"
	"github.com/goliatone/go-ecimark/pkg/sink"
)

type translateFlags struct {
	fileType  string
	column    string
	delimiter string
	onError   string
	workers   int
	journal   string
	dryRun    bool
	diff      bool
	yes       bool
}

func newTranslateCommand(a *app) *cobra.Command {
	var f translateFlags
	cmd := &cobra.Command{
		Use:   "translate <file>",
		Short: "Format every description in a .txt or delimited file",
		Long: `Translate reads a free-text file as one description, or a delimited file
with a header row and a description column ("desc" unless --column is set),
and writes <name>-FILTERED<ext> beside it.

Examples:
  ecimark translate items.csv
  ecimark translate export.dat --type .tsv --column "long description"
  ecimark translate items.csv --on-error skip --journal runs.db
  ecimark translate items.csv --diff`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(cmd, a, f, args[0])
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.fileType, "type", "", "file type suffix to use instead of the extension (.txt, .csv, .tsv)")
	flags.StringVar(&f.column, "column", "", "description column of tabular input")
	flags.StringVar(&f.delimiter, "delimiter", "", "single-character field separator")
	flags.StringVar(&f.onError, "on-error", "", "malformed record policy: abort, skip or keep")
	flags.IntVar(&f.workers, "workers", 0, "format records on this many goroutines")
	flags.StringVar(&f.journal, "journal", "", "SQLite file recording every processed record")
	flags.BoolVar(&f.dryRun, "dry-run", false, "format without writing the output file")
	flags.BoolVar(&f.diff, "diff", false, "print a unified diff against the existing output and write nothing")
	flags.BoolVarP(&f.yes, "yes", "y", false, "overwrite an existing output file without asking")
	return cmd
}

func (f translateFlags) apply(cmd *cobra.Command, a *app) {
	flags := cmd.Flags()
	if flags.Changed("type") {
		a.cfg.Type = fileTypeOf(f.fileType)
	}
	if flags.Changed("column") {
		a.cfg.Column = f.column
	}
	if flags.Changed("delimiter") {
		a.cfg.Delimiter = f.delimiter
	}
	if flags.Changed("on-error") {
		a.cfg.OnError = strings.ToLower(strings.TrimSpace(f.onError))
	}
	if flags.Changed("workers") {
		a.cfg.Workers = max(f.workers, 1)
	}
	if flags.Changed("journal") {
		a.cfg.Journal = f.journal
	}
}

func runTranslate(cmd *cobra.Command, a *app, f translateFlags, path string) (err error) {
	ctx := cmd.Context()
	f.apply(cmd, a)
	if err := a.validate(); err != nil {
		return err
	}

	column, err := a.resolveColumn(ctx, path)
	if err != nil {
		return err
	}

	preview := f.dryRun || f.diff
	if !preview && !f.yes {
		ok, err := a.confirmOverwrite(ctx, path)
		if err != nil {
			return err
		}
		if !ok {
			a.printf("left %s unchanged\n", sink.TargetPath(path, fileTypeOf(a.cfg.Type)))
			return nil
		}
	}

	var j *journal.Journal
	if a.cfg.Journal != "" {
		j, err = journal.Open(a.cfg.Journal)
		if err != nil {
			return err
		}
		defer func() {
			if closeErr := j.Close(); closeErr != nil && err == nil {
				err = closeErr
			}
		}()
	}

	p, err := ecimark.NewPipeline(a.cfg, a.logger, j)
	if err != nil {
		return err
	}
	result, err := p.Run(ctx, pipeline.Request{
		Source:    path,
		Type:      a.cfg.Type,
		Column:    column,
		Delimiter: a.cfg.DelimiterRune(),
		DryRun:    preview,
	})
	if err != nil {
		return err
	}

	if f.diff {
		diff, err := sink.Diff(result.Target, result.Kind, result.Outputs)
		if err != nil {
			return err
		}
		if diff == "" {
			a.printf("%s is up to date\n", result.Target)
			return nil
		}
		a.printf("%s", diff)
		return nil
	}

	printSummary(a, result, preview)
	return nil
}

func printSummary(a *app, result *pipeline.Result, dryRun bool) {
	verb := "wrote"
	if dryRun {
		verb = "would write"
	}
	a.printf("%s %s of %s records", verb, humanize.Comma(int64(result.Written)), humanize.Comma(int64(result.Records)))
	if !dryRun {
		a.printf(" (%s)", humanize.Bytes(uint64(result.Bytes)))
	}
	a.printf(" to %s\n", result.Target)
	if result.Skipped > 0 {
		a.printf("skipped %s malformed %s\n", humanize.Comma(int64(result.Skipped)), plural(result.Skipped, "record"))
	}
	if result.Kept > 0 {
		a.printf("kept %s malformed %s unchanged\n", humanize.Comma(int64(result.Kept)), plural(result.Kept, "record"))
	}
	for _, failure := range result.Failures {
		fmt.Fprintf(a.errOut, "  %v\n", failure)
	}
	if result.RunID != "" {
		a.printf("journal run %s\n", result.RunID)
	}
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
