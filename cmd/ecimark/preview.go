package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-ecimark"
	"github.com/goliatone/go-ecimark/internal/logging"
	"github.com/goliatone/go-ecimark/pkg/pipeline"
	"github.com/goliatone/go-ecimark/pkg/preview"
)

func newPreviewCommand(a *app) *cobra.Command {
	var column string
	cmd := &cobra.Command{
		Use:   "preview <file>",
		Short: "Print every formatted record of a file as Markdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("column") {
				a.cfg.Column = column
			}
			if err := a.validate(); err != nil {
				return err
			}
			ctx := cmd.Context()
			path := args[0]

			resolved, err := a.resolveColumn(ctx, path)
			if err != nil {
				return err
			}
			cfg := a.cfg
			cfg.OnError = string(pipeline.PolicyKeep)
			p, err := ecimark.NewPipeline(cfg, logging.NoOp(), nil)
			if err != nil {
				return err
			}
			result, err := p.Run(ctx, pipeline.Request{
				Source:    path,
				Type:      cfg.Type,
				Column:    resolved,
				Delimiter: cfg.DelimiterRune(),
				DryRun:    true,
			})
			if err != nil {
				return err
			}
			a.printf("%s", preview.Document(filepath.Base(path), result.Outputs))
			return nil
		},
	}
	cmd.Flags().StringVar(&column, "column", "", "description column of tabular input")
	return cmd
}
