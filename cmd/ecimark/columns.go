package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-ecimark/pkg/source"
)

func newColumnsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "columns <file>",
		Short: "List the normalised headers of a delimited file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			headers, err := source.Headers(args[0], a.sourceOptions(""))
			if err != nil {
				return err
			}
			for _, h := range headers {
				marker := " "
				if h == source.DefaultColumn {
					marker = "*"
				}
				a.printf("%s %s\n", marker, h)
			}
			return nil
		},
	}
}
