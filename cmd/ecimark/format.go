package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-ecimark"
)

func newFormatCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "format [text|-]",
		Short: "Format a single description from the arguments or stdin",
		Example: `  ecimark format "{product_name}acme blaster{description}a great blaster"
  cat item.txt | ecimark format -`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.validate(); err != nil {
				return err
			}
			text, err := formatInput(a.in, args)
			if err != nil {
				return err
			}
			formatter, err := ecimark.NewFormatter(a.cfg)
			if err != nil {
				return err
			}
			out, err := formatter.Format(text)
			if err != nil {
				return err
			}
			a.printf("%s\n", out)
			return nil
		},
	}
}

// formatInput joins args with spaces, or reads in when args are empty or a
// single "-".
func formatInput(in io.Reader, args []string) (string, error) {
	if len(args) > 0 && !(len(args) == 1 && args[0] == "-") {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}
