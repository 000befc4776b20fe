// Command ecimark converts annotated product descriptions into <ECI> markup.
//
//	ecimark translate items.csv --on-error skip
//	ecimark format "{product_name}acme blaster{description}a great blaster"
//	ecimark preview items.csv
//	ecimark columns items.csv
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCommand(newApp(os.Stdin, os.Stdout, os.Stderr)).ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
