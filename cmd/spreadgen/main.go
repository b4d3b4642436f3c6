// Package main provides the CLI entrypoint for spreadgen.
//
// spreadgen is a source-to-source expander for Rust:
//   - finds spread!, anon!, slet!, clone!, fn_struct! and assert_fields_eq! invocations
//   - replaces each with the plain Rust it stands for
//   - writes the result next to the input, optionally through rustfmt
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"spreadgen/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := cli.NewRootCommand().ExecuteContext(ctx)

	stop()

	if err != nil {
		if !errors.Is(err, cli.ErrFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}

		os.Exit(1)
	}
}
