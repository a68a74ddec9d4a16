// SPDX-License-Identifier: MIT

// Command smol fingerprints small graphs spectrally and certifies switching
// mechanisms behind their cospectral pairs.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/leotrs/smol/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.NewRootCommand().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "smol:", err)
		os.Exit(cli.ExitCode(err))
	}
}
