// Package main is the entry point for the ccver CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/RyanGuild/ccver/internal/cli"
	ccverrors "github.com/RyanGuild/ccver/internal/errors"
)

// Version information set by ldflags during build.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var exitFunc = os.Exit

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cli.SetVersionInfo(version, commit, date)
	exitFunc(run(ctx, cli.ExecuteContext, os.Stderr))
}

func run(ctx context.Context, execute func(context.Context) error, stderr *os.File) int {
	if err := execute(ctx); err != nil {
		if ctx.Err() != nil {
			fmt.Fprintln(stderr, "interrupted")
			return 130
		}
		fmt.Fprintln(stderr, err)
		if ccverrors.IsKind(err, ccverrors.KindConflict) {
			return 2
		}
		return 1
	}
	return 0
}
