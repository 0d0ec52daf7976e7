package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tsawler/idmlhwpx/internal/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130) // Standard shell convention for SIGINT
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var verbose, quiet bool

	c := cli.New(os.Stdout, os.Stderr, cli.LogInfo)
	root := c.RootCommand()

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "log errors only")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose && quiet {
			return errors.New("--verbose and --quiet are mutually exclusive")
		}
		switch {
		case verbose:
			c.SetLogLevel(cli.LogDebug)
		case quiet:
			c.SetLogLevel(cli.LogError)
		}
		return nil
	}

	return root.ExecuteContext(ctx)
}
