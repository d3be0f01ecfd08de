// Command drainplan computes drainage point layouts for window frame profiles.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/drainplan/internal/cli"
	dperrors "github.com/matzehuels/drainplan/pkg/errors"
)

// Exit codes.
const (
	exitError     = 1
	exitInvalid   = 2   // rejected parameters, frame file or format
	exitInterrupt = 130 // standard shell convention for SIGINT
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		os.Exit(exitCode(err))
	}
}

func run(ctx context.Context) error {
	var verbose bool

	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()
	root.SilenceErrors = true
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose {
			c.SetLogLevel(cli.LogDebug)
		}
		return nil
	}

	err := root.ExecuteContext(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		if dperrors.IsInvalid(err) && !verbose {
			fmt.Fprintln(os.Stderr, "Error:", dperrors.UserMessage(err))
		} else {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
	}
	return err
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, context.Canceled):
		return exitInterrupt
	case dperrors.IsInvalid(err):
		return exitInvalid
	}
	return exitError
}
