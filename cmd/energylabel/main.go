// Command energylabel estimates building energy consumption and assigns an
// A-G efficiency rating.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rshade/energylabel/internal/cli"
	"github.com/rshade/energylabel/internal/rating"
	"github.com/rshade/energylabel/pkg/version"
)

// Exit codes other than the configurable --fail-on-rating code.
const (
	exitOK           = 0
	exitError        = 1
	exitInvalidInput = 2
)

func main() {
	os.Exit(run())
}

// run executes the root command and returns the process exit code.
func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCmd(version.String())
	err := root.ExecuteContext(ctx)
	var ratingErr *cli.RatingExitError
	switch {
	case err == nil:
	case errors.As(err, &ratingErr):
		fmt.Fprintln(os.Stderr, err)
	default:
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return extractExitCode(err)
}

// extractExitCode maps a command error to an exit code. A RatingExitError
// anywhere in the chain carries its own code.
func extractExitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var ratingErr *cli.RatingExitError
	if errors.As(err, &ratingErr) {
		return ratingErr.ExitCode
	}
	if errors.Is(err, rating.ErrInvalidInput) {
		return exitInvalidInput
	}
	return exitError
}
