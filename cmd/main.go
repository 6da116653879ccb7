package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/WolvTMG/tmgmidvite-xyz/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := NewRunner(RunnerOpts{Logger: logger})

	app := &cli.Command{
		Name:     "tmgmidvite",
		Usage:    "Relay the Spotify track you are listening to as simple JSON",
		Version:  "1.0.0",
		Flags:    serveFlags(),
		Action:   runner.Serve,
		Commands: runner.register(),
	}

	if err := app.Run(ctx, os.Args); err != nil {
		if errors.Is(err, shared.ErrMissingCredentials) {
			logger.Error("credentials missing; set SPOTIFY_CLIENT_ID, SPOTIFY_CLIENT_SECRET and SPOTIFY_REFRESH_TOKEN", "error", err)
			os.Exit(2)
		}
		logger.Fatalf("application error: %v", err)
	}
}
