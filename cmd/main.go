package main

import (
	"context"
	"errors"
	"os"

	"github.com/playsv/playsv/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	runner := NewRunner(RunnerOpts{
		Config: config,
		Logger: logger,
	})

	app := &cli.Command{
		Name:     "playsv",
		Usage:    "Remote control and offline cache for a home media server",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrNotConnected) {
			logger.Fatal("server unreachable, command not delivered")
		}
		logger.Fatalf("application error: %v", err)
	}
}
