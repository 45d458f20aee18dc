package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/trackflix/trackflix/internal/api"
	"github.com/trackflix/trackflix/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		} else {
			logger.Warn("failed to load config.toml, using defaults", "error", err)
		}
	}

	httpClient := &http.Client{
		Timeout: time.Duration(config.API.TimeoutSeconds) * time.Second,
	}

	client := api.NewClient(config.API.BaseURL, api.ClientOpts{
		HTTPClient:  httpClient,
		Logger:      logger,
		RateLimit:   config.API.RateLimit,
		Credentials: &config.Credentials,
	})

	runner := NewRunner(RunnerOpts{
		Config: config,
		Client: client,
		Logger: logger,
	})

	app := &cli.Command{
		Name:     "trackflix",
		Usage:    "Admin dashboard for the Trackflix catalog",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		}
		logger.Fatalf("application error: %v", err)
	}
}
