package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/trackflix/trackflix/internal/formatter"
	"github.com/trackflix/trackflix/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Export performs a bulk catalog export with live progress output.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	opts := tasks.ExportOpts{
		Format:     format,
		OutputDir:  cmd.String("output"),
		Resources:  cmd.StringSlice("resource"),
		NumWorkers: int(cmd.Int("workers")),
		RateLimit:  cmd.Float("rate-limit"),
		BaseURL:    r.client.BaseURL(),
	}

	r.logger.Info("starting catalog export", "format", format, "base_url", opts.BaseURL)

	prog := make(chan tasks.ProgressUpdate, 64)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for update := range prog {
			r.writePlain("%s\n", update.Message)
		}
	}()

	result, err := r.engine.Export(ctx, prog, opts)
	close(prog)
	wg.Wait()

	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	r.writePlainHeader("Export Complete")
	r.writePlain("Output: %s\n", result.OutputDir)
	r.writePlain("Resources: %d succeeded, %d failed\n", result.Succeeded, result.Failed)
	if result.ManifestPath != "" {
		r.writePlain("Manifest: %s\n", result.ManifestPath)
	}

	if result.Failed > 0 {
		return fmt.Errorf("export finished with %d failed resource(s)", result.Failed)
	}
	return nil
}
