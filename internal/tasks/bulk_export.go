package tasks

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/trackflix/trackflix/internal/formatter"
	"github.com/trackflix/trackflix/internal/schema"
	"github.com/trackflix/trackflix/internal/shared"
	"golang.org/x/time/rate"
)

// ExportOpts contains configuration for bulk catalog exports.
type ExportOpts struct {
	Format     formatter.Format // Export format (default: json)
	OutputDir  string           // Base output directory (default: catalog_export_{epoch})
	Resources  []string         // Resource names to export (default: full catalog)
	NumWorkers int              // Concurrent file writers (default: 3)
	RateLimit  float64          // Backend requests per second (default: 5)
	BaseURL    string           // Recorded in the manifest
}

// Export fetches every requested resource and writes one export file
// per resource, concurrently, under a worker pool with rate limited
// backend fetches. Partial failures are recorded per resource and a
// manifest summarizing the run is written last.
func (e *CatalogEngine) Export(ctx context.Context, prog chan<- ProgressUpdate, opts ExportOpts) (*ExportResult, error) {
	if e.lister == nil {
		return nil, fmt.Errorf("%w: backend client not initialized", shared.ErrBackendUnavailable)
	}

	if opts.Format == "" {
		opts.Format = formatter.JSON
	}
	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("catalog_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 3
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	schemas, err := resolveSchemas(opts.Resources)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &ExportResult{
		TotalResources: len(schemas),
		OutputDir:      opts.OutputDir,
		Results:        make([]ResourceExportResult, 0, len(schemas)),
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan exportJob, len(schemas))
	results := make(chan ResourceExportResult, len(schemas))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.exportWorker(&wg, jobs, results, opts)
	}

	go func() {
		defer close(jobs)
		for i, sc := range schemas {
			select {
			case <-ctx.Done():
				return
			default:
			}

			if err := limiter.Wait(ctx); err != nil {
				return
			}

			e.sendProgress(prog, fetchResourceUpdate(i+1, len(schemas), sc.Resource))

			items, err := e.lister.List(ctx, sc.Resource)
			if err != nil {
				e.sendProgress(prog, fetchFailedUpdate(i+1, len(schemas), sc.Resource, err))
				results <- ResourceExportResult{
					Resource: sc.Resource,
					Success:  false,
					Error:    fmt.Errorf("failed to fetch %s: %w", sc.Resource, err),
				}
				continue
			}

			jobs <- exportJob{sc: sc, items: items}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)

		if res.Success {
			result.Succeeded++
			e.sendProgress(prog, writeCompletedUpdate(completed, len(schemas), res))
		} else {
			result.Failed++
			e.sendProgress(prog, writeFailedUpdate(completed, len(schemas), res))
		}
	}

	manifest := formatter.Manifest{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		BaseURL:    opts.BaseURL,
		Format:     opts.Format,
		Resources:  make(map[string]int, len(result.Results)),
	}
	for _, res := range result.Results {
		if res.Success {
			manifest.Resources[res.Resource] = res.Count
			manifest.Files = append(manifest.Files, res.File)
		}
	}

	manifestPath, err := formatter.WriteManifest(manifest, opts.OutputDir)
	if err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	e.sendProgress(prog, manifestUpdate(manifestPath))
	return result, nil
}

// exportWorker writes fetched resources to disk from the jobs channel.
func (e *CatalogEngine) exportWorker(
	wg *sync.WaitGroup,
	jobs <-chan exportJob,
	results chan<- ResourceExportResult,
	opts ExportOpts,
) {
	defer wg.Done()

	for job := range jobs {
		res := ResourceExportResult{
			Resource: job.sc.Resource,
			Count:    len(job.items),
		}

		path, err := formatter.WriteExport(opts.Format, job.sc, job.items, opts.OutputDir)
		if err != nil {
			res.Error = fmt.Errorf("failed to write %s export: %w", job.sc.Resource, err)
			results <- res
			continue
		}

		res.File = path
		res.Success = true
		results <- res
	}
}

// resolveSchemas maps resource names to schemas, defaulting to the
// whole catalog when none are named.
func resolveSchemas(resources []string) ([]schema.Schema, error) {
	if len(resources) == 0 {
		return schema.Catalog(), nil
	}
	schemas := make([]schema.Schema, 0, len(resources))
	for _, name := range resources {
		sc, ok := schema.ByResource(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", shared.ErrUnknownResource, name)
		}
		schemas = append(schemas, sc)
	}
	return schemas, nil
}
