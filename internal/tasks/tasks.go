// package tasks implements long-running catalog operations.
//
// The core abstraction is ExportEngine, which orchestrates bulk exports
// of the backend catalog. Operations emit progress updates via channels
// for non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"context"

	"github.com/trackflix/trackflix/internal/schema"
)

// Lister fetches the current server copy of a resource collection.
// api.Client satisfies this interface.
type Lister interface {
	List(ctx context.Context, resource string) ([]schema.Entity, error)
}

// ResourceExportResult represents the outcome of exporting one resource.
type ResourceExportResult struct {
	Resource string // Resource path segment
	Count    int    // Entities exported
	File     string // Path of the written file
	Success  bool
	Error    error
}

// ExportResult contains all data from a bulk export run.
type ExportResult struct {
	TotalResources int
	Succeeded      int
	Failed         int
	OutputDir      string
	ManifestPath   string
	Results        []ResourceExportResult
}

// exportJob carries one fetched resource to an export worker.
type exportJob struct {
	sc    schema.Schema
	items []schema.Entity
}

// ExportEngine defines bulk catalog operations.
type ExportEngine interface {
	// Export fetches every requested resource and writes one file per
	// resource plus a manifest summarizing the run.
	Export(ctx context.Context, progress chan<- ProgressUpdate, opts ExportOpts) (*ExportResult, error)
}

// CatalogEngine implements ExportEngine against a backend client.
type CatalogEngine struct {
	lister Lister
}

// NewCatalogEngine creates a CatalogEngine backed by the given client.
func NewCatalogEngine(lister Lister) *CatalogEngine {
	return &CatalogEngine{lister: lister}
}

// sendProgress delivers an update without blocking. Slow or absent
// consumers drop updates rather than stalling the export.
func (e *CatalogEngine) sendProgress(prog chan<- ProgressUpdate, update ProgressUpdate) {
	if prog == nil {
		return
	}
	select {
	case prog <- update:
	default:
	}
}

var _ ExportEngine = (*CatalogEngine)(nil)
