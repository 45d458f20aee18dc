package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchResource Phase = iota
	WriteFile
	WriteManifest
)

func (p Phase) String() string {
	switch p {
	case FetchResource:
		return "fetch_resource"
	case WriteFile:
		return "write_file"
	case WriteManifest:
		return "write_manifest"
	default:
		return ""
	}
}

func fetchResourceUpdate(step, total int, resource string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchResource,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Fetching %s...", step, total, resource),
	}
}

func fetchFailedUpdate(step, total int, resource string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchResource,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, resource, err),
	}
}

func writeCompletedUpdate(step, total int, res ResourceExportResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteFile,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%d entries)", step, total, res.Resource, res.Count),
		Data:    res,
	}
}

func writeFailedUpdate(step, total int, res ResourceExportResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteFile,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, res.Resource, res.Error),
		Data:    res,
	}
}

func manifestUpdate(path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteManifest,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Manifest written: %s", path),
	}
}
