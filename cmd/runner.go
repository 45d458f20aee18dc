package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/trackflix/trackflix/internal/api"
	"github.com/trackflix/trackflix/internal/schema"
	"github.com/trackflix/trackflix/internal/shared"
	"github.com/trackflix/trackflix/internal/store"
	"github.com/trackflix/trackflix/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config *shared.Config
	client *api.Client
	stores map[string]*store.Store
	engine *tasks.CatalogEngine
	logger *log.Logger
	output io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config *shared.Config
	Client *api.Client
	Logger *log.Logger
	Output io.Writer
}

// NewRunner creates a new Runner with one store per catalog resource.
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Client == nil {
		opts.Client = api.NewClient(opts.Config.API.BaseURL, api.ClientOpts{Logger: opts.Logger})
	}

	stores := make(map[string]*store.Store)
	for _, sc := range schema.Catalog() {
		stores[sc.Resource] = store.New(opts.Client, sc)
	}

	return &Runner{
		config: opts.Config,
		client: opts.Client,
		stores: stores,
		engine: tasks.NewCatalogEngine(opts.Client),
		logger: opts.Logger,
		output: opts.Output,
	}
}

// SetLogger swaps the runner's logger, used when the TUI redirects
// logging to a file.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{
		setupCommand(r),
		serveCommand(r),
		apiCommand(r),
		exportCommand(r),
		snapshotCommand(r),
		tuiCommand(r),
	}
	for _, sc := range schema.Catalog() {
		commands = append(commands, resourceCommand(r, sc))
	}
	return commands
}

// storeFor returns the store serving the given resource.
func (r *Runner) storeFor(resource string) (*store.Store, error) {
	st, ok := r.stores[resource]
	if !ok {
		return nil, fmt.Errorf("%w: %s", shared.ErrUnknownResource, resource)
	}
	return st, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}

// writeEntityTable prints entities as aligned label/value blocks.
func (r *Runner) writeEntityTable(sc schema.Schema, items []schema.Entity) {
	r.writePlainHeader(fmt.Sprintf("%s (%d)", sc.Title, len(items)))
	for _, item := range items {
		buf := schema.Encode(item, sc)
		r.writePlain("\n")
		for _, f := range sc.Fields {
			r.writePlain("  %-12s %s\n", f.Label+":", buf[f.Name])
		}
	}
}
