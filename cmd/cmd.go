// submodule cmd contains command definitions
package main

import (
	"github.com/trackflix/trackflix/internal/schema"
	"github.com/urfave/cli/v3"
)

// fieldFlags builds one string flag per schema field so create and
// update commands accept each field directly.
func fieldFlags(sc schema.Schema, skipID bool) []cli.Flag {
	flags := []cli.Flag{}
	for _, f := range sc.Fields {
		if skipID && f.Type == schema.ID {
			continue
		}
		flags = append(flags, &cli.StringFlag{
			Name:  f.Name,
			Usage: f.Label,
		})
	}
	return flags
}

// resourceCommand builds the CRUD command group for one catalog resource.
func resourceCommand(r *Runner, sc schema.Schema) *cli.Command {
	return &cli.Command{
		Name:  sc.Resource,
		Usage: sc.Title + " operations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "Fetch and display the server copy of the collection",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.resourceList(sc),
			},
			{
				Name:  "get",
				Usage: "Display a single entity by id",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:     "id",
						Usage:    "Entity id",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.resourceGet(sc),
			},
			{
				Name:   "create",
				Usage:  "Create an entity from field flags",
				Flags:  fieldFlags(sc, false),
				Action: r.resourceCreate(sc),
			},
			{
				Name:  "update",
				Usage: "Edit an entity, changing only the given fields",
				Flags: append([]cli.Flag{
					&cli.IntFlag{
						Name:     "id",
						Usage:    "Entity id to edit",
						Required: true,
					},
				}, fieldFlags(sc, true)...),
				Action: r.resourceUpdate(sc),
			},
			{
				Name:  "delete",
				Usage: "Delete an entity by id",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:     "id",
						Usage:    "Entity id to delete",
						Required: true,
					},
				},
				Action: r.resourceDelete(sc),
			},
		},
	}
}

// apiCommand handles raw API calls for debugging the backend
func apiCommand(r *Runner) *cli.Command {
	pathArg := []cli.Argument{
		&cli.StringArg{Name: "path"},
	}
	return &cli.Command{
		Name:  "api",
		Usage: "Direct API calls to the backend",
		Commands: []*cli.Command{
			{
				Name:      "get",
				Usage:     "GET a backend path",
				Arguments: pathArg,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output compact JSON",
					},
				},
				Action: r.APIGet,
			},
			{
				Name:      "post",
				Usage:     "POST a JSON body to a backend path",
				Arguments: pathArg,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "data",
						Aliases: []string{"d"},
						Usage:   "JSON request body",
					},
				},
				Action: r.APIPost,
			},
			{
				Name:      "delete",
				Usage:     "DELETE a backend path",
				Arguments: pathArg,
				Action:    r.APIDelete,
			},
			{
				Name:   "health",
				Usage:  "Probe backend readiness with bounded retries",
				Action: r.APIHealth,
			},
		},
	}
}

// exportCommand handles bulk catalog exports
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export the catalog to files",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Export format: json, csv, markdown, txt",
				Value:   "json",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output directory",
			},
			&cli.StringSliceFlag{
				Name:  "resource",
				Usage: "Resource to export (repeatable, default: all)",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Concurrent file writers",
				Value: 3,
			},
			&cli.FloatFlag{
				Name:  "rate-limit",
				Usage: "Backend requests per second",
				Value: 5,
			},
		},
		Action: r.Export,
	}
}

// snapshotCommand handles local catalog snapshots
func snapshotCommand(r *Runner) *cli.Command {
	configFlag := &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
	return &cli.Command{
		Name:  "snapshot",
		Usage: "Capture and inspect local catalog snapshots",
		Commands: []*cli.Command{
			{
				Name:   "create",
				Usage:  "Fetch every resource and store a snapshot",
				Flags:  []cli.Flag{configFlag},
				Action: r.SnapshotCreate,
			},
			{
				Name:   "list",
				Usage:  "List stored snapshots",
				Flags:  []cli.Flag{configFlag},
				Action: r.SnapshotList,
			},
			{
				Name:  "show",
				Usage: "Show one resource from a snapshot",
				Flags: []cli.Flag{
					configFlag,
					&cli.StringFlag{
						Name:  "id",
						Usage: "Snapshot id (default: latest)",
					},
					&cli.StringFlag{
						Name:     "resource",
						Usage:    "Resource to display",
						Required: true,
					},
				},
				Action: r.SnapshotShow,
			},
		},
	}
}

// serveCommand runs the development backend stub
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run a local development backend with demo data",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Bind address",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Listen port",
			},
			&cli.BoolFlag{
				Name:  "empty",
				Usage: "Start without demo data",
			},
		},
		Action: r.Serve,
	}
}

// setupCommand initializes config and the snapshot database
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize config file and snapshot database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}

// tuiCommand launches the interactive dashboard
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"dashboard"},
		Usage:   "Launch the interactive terminal dashboard",
		Action:  r.TUI,
	}
}
