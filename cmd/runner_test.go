package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/trackflix/trackflix/internal/api"
	"github.com/trackflix/trackflix/internal/schema"
	"github.com/trackflix/trackflix/internal/server"
	"github.com/trackflix/trackflix/internal/shared"
	"github.com/urfave/cli/v3"
)

// newTestRunner wires a Runner against a seeded in-memory backend.
func newTestRunner(t *testing.T) (*Runner, *bytes.Buffer) {
	t.Helper()

	stub := server.NewStub(shared.NewLogger(nil))
	stub.SeedDemo()
	ts := httptest.NewServer(stub)
	t.Cleanup(ts.Close)

	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{
		Config: shared.DefaultConfig(),
		Client: api.NewClient(ts.URL, api.ClientOpts{}),
		Logger: shared.NewLogger(output),
		Output: output,
	})
	return runner, output
}

// run executes one CLI invocation against the runner's command tree.
func run(t *testing.T, r *Runner, args ...string) error {
	t.Helper()
	app := &cli.Command{
		Name:     "trackflix",
		Commands: r.register(),
	}
	return app.Run(context.Background(), append([]string{"trackflix"}, args...))
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			client := api.NewClient("http://localhost:9999", api.ClientOpts{})

			runner := NewRunner(RunnerOpts{
				Config: config,
				Client: client,
				Logger: logger,
				Output: output,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.client != client {
				t.Error("expected client to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})
			if runner.config == nil {
				t.Error("expected default config to be set")
			}
			if runner.client == nil {
				t.Error("expected default client to be set")
			}
		})

		t.Run("creates one store per resource", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})
			for _, sc := range schema.Catalog() {
				if _, err := runner.storeFor(sc.Resource); err != nil {
					t.Errorf("missing store for %s: %v", sc.Resource, err)
				}
			}
			if _, err := runner.storeFor("podcasts"); err == nil {
				t.Error("expected error for unknown resource")
			}
		})
	})

	t.Run("List", func(t *testing.T) {
		runner, output := newTestRunner(t)

		if err := run(t, runner, "watchlist", "list"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output.String(), "Watchlist") {
			t.Errorf("expected watchlist header, got: %s", output.String())
		}
	})

	t.Run("Get", func(t *testing.T) {
		runner, output := newTestRunner(t)

		if err := run(t, runner, "fullmovies", "get", "--id", "1", "--json"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output.String(), "\"id\"") {
			t.Errorf("expected JSON entity, got: %s", output.String())
		}
	})

	t.Run("GetMissing", func(t *testing.T) {
		runner, _ := newTestRunner(t)

		err := run(t, runner, "fullmovies", "get", "--id", "999")
		if err == nil {
			t.Fatal("expected error for missing entity")
		}
	})

	t.Run("CreateAndDelete", func(t *testing.T) {
		runner, output := newTestRunner(t)

		err := run(t, runner, "watchlist", "create",
			"--id", "42",
			"--title", "Blade Runner 2049",
			"--image", "https://img.example/br2049.jpg",
			"--addedDate", "2024-05-01",
		)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output.String(), "✓ Created") {
			t.Errorf("expected creation confirmation, got: %s", output.String())
		}

		output.Reset()
		if err := run(t, runner, "watchlist", "delete", "--id", "42"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output.String(), "✓ Deleted") {
			t.Errorf("expected deletion confirmation, got: %s", output.String())
		}
	})

	t.Run("CreateInvalid", func(t *testing.T) {
		runner, output := newTestRunner(t)

		err := run(t, runner, "watchlist", "create", "--id", "0", "--title", "X")
		if err == nil {
			t.Fatal("expected validation error")
		}
		if !strings.Contains(output.String(), "Validation failed") {
			t.Errorf("expected validation report, got: %s", output.String())
		}
	})

	t.Run("Update", func(t *testing.T) {
		runner, output := newTestRunner(t)

		err := run(t, runner, "users", "update", "--id", "1", "--username", "superadmin")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output.String(), "✓ Updated") {
			t.Errorf("expected update confirmation, got: %s", output.String())
		}

		output.Reset()
		if err := run(t, runner, "users", "get", "--id", "1", "--json"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output.String(), "superadmin") {
			t.Errorf("expected updated username, got: %s", output.String())
		}
	})

	t.Run("APIGet", func(t *testing.T) {
		runner, output := newTestRunner(t)

		if err := run(t, runner, "api", "get", "/health"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output.String(), "ok") {
			t.Errorf("expected health body, got: %s", output.String())
		}
	})

	t.Run("APIHealth", func(t *testing.T) {
		runner, output := newTestRunner(t)

		if err := run(t, runner, "api", "health"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output.String(), "✓ Backend ready") {
			t.Errorf("expected readiness confirmation, got: %s", output.String())
		}
	})

	t.Run("Export", func(t *testing.T) {
		runner, output := newTestRunner(t)
		dir := t.TempDir()

		err := run(t, runner, "export", "--format", "csv", "--output", dir, "--resource", "watchlist")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output.String(), "Export Complete") {
			t.Errorf("expected export summary, got: %s", output.String())
		}
	})

	t.Run("Writers", func(t *testing.T) {
		runner, output := newTestRunner(t)

		t.Run("writeJSON compact", func(t *testing.T) {
			output.Reset()
			if err := runner.writeJSON(map[string]string{"a": "b"}, false); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if output.String() != "{\"a\":\"b\"}\n" {
				t.Errorf("unexpected output: %q", output.String())
			}
		})

		t.Run("writeJSON pretty", func(t *testing.T) {
			output.Reset()
			if err := runner.writeJSON(map[string]string{"a": "b"}, true); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(output.String(), "  \"a\": \"b\"") {
				t.Errorf("unexpected output: %q", output.String())
			}
		})

		t.Run("writePlain", func(t *testing.T) {
			output.Reset()
			runner.writePlain("count: %d", 3)
			if output.String() != "count: 3" {
				t.Errorf("unexpected output: %q", output.String())
			}
		})
	})
}
