package main

import (
	"context"
	"fmt"

	"github.com/trackflix/trackflix/internal/server"
	"github.com/urfave/cli/v3"
)

// Serve runs the in-memory development backend.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	host := cmd.String("host")
	if host == "" {
		host = r.config.Server.Host
	}
	port := int(cmd.Int("port"))
	if port == 0 {
		port = r.config.Server.Port
	}
	addr := fmt.Sprintf("%s:%d", host, port)

	stub := server.NewStub(r.logger)
	if !cmd.Bool("empty") {
		stub.SeedDemo()
		r.logger.Info("demo catalog loaded")
	}

	r.writePlain("Development backend listening on http://%s\n", addr)
	return stub.ListenAndServe(addr)
}
