package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/trackflix/trackflix/internal/repositories"
	"github.com/trackflix/trackflix/internal/schema"
	"github.com/trackflix/trackflix/internal/shared"
	"github.com/urfave/cli/v3"
)

// openSnapshotDB opens the configured SQLite database with migrations
// applied.
func (r *Runner) openSnapshotDB(configPath string) (*sql.DB, error) {
	config := r.config
	if _, err := os.Stat(configPath); err == nil {
		if loaded, err := shared.LoadConfig(configPath); err == nil {
			config = loaded
		}
	}

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return db, nil
}

// SnapshotCreate fetches every resource and stores a local snapshot.
func (r *Runner) SnapshotCreate(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openSnapshotDB(cmd.String("config"))
	if err != nil {
		return err
	}
	defer db.Close()

	collections := make(map[string][]schema.Entity)
	for _, sc := range schema.Catalog() {
		r.logger.Info("fetching resource for snapshot", "resource", sc.Resource)
		items, err := r.client.List(ctx, sc.Resource)
		if err != nil {
			return fmt.Errorf("failed to fetch %s: %w", sc.Resource, err)
		}
		collections[sc.Resource] = items
	}

	repo := repositories.NewSnapshotRepository(db)
	snapshot, err := repo.Create(r.client.BaseURL(), collections)
	if err != nil {
		return fmt.Errorf("failed to store snapshot: %w", err)
	}

	r.writePlainln("✓ Snapshot %s stored (%d entities)", snapshot.ID, snapshot.EntityCount)
	return nil
}

// SnapshotList lists stored snapshots, newest first.
func (r *Runner) SnapshotList(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openSnapshotDB(cmd.String("config"))
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewSnapshotRepository(db)
	snapshots, err := repo.List()
	if err != nil {
		return fmt.Errorf("failed to list snapshots: %w", err)
	}

	if len(snapshots) == 0 {
		r.writePlain("No snapshots recorded.\n")
		return nil
	}

	r.writePlainHeader(fmt.Sprintf("Snapshots (%d)", len(snapshots)))
	for _, s := range snapshots {
		r.writePlain("%s  %s  %d entities  %s\n",
			s.ID, s.TakenAt.Format("2006-01-02 15:04:05"), s.EntityCount, s.BaseURL)
	}
	return nil
}

// SnapshotShow displays one resource collection from a snapshot.
func (r *Runner) SnapshotShow(ctx context.Context, cmd *cli.Command) error {
	resource := cmd.String("resource")
	sc, ok := schema.ByResource(resource)
	if !ok {
		return fmt.Errorf("%w: %s", shared.ErrUnknownResource, resource)
	}

	db, err := r.openSnapshotDB(cmd.String("config"))
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewSnapshotRepository(db)

	id := cmd.String("id")
	if id == "" {
		latest, err := repo.Latest()
		if err != nil {
			return err
		}
		id = latest.ID
	}

	items, err := repo.Entities(id, resource)
	if err != nil {
		return fmt.Errorf("failed to read snapshot: %w", err)
	}

	r.writeEntityTable(sc, items)
	return nil
}
