package repositories

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/trackflix/trackflix/internal/schema"
	"github.com/trackflix/trackflix/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		t.Fatalf("failed to enable foreign keys: %v", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func sampleCollections() map[string][]schema.Entity {
	return map[string][]schema.Entity{
		"watchlist": {
			{"id": int64(1), "title": "Dune", "image": "https://img.example/dune.jpg", "addedDate": "2024-02-01"},
			{"id": int64(2), "title": "Arrival", "image": "https://img.example/arrival.jpg", "addedDate": "2024-03-15"},
		},
		"users": {
			{"id": int64(7), "username": "admin", "email": "admin@example.com"},
		},
	}
}

func TestSnapshotRepository(t *testing.T) {
	t.Run("Create", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSnapshotRepository(db)
		snapshot, err := repo.Create("http://localhost:4000", sampleCollections())
		if err != nil {
			t.Fatalf("failed to create snapshot: %v", err)
		}

		if snapshot.ID == "" {
			t.Error("snapshot ID should be set after creation")
		}
		if snapshot.EntityCount != 3 {
			t.Errorf("expected entity count 3, got %d", snapshot.EntityCount)
		}
	})

	t.Run("Get", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSnapshotRepository(db)
		created, err := repo.Create("http://localhost:4000", sampleCollections())
		if err != nil {
			t.Fatalf("failed to create snapshot: %v", err)
		}

		got, err := repo.Get(created.ID)
		if err != nil {
			t.Fatalf("failed to get snapshot: %v", err)
		}
		if got.BaseURL != "http://localhost:4000" {
			t.Errorf("unexpected base url: %s", got.BaseURL)
		}
		if got.EntityCount != created.EntityCount {
			t.Errorf("expected entity count %d, got %d", created.EntityCount, got.EntityCount)
		}
	})

	t.Run("GetMissing", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSnapshotRepository(db)
		if _, err := repo.Get("nope"); !errors.Is(err, shared.ErrEntityNotFound) {
			t.Errorf("expected ErrEntityNotFound, got %v", err)
		}
	})

	t.Run("Entities", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSnapshotRepository(db)
		created, err := repo.Create("http://localhost:4000", sampleCollections())
		if err != nil {
			t.Fatalf("failed to create snapshot: %v", err)
		}

		items, err := repo.Entities(created.ID, "watchlist")
		if err != nil {
			t.Fatalf("failed to read snapshot entities: %v", err)
		}
		if len(items) != 2 {
			t.Fatalf("expected 2 watchlist entities, got %d", len(items))
		}
		if items[0]["title"] != "Dune" {
			t.Errorf("expected captured order to be preserved, got %v first", items[0]["title"])
		}

		id, ok := items[0].ID()
		if !ok || id != 1 {
			t.Errorf("expected entity id 1, got %d (ok=%v)", id, ok)
		}
	})

	t.Run("EntitiesMissingResource", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSnapshotRepository(db)
		created, err := repo.Create("http://localhost:4000", sampleCollections())
		if err != nil {
			t.Fatalf("failed to create snapshot: %v", err)
		}

		items, err := repo.Entities(created.ID, "fullmovies")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(items) != 0 {
			t.Errorf("expected no entities, got %d", len(items))
		}
	})

	t.Run("RejectsEntityWithoutID", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSnapshotRepository(db)
		_, err := repo.Create("http://localhost:4000", map[string][]schema.Entity{
			"watchlist": {{"title": "No ID"}},
		})
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("LatestAndList", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSnapshotRepository(db)
		if _, err := repo.Latest(); !errors.Is(err, shared.ErrEntityNotFound) {
			t.Errorf("expected ErrEntityNotFound on empty table, got %v", err)
		}

		first, err := repo.Create("http://localhost:4000", sampleCollections())
		if err != nil {
			t.Fatalf("failed to create snapshot: %v", err)
		}
		second, err := repo.Create("http://localhost:4000", sampleCollections())
		if err != nil {
			t.Fatalf("failed to create snapshot: %v", err)
		}

		all, err := repo.List()
		if err != nil {
			t.Fatalf("failed to list snapshots: %v", err)
		}
		if len(all) != 2 {
			t.Fatalf("expected 2 snapshots, got %d", len(all))
		}

		latest, err := repo.Latest()
		if err != nil {
			t.Fatalf("failed to get latest snapshot: %v", err)
		}
		if latest.ID != second.ID && latest.ID != first.ID {
			t.Errorf("latest returned unknown snapshot %s", latest.ID)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSnapshotRepository(db)
		created, err := repo.Create("http://localhost:4000", sampleCollections())
		if err != nil {
			t.Fatalf("failed to create snapshot: %v", err)
		}

		if err := repo.Delete(created.ID); err != nil {
			t.Fatalf("failed to delete snapshot: %v", err)
		}
		if _, err := repo.Get(created.ID); !errors.Is(err, shared.ErrEntityNotFound) {
			t.Errorf("expected snapshot to be gone, got %v", err)
		}

		items, err := repo.Entities(created.ID, "watchlist")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(items) != 0 {
			t.Errorf("expected entities to be deleted, got %d", len(items))
		}
	})

	t.Run("DeleteMissing", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSnapshotRepository(db)
		if err := repo.Delete("nope"); !errors.Is(err, shared.ErrEntityNotFound) {
			t.Errorf("expected ErrEntityNotFound, got %v", err)
		}
	})
}
