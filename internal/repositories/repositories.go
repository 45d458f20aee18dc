// package repositories provides the local persistence layer.
//
// The backend remains the source of truth for the catalog; this layer
// only records point-in-time snapshots of it for offline inspection
// and auditing.
package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/trackflix/trackflix/internal/schema"
	"github.com/trackflix/trackflix/internal/shared"
)

// Snapshot is a point-in-time capture of the backend catalog.
type Snapshot struct {
	ID          string
	TakenAt     time.Time
	BaseURL     string
	EntityCount int
}

// SnapshotRepository persists catalog snapshots to SQLite.
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a SnapshotRepository with the given
// database connection.
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Create stores a snapshot and all of its entities in one transaction.
// Collections keep their server order via the position column.
func (r *SnapshotRepository) Create(baseURL string, collections map[string][]schema.Entity) (*Snapshot, error) {
	snapshot := &Snapshot{
		ID:      shared.GenerateID(),
		TakenAt: time.Now().UTC(),
		BaseURL: baseURL,
	}
	for _, items := range collections {
		snapshot.EntityCount += len(items)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO snapshots (id, taken_at, base_url, entity_count) VALUES (?, ?, ?, ?)`,
		snapshot.ID, snapshot.TakenAt, snapshot.BaseURL, snapshot.EntityCount,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert snapshot: %w", err)
	}

	// Deterministic resource order keeps transaction replay stable.
	resources := make([]string, 0, len(collections))
	for resource := range collections {
		resources = append(resources, resource)
	}
	sort.Strings(resources)

	for _, resource := range resources {
		for position, entity := range collections[resource] {
			id, ok := entity.ID()
			if !ok {
				return nil, fmt.Errorf("%w: %s entity at position %d has no id", shared.ErrInvalidInput, resource, position)
			}
			payload, err := json.Marshal(entity)
			if err != nil {
				return nil, fmt.Errorf("failed to marshal %s entity %d: %w", resource, id, err)
			}
			_, err = tx.Exec(
				`INSERT INTO snapshot_entities (snapshot_id, resource, entity_id, position, payload) VALUES (?, ?, ?, ?, ?)`,
				snapshot.ID, resource, id, position, string(payload),
			)
			if err != nil {
				return nil, fmt.Errorf("failed to insert %s entity %d: %w", resource, id, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return snapshot, nil
}

// Get retrieves a snapshot record by ID.
func (r *SnapshotRepository) Get(id string) (*Snapshot, error) {
	row := r.db.QueryRow(
		`SELECT id, taken_at, base_url, entity_count FROM snapshots WHERE id = ?`, id,
	)
	var s Snapshot
	if err := row.Scan(&s.ID, &s.TakenAt, &s.BaseURL, &s.EntityCount); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: snapshot %s", shared.ErrEntityNotFound, id)
		}
		return nil, fmt.Errorf("failed to scan snapshot: %w", err)
	}
	return &s, nil
}

// Latest retrieves the most recent snapshot, or ErrEntityNotFound when
// none exist.
func (r *SnapshotRepository) Latest() (*Snapshot, error) {
	row := r.db.QueryRow(
		`SELECT id, taken_at, base_url, entity_count FROM snapshots ORDER BY taken_at DESC LIMIT 1`,
	)
	var s Snapshot
	if err := row.Scan(&s.ID, &s.TakenAt, &s.BaseURL, &s.EntityCount); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: no snapshots recorded", shared.ErrEntityNotFound)
		}
		return nil, fmt.Errorf("failed to scan snapshot: %w", err)
	}
	return &s, nil
}

// List retrieves all snapshot records, newest first.
func (r *SnapshotRepository) List() ([]Snapshot, error) {
	rows, err := r.db.Query(
		`SELECT id, taken_at, base_url, entity_count FROM snapshots ORDER BY taken_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []Snapshot
	for rows.Next() {
		var s Snapshot
		if err := rows.Scan(&s.ID, &s.TakenAt, &s.BaseURL, &s.EntityCount); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		snapshots = append(snapshots, s)
	}
	return snapshots, rows.Err()
}

// Entities retrieves one resource collection from a snapshot in its
// captured order.
func (r *SnapshotRepository) Entities(snapshotID, resource string) ([]schema.Entity, error) {
	rows, err := r.db.Query(
		`SELECT payload FROM snapshot_entities WHERE snapshot_id = ? AND resource = ? ORDER BY position`,
		snapshotID, resource,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot entities: %w", err)
	}
	defer rows.Close()

	var items []schema.Entity
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan entity payload: %w", err)
		}
		var entity schema.Entity
		if err := json.Unmarshal([]byte(payload), &entity); err != nil {
			return nil, fmt.Errorf("failed to unmarshal entity payload: %w", err)
		}
		items = append(items, entity)
	}
	return items, rows.Err()
}

// Delete removes a snapshot and its entities.
func (r *SnapshotRepository) Delete(id string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM snapshot_entities WHERE snapshot_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete snapshot entities: %w", err)
	}

	result, err := tx.Exec(`DELETE FROM snapshots WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: snapshot %s", shared.ErrEntityNotFound, id)
	}

	return tx.Commit()
}
