// package store holds the authoritative entity list for one backend
// resource, as last fetched. Mutations go to the backend and never touch
// the local list; callers refetch afterward so the list only ever reflects
// server truth.
package store

import (
	"context"
	"sync"

	"github.com/trackflix/trackflix/internal/schema"
)

// Transport is the backend surface the store depends on. *api.Client
// implements it; tests substitute fakes.
type Transport interface {
	List(ctx context.Context, resource string) ([]schema.Entity, error)
	Create(ctx context.Context, resource string, entity schema.Entity) (schema.Entity, error)
	Update(ctx context.Context, resource string, id int64, entity schema.Entity) (schema.Entity, error)
	Delete(ctx context.Context, resource string, id int64) error
}

// Store owns the entity collection for a single resource. Each dashboard
// tab holds exactly one Store; nothing else mutates its items.
type Store struct {
	transport Transport
	schema    schema.Schema

	mu    sync.RWMutex
	items []schema.Entity
}

// New creates an empty store for the given resource schema.
func New(t Transport, s schema.Schema) *Store {
	return &Store{transport: t, schema: s}
}

// Schema returns the resource schema this store serves.
func (s *Store) Schema() schema.Schema { return s.schema }

// Items returns a copy of the entity list in server order.
func (s *Store) Items() []schema.Entity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]schema.Entity, len(s.items))
	copy(items, s.items)
	return items
}

// Find returns the entity with the given id from the last fetched list.
func (s *Store) Find(id int64) (schema.Entity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.items {
		if got, ok := e.ID(); ok && got == id {
			return e, true
		}
	}
	return nil, false
}

// Refresh refetches the full collection, replacing the items wholesale on
// success. On failure the previous items are left untouched; there is no
// partial merge.
func (s *Store) Refresh(ctx context.Context) error {
	items, err := s.transport.List(ctx, s.schema.Resource)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	return nil
}

// Add creates the entity on the backend and returns the server's copy. The
// local list is not updated; callers must Refresh afterward.
func (s *Store) Add(ctx context.Context, entity schema.Entity) (schema.Entity, error) {
	return s.transport.Create(ctx, s.schema.Resource, entity)
}

// Update replaces the entity with the given id on the backend. Same
// no-self-update contract as Add.
func (s *Store) Update(ctx context.Context, id int64, entity schema.Entity) (schema.Entity, error) {
	return s.transport.Update(ctx, s.schema.Resource, id, entity)
}

// Remove deletes the entity with the given id on the backend. Same
// no-self-update contract as Add.
func (s *Store) Remove(ctx context.Context, id int64) error {
	return s.transport.Delete(ctx, s.schema.Resource, id)
}
