package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/trackflix/trackflix/internal/schema"
	"github.com/trackflix/trackflix/internal/shared"
)

// Stub is the in-memory dev backend. It serves every catalog resource with
// the same REST surface the real backend exposes and validates writes with
// the shared schema rules.
type Stub struct {
	logger *log.Logger
	router *BasicRouter

	mu   sync.RWMutex
	data map[string][]schema.Entity
}

// NewStub creates a stub backend serving every built-in resource schema.
func NewStub(logger *log.Logger) *Stub {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	s := &Stub{
		logger: logger,
		router: NewBasicRouter(),
		data:   map[string][]schema.Entity{},
	}

	s.router.Use(Logging(logger))
	s.router.Handle("GET /health", http.HandlerFunc(s.handleHealth))

	for _, sc := range schema.Catalog() {
		sc := sc
		s.data[sc.Resource] = []schema.Entity{}
		s.router.Handle("GET /"+sc.Resource, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s.handleList(w, sc)
		}))
		s.router.Handle("POST /"+sc.Resource, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s.handleCreate(w, r, sc)
		}))
		s.router.Handle("PUT /"+sc.Resource+"/{id}", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s.handleUpdate(w, r, sc)
		}))
		s.router.Handle("DELETE /"+sc.Resource+"/{id}", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s.handleDelete(w, r, sc)
		}))
	}

	return s
}

// ServeHTTP makes the stub usable directly with httptest and http.Server.
func (s *Stub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe runs the stub on the given address until the server stops.
func (s *Stub) ListenAndServe(addr string) error {
	s.logger.Info("stub backend listening", "addr", addr)
	return http.ListenAndServe(addr, s)
}

// Seed replaces a resource's entities. Unknown resources are rejected.
func (s *Stub) Seed(resource string, entities []schema.Entity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[resource]; !ok {
		return fmt.Errorf("%w: %s", shared.ErrUnknownResource, resource)
	}
	s.data[resource] = append([]schema.Entity{}, entities...)
	return nil
}

func (s *Stub) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Stub) handleList(w http.ResponseWriter, sc schema.Schema) {
	s.mu.RLock()
	items := append([]schema.Entity{}, s.data[sc.Resource]...)
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, items)
}

func (s *Stub) handleCreate(w http.ResponseWriter, r *http.Request, sc schema.Schema) {
	entity, ok := s.decodeEntity(w, r, sc)
	if !ok {
		return
	}

	id, ok := entity.ID()
	if !ok || id <= 0 {
		writeError(w, http.StatusUnprocessableEntity, "id must be a positive integer")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.data[sc.Resource] {
		if got, ok := existing.ID(); ok && got == id {
			writeError(w, http.StatusConflict, fmt.Sprintf("id %d already exists", id))
			return
		}
	}

	s.data[sc.Resource] = append(s.data[sc.Resource], entity)
	writeJSON(w, http.StatusCreated, entity)
}

func (s *Stub) handleUpdate(w http.ResponseWriter, r *http.Request, sc schema.Schema) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	entity, ok := s.decodeEntity(w, r, sc)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.data[sc.Resource] {
		if got, ok := existing.ID(); ok && got == id {
			entity["id"] = id
			s.data[sc.Resource][i] = entity
			writeJSON(w, http.StatusOK, entity)
			return
		}
	}

	writeError(w, http.StatusNotFound, fmt.Sprintf("no %s with id %d", sc.Resource, id))
}

func (s *Stub) handleDelete(w http.ResponseWriter, r *http.Request, sc schema.Schema) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.data[sc.Resource]
	for i, existing := range items {
		if got, ok := existing.ID(); ok && got == id {
			s.data[sc.Resource] = append(items[:i:i], items[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}

	writeError(w, http.StatusNotFound, fmt.Sprintf("no %s with id %d", sc.Resource, id))
}

// decodeEntity reads the request body and runs it through the schema
// validator, mirroring the authoritative checks a real backend performs.
func (s *Stub) decodeEntity(w http.ResponseWriter, r *http.Request, sc schema.Schema) (schema.Entity, bool) {
	var entity schema.Entity
	if err := json.NewDecoder(r.Body).Decode(&entity); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %v", err))
		return nil, false
	}

	if result := schema.Validate(schema.Encode(entity, sc), sc); !result.Valid() {
		detail, _ := json.Marshal(result)
		writeError(w, http.StatusUnprocessableEntity, string(detail))
		return nil, false
	}

	return entity, true
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "id must be a positive integer")
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
