// package session implements the edit session: the state machine that
// mediates between a text edit buffer, the validator, the field codec, and
// the entity store during create and update flows.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/trackflix/trackflix/internal/schema"
	"github.com/trackflix/trackflix/internal/shared"
	"github.com/trackflix/trackflix/internal/store"
)

// Mode tells whether the session is composing a new entity or editing an
// existing one.
type Mode int

const (
	Creating Mode = iota
	Editing
)

// ValidationError carries the per-field messages that blocked a submit.
// It never reaches the network: submits are gated before any backend call.
type ValidationError struct {
	Fields schema.Result
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%d field(s) failed validation", len(e.Fields))
}

// Session tracks one in-progress edit against a single resource. The state
// machine: Creating -[BeginEdit]-> Editing; Editing -[Cancel|submit
// success]-> Creating; validation failure keeps the current state; a
// transport failure keeps mode and buffer so the user's input survives.
type Session struct {
	schema schema.Schema

	mu         sync.Mutex
	mode       Mode
	editID     int64
	buffer     schema.Buffer
	submitting bool
}

// New creates a session in Creating mode with an empty buffer.
func New(s schema.Schema) *Session {
	return &Session{schema: s, buffer: s.EmptyBuffer()}
}

// Schema returns the resource schema this session edits.
func (s *Session) Schema() schema.Schema { return s.schema }

// Mode returns the current mode.
func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// EditingID returns the id being edited; zero in Creating mode.
func (s *Session) EditingID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editID
}

// Submitting reports whether a submit is in flight.
func (s *Session) Submitting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitting
}

// Buffer returns a copy of the current edit buffer.
func (s *Session) Buffer() schema.Buffer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneBuffer(s.buffer)
}

// FieldValue returns the buffer text for one field.
func (s *Session) FieldValue(name string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buffer[name]
}

// Validate recomputes the validation result for the current buffer. The
// result is always derived fresh, never cached.
func (s *Session) Validate() schema.Result {
	return schema.Validate(s.Buffer(), s.schema)
}

// BeginCreate resets the session to Creating mode with the given defaults.
// A nil defaults buffer means an empty one.
func (s *Session) BeginCreate(defaults schema.Buffer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if defaults == nil {
		defaults = s.schema.EmptyBuffer()
	}
	s.mode = Creating
	s.editID = 0
	s.buffer = cloneBuffer(defaults)
	s.submitting = false
}

// BeginEdit switches to Editing mode for the given entity, loading its
// encoded form into the buffer.
func (s *Session) BeginEdit(entity schema.Entity) error {
	id, ok := entity.ID()
	if !ok || id <= 0 {
		return fmt.Errorf("%w: entity has no usable id", shared.ErrInvalidArgument)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.mode = Editing
	s.editID = id
	s.buffer = schema.Encode(entity, s.schema)
	return nil
}

// SetField replaces one buffer field with raw text. List fields receive
// the comma-joined text form; the buffer never holds split values.
func (s *Session) SetField(name, text string) error {
	if _, ok := s.schema.Field(name); !ok {
		return fmt.Errorf("%w: no field %q in %s schema", shared.ErrInvalidArgument, name, s.schema.Resource)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.buffer[name] = text
	return nil
}

// Cancel abandons the current edit, returning to Creating with an empty
// buffer. It is a no-op while a submit is in flight.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.submitting {
		return
	}
	s.mode = Creating
	s.editID = 0
	s.buffer = s.schema.EmptyBuffer()
}

// Submit validates the buffer, decodes it, and sends it to the backend via
// the store: Add in Creating mode, Update in Editing mode. On success the
// store is refreshed and the session resets to Creating. Validation
// failures return a [*ValidationError] before any network traffic; while a
// submit is in flight further calls fail fast with
// [shared.ErrSubmitInFlight], so a double-click issues one backend call.
func (s *Session) Submit(ctx context.Context, st *store.Store) error {
	s.mu.Lock()
	if s.submitting {
		s.mu.Unlock()
		return shared.ErrSubmitInFlight
	}

	// Re-validate even when the caller already gated the submit control:
	// the buffer may have changed since.
	if result := schema.Validate(s.buffer, s.schema); !result.Valid() {
		s.mu.Unlock()
		return &ValidationError{Fields: result}
	}

	s.submitting = true
	buffer := cloneBuffer(s.buffer)
	mode := s.mode
	editID := s.editID
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.submitting = false
		s.mu.Unlock()
	}()

	entity, err := schema.Decode(buffer, s.schema)
	if err != nil {
		return err
	}

	if mode == Creating {
		_, err = st.Add(ctx, entity)
	} else {
		_, err = st.Update(ctx, editID, entity)
	}
	if err != nil {
		// Mode and buffer stay as they were so the user can retry.
		return err
	}

	if err := st.Refresh(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	s.mode = Creating
	s.editID = 0
	s.buffer = s.schema.EmptyBuffer()
	s.mu.Unlock()
	return nil
}

func cloneBuffer(b schema.Buffer) schema.Buffer {
	out := make(schema.Buffer, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}
