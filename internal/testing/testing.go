// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/trackflix/trackflix/internal/schema"
)

// FakeTransport is a test double for the store's backend surface. It
// records calls, serves canned lists, and fails on demand.
type FakeTransport struct {
	mu sync.Mutex

	Lists    map[string][]schema.Entity // responses for List per resource
	FailWith error                      // returned by every call when set

	ListCalls   int
	CreateCalls int
	UpdateCalls int
	DeleteCalls int

	LastCreated schema.Entity
	LastUpdated schema.Entity
	LastDeleted int64

	// Block, when non-nil, is closed reads: Create/Update wait on it,
	// letting tests hold a call in flight.
	Block chan struct{}
}

func NewFakeTransport() *FakeTransport {
	return &FakeTransport{Lists: map[string][]schema.Entity{}}
}

func (f *FakeTransport) List(ctx context.Context, resource string) ([]schema.Entity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ListCalls++
	if f.FailWith != nil {
		return nil, f.FailWith
	}
	return f.Lists[resource], nil
}

func (f *FakeTransport) Create(ctx context.Context, resource string, entity schema.Entity) (schema.Entity, error) {
	f.mu.Lock()
	f.CreateCalls++
	f.LastCreated = entity
	block := f.Block
	failWith := f.FailWith
	f.mu.Unlock()

	if block != nil {
		<-block
	}
	if failWith != nil {
		return nil, failWith
	}
	return entity, nil
}

func (f *FakeTransport) Update(ctx context.Context, resource string, id int64, entity schema.Entity) (schema.Entity, error) {
	f.mu.Lock()
	f.UpdateCalls++
	f.LastUpdated = entity
	block := f.Block
	failWith := f.FailWith
	f.mu.Unlock()

	if block != nil {
		<-block
	}
	if failWith != nil {
		return nil, failWith
	}
	return entity, nil
}

func (f *FakeTransport) Delete(ctx context.Context, resource string, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.DeleteCalls++
	f.LastDeleted = id
	return f.FailWith
}

// MutationCalls returns the combined Create and Update call count.
func (f *FakeTransport) MutationCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.CreateCalls + f.UpdateCalls
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
