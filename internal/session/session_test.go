package session

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/trackflix/trackflix/internal/schema"
	"github.com/trackflix/trackflix/internal/shared"
	"github.com/trackflix/trackflix/internal/store"
	tt "github.com/trackflix/trackflix/internal/testing"
)

func validBuffer() schema.Buffer {
	return schema.Buffer{
		"id":          "1",
		"title":       "Dune",
		"description": "A noble family battles for a desert planet.",
		"rating":      "8.5",
		"genres":      "Sci-Fi, Adventure",
		"cast":        "Timothée Chalamet",
		"releaseDate": "2021-10-22",
		"image":       "https://img/x.png",
		"trailer":     "https://img/trailer.mp4",
	}
}

func fillSession(t *testing.T, s *Session, buf schema.Buffer) {
	t.Helper()
	for name, text := range buf {
		if err := s.SetField(name, text); err != nil {
			t.Fatalf("SetField(%s): %v", name, err)
		}
	}
}

func TestSessionLifecycle(t *testing.T) {
	t.Run("Starts Creating With Empty Buffer", func(t *testing.T) {
		s := New(schema.Movies)

		if s.Mode() != Creating {
			t.Error("expected Creating mode")
		}
		if !reflect.DeepEqual(s.Buffer(), schema.Movies.EmptyBuffer()) {
			t.Error("expected empty buffer")
		}
	})

	t.Run("BeginEdit Loads Encoded Entity", func(t *testing.T) {
		s := New(schema.Movies)
		entity := schema.Entity{
			"id":          int64(1),
			"title":       "Dune",
			"rating":      8.5,
			"genres":      []string{"Sci-Fi", "Adventure"},
			"releaseDate": "2021-10-22",
			"image":       "https://img/x.png",
		}

		if err := s.BeginEdit(entity); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if s.Mode() != Editing {
			t.Error("expected Editing mode")
		}
		if s.EditingID() != 1 {
			t.Errorf("expected editing id 1, got %d", s.EditingID())
		}

		buf := s.Buffer()
		if buf["rating"] != "8.5" {
			t.Errorf("expected rating '8.5', got %q", buf["rating"])
		}
		if buf["genres"] != "Sci-Fi, Adventure" {
			t.Errorf("expected joined genres, got %q", buf["genres"])
		}
	})

	t.Run("BeginEdit Rejects Entity Without ID", func(t *testing.T) {
		s := New(schema.Movies)
		if err := s.BeginEdit(schema.Entity{"title": "Nameless"}); err == nil {
			t.Error("expected error for missing id")
		}
	})

	t.Run("SetField", func(t *testing.T) {
		s := New(schema.Movies)

		if err := s.SetField("title", "Dune"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if s.FieldValue("title") != "Dune" {
			t.Errorf("expected 'Dune', got %q", s.FieldValue("title"))
		}

		if err := s.SetField("director", "x"); err == nil {
			t.Error("expected error for unknown field")
		}
	})

	t.Run("Cancel Returns To Creating", func(t *testing.T) {
		s := New(schema.Movies)
		if err := s.BeginEdit(schema.Entity{"id": int64(2), "title": "Arrival"}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		s.Cancel()

		if s.Mode() != Creating {
			t.Error("expected Creating after cancel")
		}
		if s.FieldValue("title") != "" {
			t.Error("expected cleared buffer after cancel")
		}
	})
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("Gated By Validation", func(t *testing.T) {
		transport := tt.NewFakeTransport()
		st := store.New(transport, schema.Movies)
		s := New(schema.Movies)

		// id must be > 0 and genres non-empty
		fillSession(t, s, schema.Buffer{
			"id":          "0",
			"title":       "A",
			"rating":      "5",
			"genres":      "",
			"releaseDate": "2024-01-01",
			"image":       "http://x/y.png",
		})

		err := s.Submit(ctx, st)

		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if _, ok := verr.Fields["id"]; !ok {
			t.Error("expected id error")
		}
		if _, ok := verr.Fields["genres"]; !ok {
			t.Error("expected genres error")
		}
		if transport.MutationCalls() != 0 || transport.ListCalls != 0 {
			t.Error("validation failure must trigger zero network calls")
		}
		if s.Submitting() {
			t.Error("submitting must stay false on validation failure")
		}
	})

	t.Run("Create Then Refresh Then Reset", func(t *testing.T) {
		transport := tt.NewFakeTransport()
		transport.Lists["fullmovies"] = []schema.Entity{{"id": float64(1), "title": "Dune"}}
		st := store.New(transport, schema.Movies)
		s := New(schema.Movies)
		fillSession(t, s, validBuffer())

		if err := s.Submit(ctx, st); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if transport.CreateCalls != 1 {
			t.Errorf("expected 1 create, got %d", transport.CreateCalls)
		}
		if transport.ListCalls != 1 {
			t.Errorf("expected refresh after create, got %d list calls", transport.ListCalls)
		}
		if got := st.Items(); len(got) != 1 || got[0]["title"] != "Dune" {
			t.Errorf("items must come from refresh, got %v", got)
		}
		if s.Mode() != Creating || s.FieldValue("title") != "" {
			t.Error("expected session reset after successful submit")
		}
	})

	t.Run("Editing Mode Uses Update", func(t *testing.T) {
		transport := tt.NewFakeTransport()
		st := store.New(transport, schema.Movies)
		s := New(schema.Movies)

		entity, err := schema.Decode(validBuffer(), schema.Movies)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if err := s.BeginEdit(entity); err != nil {
			t.Fatalf("begin edit: %v", err)
		}
		if err := s.SetField("title", "Dune: Part Two"); err != nil {
			t.Fatalf("set field: %v", err)
		}

		if err := s.Submit(ctx, st); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if transport.UpdateCalls != 1 || transport.CreateCalls != 0 {
			t.Errorf("expected one update and no create, got %d/%d", transport.UpdateCalls, transport.CreateCalls)
		}
		if transport.LastUpdated["title"] != "Dune: Part Two" {
			t.Errorf("expected edited title on the wire, got %v", transport.LastUpdated["title"])
		}
		if s.Mode() != Creating {
			t.Error("expected Creating after successful edit submit")
		}
	})

	t.Run("Transport Failure Preserves Buffer And Mode", func(t *testing.T) {
		transport := tt.NewFakeTransport()
		transport.FailWith = errors.New("boom")
		st := store.New(transport, schema.Movies)
		s := New(schema.Movies)

		entity, err := schema.Decode(validBuffer(), schema.Movies)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if err := s.BeginEdit(entity); err != nil {
			t.Fatalf("begin edit: %v", err)
		}
		before := s.Buffer()

		if err := s.Submit(ctx, st); err == nil {
			t.Fatal("expected transport error")
		}

		if s.Mode() != Editing || s.EditingID() != 1 {
			t.Error("mode must survive a failed submit")
		}
		if !reflect.DeepEqual(s.Buffer(), before) {
			t.Error("buffer must survive a failed submit")
		}
		if s.Submitting() {
			t.Error("submitting must be cleared after failure")
		}
	})

	t.Run("At Most One In Flight", func(t *testing.T) {
		transport := tt.NewFakeTransport()
		transport.Block = make(chan struct{})
		st := store.New(transport, schema.Movies)
		s := New(schema.Movies)
		fillSession(t, s, validBuffer())

		var wg sync.WaitGroup
		wg.Add(1)
		first := make(chan error, 1)
		go func() {
			defer wg.Done()
			first <- s.Submit(ctx, st)
		}()

		// Wait for the first submit to reach the transport.
		for transport.MutationCalls() == 0 {
			time.Sleep(time.Millisecond)
		}

		if err := s.Submit(ctx, st); !errors.Is(err, shared.ErrSubmitInFlight) {
			t.Errorf("expected ErrSubmitInFlight, got %v", err)
		}

		close(transport.Block)
		wg.Wait()

		if err := <-first; err != nil {
			t.Errorf("first submit should succeed, got %v", err)
		}
		if transport.MutationCalls() != 1 {
			t.Errorf("expected exactly one transport mutation, got %d", transport.MutationCalls())
		}
	})

	t.Run("Cancel Is Noop While Submitting", func(t *testing.T) {
		transport := tt.NewFakeTransport()
		transport.Block = make(chan struct{})
		st := store.New(transport, schema.Movies)
		s := New(schema.Movies)

		entity, err := schema.Decode(validBuffer(), schema.Movies)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if err := s.BeginEdit(entity); err != nil {
			t.Fatalf("begin edit: %v", err)
		}

		done := make(chan struct{})
		go func() {
			defer close(done)
			s.Submit(ctx, st)
		}()

		for transport.MutationCalls() == 0 {
			time.Sleep(time.Millisecond)
		}

		s.Cancel()
		if s.Mode() != Editing {
			t.Error("cancel must not fire while a submit is in flight")
		}

		close(transport.Block)
		<-done
	})
}
