package store

import (
	"context"
	"errors"
	"testing"

	"github.com/trackflix/trackflix/internal/schema"
	tt "github.com/trackflix/trackflix/internal/testing"
)

func movie(id int64, title string) schema.Entity {
	return schema.Entity{"id": id, "title": title}
}

func TestStore(t *testing.T) {
	ctx := context.Background()

	t.Run("Refresh", func(t *testing.T) {
		t.Run("Replaces Items Wholesale", func(t *testing.T) {
			transport := tt.NewFakeTransport()
			transport.Lists["fullmovies"] = []schema.Entity{movie(1, "Dune"), movie(2, "Arrival")}

			s := New(transport, schema.Movies)
			if err := s.Refresh(ctx); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			items := s.Items()
			if len(items) != 2 {
				t.Fatalf("expected 2 items, got %d", len(items))
			}
			if items[0]["title"] != "Dune" {
				t.Errorf("expected server order preserved, got %v", items[0])
			}

			transport.Lists["fullmovies"] = []schema.Entity{movie(3, "Blade Runner")}
			if err := s.Refresh(ctx); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if got := s.Items(); len(got) != 1 || got[0]["title"] != "Blade Runner" {
				t.Errorf("expected wholesale replacement, got %v", got)
			}
		})

		t.Run("Failure Leaves Items Untouched", func(t *testing.T) {
			transport := tt.NewFakeTransport()
			transport.Lists["fullmovies"] = []schema.Entity{movie(1, "Dune")}

			s := New(transport, schema.Movies)
			if err := s.Refresh(ctx); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			transport.FailWith = errors.New("boom")
			if err := s.Refresh(ctx); err == nil {
				t.Fatal("expected refresh error")
			}

			if got := s.Items(); len(got) != 1 || got[0]["title"] != "Dune" {
				t.Errorf("items must survive a failed refresh, got %v", got)
			}
		})
	})

	t.Run("Add Does Not Touch Items", func(t *testing.T) {
		transport := tt.NewFakeTransport()
		s := New(transport, schema.Movies)

		created, err := s.Add(ctx, movie(5, "Alien"))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if created["title"] != "Alien" {
			t.Errorf("expected server copy back, got %v", created)
		}
		if len(s.Items()) != 0 {
			t.Error("Add must not update items; callers refresh afterward")
		}
		if transport.CreateCalls != 1 {
			t.Errorf("expected 1 create call, got %d", transport.CreateCalls)
		}
	})

	t.Run("Update Does Not Touch Items", func(t *testing.T) {
		transport := tt.NewFakeTransport()
		transport.Lists["fullmovies"] = []schema.Entity{movie(1, "Dune")}

		s := New(transport, schema.Movies)
		if err := s.Refresh(ctx); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if _, err := s.Update(ctx, 1, movie(1, "Dune: Part Two")); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got := s.Items(); got[0]["title"] != "Dune" {
			t.Errorf("items must keep last fetched state, got %v", got[0])
		}
	})

	t.Run("Remove", func(t *testing.T) {
		transport := tt.NewFakeTransport()
		s := New(transport, schema.Movies)

		if err := s.Remove(ctx, 9); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if transport.LastDeleted != 9 {
			t.Errorf("expected delete for id 9, got %d", transport.LastDeleted)
		}
	})

	t.Run("Find", func(t *testing.T) {
		transport := tt.NewFakeTransport()
		transport.Lists["fullmovies"] = []schema.Entity{movie(1, "Dune"), movie(2, "Arrival")}

		s := New(transport, schema.Movies)
		if err := s.Refresh(ctx); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		e, ok := s.Find(2)
		if !ok || e["title"] != "Arrival" {
			t.Errorf("expected to find id 2, got %v (%v)", e, ok)
		}
		if _, ok := s.Find(99); ok {
			t.Error("expected lookup miss for id 99")
		}
	})
}
