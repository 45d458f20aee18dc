package server_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/trackflix/trackflix/internal/api"
	"github.com/trackflix/trackflix/internal/schema"
	"github.com/trackflix/trackflix/internal/server"
	"github.com/trackflix/trackflix/internal/store"
)

func newStubServer(t *testing.T) (*server.Stub, *httptest.Server) {
	t.Helper()
	stub := server.NewStub(nil)
	srv := httptest.NewServer(stub)
	t.Cleanup(srv.Close)
	return stub, srv
}

func TestStub(t *testing.T) {
	ctx := context.Background()

	t.Run("Health", func(t *testing.T) {
		_, srv := newStubServer(t)

		client := api.NewClient(srv.URL, api.ClientOpts{})
		if err := client.Health(ctx); err != nil {
			t.Fatalf("expected healthy stub, got %v", err)
		}
	})

	t.Run("CRUD Round Trip", func(t *testing.T) {
		_, srv := newStubServer(t)
		client := api.NewClient(srv.URL, api.ClientOpts{})
		st := store.New(client, schema.Watchlist)

		entry := schema.Entity{
			"id":        int64(1),
			"title":     "Dune",
			"image":     "https://img/dune.png",
			"addedDate": "2026-08-30",
		}

		if _, err := st.Add(ctx, entry); err != nil {
			t.Fatalf("add: %v", err)
		}
		if err := st.Refresh(ctx); err != nil {
			t.Fatalf("refresh: %v", err)
		}
		if items := st.Items(); len(items) != 1 || items[0]["title"] != "Dune" {
			t.Fatalf("unexpected items after add: %v", items)
		}

		entry["title"] = "Dune: Part Two"
		if _, err := st.Update(ctx, 1, entry); err != nil {
			t.Fatalf("update: %v", err)
		}
		if err := st.Refresh(ctx); err != nil {
			t.Fatalf("refresh: %v", err)
		}
		if items := st.Items(); items[0]["title"] != "Dune: Part Two" {
			t.Fatalf("unexpected items after update: %v", items)
		}

		if err := st.Remove(ctx, 1); err != nil {
			t.Fatalf("remove: %v", err)
		}
		if err := st.Refresh(ctx); err != nil {
			t.Fatalf("refresh: %v", err)
		}
		if items := st.Items(); len(items) != 0 {
			t.Fatalf("expected empty list after delete, got %v", items)
		}
	})

	t.Run("Rejects Invalid Entities", func(t *testing.T) {
		_, srv := newStubServer(t)
		client := api.NewClient(srv.URL, api.ClientOpts{})

		_, err := client.Create(ctx, "watchlist", schema.Entity{
			"id":    int64(1),
			"title": "", // fails MinLength(1)
			"image": "not a url",
		})

		var terr *api.TransportError
		if !errors.As(err, &terr) {
			t.Fatalf("expected TransportError, got %v", err)
		}
		if terr.Status != http.StatusUnprocessableEntity {
			t.Errorf("expected 422, got %d", terr.Status)
		}
	})

	t.Run("Rejects Duplicate IDs", func(t *testing.T) {
		stub, srv := newStubServer(t)
		stub.SeedDemo()
		client := api.NewClient(srv.URL, api.ClientOpts{})

		_, err := client.Create(ctx, "users", schema.Entity{
			"id":             int64(1),
			"username":       "admin2",
			"email":          "admin2@trackflix.dev",
			"avatar":         "https://img/a.png",
			"favoriteGenres": []string{"Drama"},
		})

		var terr *api.TransportError
		if !errors.As(err, &terr) {
			t.Fatalf("expected TransportError, got %v", err)
		}
		if terr.Status != http.StatusConflict {
			t.Errorf("expected 409, got %d", terr.Status)
		}
	})

	t.Run("Update Missing Entity", func(t *testing.T) {
		_, srv := newStubServer(t)
		client := api.NewClient(srv.URL, api.ClientOpts{})

		_, err := client.Update(ctx, "fullmovies", 99, schema.Entity{
			"id":          int64(99),
			"title":       "Ghost",
			"description": "An entity that never existed.",
			"rating":      5.0,
			"genres":      []string{"Drama"},
			"cast":        []string{"Nobody"},
			"releaseDate": "2020-01-01",
			"image":       "https://img/g.png",
			"trailer":     "https://img/g.mp4",
		})

		var terr *api.TransportError
		if !errors.As(err, &terr) {
			t.Fatalf("expected TransportError, got %v", err)
		}
		if !terr.NotFound() {
			t.Errorf("expected 404, got %+v", terr)
		}
	})

	t.Run("Seed Unknown Resource", func(t *testing.T) {
		stub, _ := newStubServer(t)
		if err := stub.Seed("nope", nil); err == nil {
			t.Error("expected error for unknown resource")
		}
	})

	t.Run("Demo Seed Is Valid", func(t *testing.T) {
		stub, srv := newStubServer(t)
		stub.SeedDemo()
		client := api.NewClient(srv.URL, api.ClientOpts{})

		for _, sc := range schema.Catalog() {
			items, err := client.List(ctx, sc.Resource)
			if err != nil {
				t.Fatalf("%s: %v", sc.Resource, err)
			}
			if len(items) == 0 {
				t.Errorf("%s: expected seeded entities", sc.Resource)
			}
			for _, e := range items {
				if result := schema.Validate(schema.Encode(e, sc), sc); !result.Valid() {
					t.Errorf("%s: seeded entity fails validation: %v", sc.Resource, result)
				}
			}
		}
	})
}
