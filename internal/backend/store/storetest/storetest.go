// Package storetest is the behaviour suite every store.Store must pass.
package storetest

import (
	"context"
	"errors"
	"testing"

	"github.com/dalemusser/raizes/internal/backend/store"
	"github.com/google/go-cmp/cmp"
)

// Run exercises s. The store must start empty.
func Run(t *testing.T, s store.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("insert and get", func(t *testing.T) {
		rec := store.Record{"id": float64(1), "titulo": "Ervas", "valorizacoes": []any{"a@x"}}
		if _, err := s.Insert(ctx, "saberes", rec); err != nil {
			t.Fatalf("Insert: %v", err)
		}
		got, err := s.Get(ctx, "saberes", "1")
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if diff := cmp.Diff(rec, got); diff != "" {
			t.Errorf("Get (-want +got):\n%s", diff)
		}
	})

	t.Run("duplicate id", func(t *testing.T) {
		_, err := s.Insert(ctx, "saberes", store.Record{"id": "1"})
		if !errors.Is(err, store.ErrDuplicate) {
			t.Errorf("Insert duplicate = %v, want ErrDuplicate", err)
		}
	})

	t.Run("list keeps insertion order", func(t *testing.T) {
		for _, id := range []string{"b", "a", "c"} {
			if _, err := s.Insert(ctx, "cartas", store.Record{"id": id}); err != nil {
				t.Fatalf("Insert %s: %v", id, err)
			}
		}
		recs, err := s.List(ctx, "cartas")
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		var got []string
		for _, r := range recs {
			got = append(got, store.IDOf(r))
		}
		if diff := cmp.Diff([]string{"b", "a", "c"}, got); diff != "" {
			t.Errorf("order (-want +got):\n%s", diff)
		}
	})

	t.Run("merge is shallow and keeps id", func(t *testing.T) {
		got, err := s.Merge(ctx, "saberes", "1", store.Record{"id": "other", "valorizacoes": []any{"a@x", "b@x"}, "compartilhamentos": float64(1)})
		if err != nil {
			t.Fatalf("Merge: %v", err)
		}
		want := store.Record{"id": float64(1), "titulo": "Ervas", "valorizacoes": []any{"a@x", "b@x"}, "compartilhamentos": float64(1)}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Merge (-want +got):\n%s", diff)
		}
		stored, _ := s.Get(ctx, "saberes", "1")
		if diff := cmp.Diff(want, stored); diff != "" {
			t.Errorf("stored (-want +got):\n%s", diff)
		}
	})

	t.Run("replace drops old fields", func(t *testing.T) {
		got, err := s.Replace(ctx, "saberes", "1", store.Record{"titulo": "Novo"})
		if err != nil {
			t.Fatalf("Replace: %v", err)
		}
		want := store.Record{"id": float64(1), "titulo": "Novo"}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Replace (-want +got):\n%s", diff)
		}
	})

	t.Run("missing ids", func(t *testing.T) {
		if _, err := s.Get(ctx, "saberes", "404"); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("Get = %v", err)
		}
		if _, err := s.Merge(ctx, "saberes", "404", store.Record{"a": "b"}); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("Merge = %v", err)
		}
		if _, err := s.Replace(ctx, "saberes", "404", store.Record{}); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("Replace = %v", err)
		}
		if err := s.Delete(ctx, "saberes", "404"); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("Delete = %v", err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := s.Delete(ctx, "cartas", "a"); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		recs, _ := s.List(ctx, "cartas")
		if len(recs) != 2 {
			t.Errorf("len = %d after delete, want 2", len(recs))
		}
	})

	t.Run("empty collection", func(t *testing.T) {
		recs, err := s.List(ctx, "comunidades")
		if err != nil || len(recs) != 0 {
			t.Errorf("List = %v, %v", recs, err)
		}
	})
}
