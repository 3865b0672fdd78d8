package testutil

import (
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/raizes/internal/app/system/apiclient"
	"github.com/dalemusser/raizes/internal/backend/rest"
	"github.com/dalemusser/raizes/internal/backend/store"
	"github.com/dalemusser/raizes/internal/backend/store/filestore"
	"go.uber.org/zap"
)

// Backend is a real REST backend over an in-memory store, served by httptest.
type Backend struct {
	Server *httptest.Server
	Store  *filestore.Store
	Client *apiclient.Client
}

// NewBackend starts a backend seeded with data and returns a client bound
// to it (current user "1" unless overridden in opts).
func NewBackend(t *testing.T, data map[string][]store.Record, opts ...apiclient.Option) *Backend {
	t.Helper()
	st := filestore.NewMemory(zap.NewNop())
	if err := store.Seed(t.Context(), st, data); err != nil {
		t.Fatalf("seed backend: %v", err)
	}
	h := rest.NewHandler(st, nil, "", zap.NewNop())
	srv := httptest.NewServer(rest.Routes(h, nil))
	t.Cleanup(srv.Close)

	return &Backend{
		Server: srv,
		Store:  st,
		Client: apiclient.New(srv.URL, opts...),
	}
}

// Record reads one stored record directly from the store.
func (b *Backend) Record(t *testing.T, collection, id string) store.Record {
	t.Helper()
	rec, err := b.Store.Get(t.Context(), collection, id)
	if err != nil {
		t.Fatalf("read %s/%s: %v", collection, id, err)
	}
	return rec
}

// Count returns the number of records in a collection.
func (b *Backend) Count(t *testing.T, collection string) int {
	t.Helper()
	recs, err := b.Store.List(t.Context(), collection)
	if err != nil {
		t.Fatalf("list %s: %v", collection, err)
	}
	return len(recs)
}
