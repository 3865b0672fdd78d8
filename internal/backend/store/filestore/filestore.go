// Package filestore keeps backend records in memory, optionally mirrored to
// a json-server style db.json file ({"collection": [records...]}).
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/dalemusser/raizes/internal/backend/store"
	"go.uber.org/zap"
)

// Store is the in-memory implementation of store.Store.
type Store struct {
	mu   sync.RWMutex
	path string
	data map[string][]store.Record
	log  *zap.Logger
}

// NewMemory builds a store with no backing file.
func NewMemory(log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{data: map[string][]store.Record{}, log: log}
}

// Open loads path (when it exists) and mirrors every write back to it.
// Collections are created empty when missing from the file.
func Open(path string, collections []string, log *zap.Logger) (*Store, error) {
	s := NewMemory(log)
	s.path = path

	raw, err := ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		s.log.Info("db file not found, starting empty", zap.String("path", path))
	case err != nil:
		return nil, err
	default:
		for name, recs := range raw {
			s.data[name] = recs
		}
	}
	for _, c := range collections {
		if _, ok := s.data[c]; !ok {
			s.data[c] = []store.Record{}
		}
	}
	return s, nil
}

// ReadFile parses a db.json file without opening a store on it.
// A missing file yields an error matching fs.ErrNotExist.
func ReadFile(path string) (map[string][]store.Record, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var raw map[string][]store.Record
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return raw, nil
}

func (s *Store) List(ctx context.Context, collection string) ([]store.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	recs := s.data[collection]
	out := make([]store.Record, len(recs))
	for i, r := range recs {
		out[i] = store.Clone(r)
	}
	return out, nil
}

func (s *Store) Get(ctx context.Context, collection, id string) (store.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(collection, id)
	if i < 0 {
		return nil, store.ErrNotFound
	}
	return store.Clone(s.data[collection][i]), nil
}

func (s *Store) Insert(ctx context.Context, collection string, rec store.Record) (store.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexOf(collection, store.IDOf(rec)) >= 0 {
		return nil, store.ErrDuplicate
	}
	c := store.Clone(rec)
	s.data[collection] = append(s.data[collection], c)
	if err := s.flush(); err != nil {
		return nil, err
	}
	return store.Clone(c), nil
}

func (s *Store) Merge(ctx context.Context, collection, id string, patch store.Record) (store.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(collection, id)
	if i < 0 {
		return nil, store.ErrNotFound
	}
	merged := store.MergeInto(s.data[collection][i], patch)
	s.data[collection][i] = merged
	if err := s.flush(); err != nil {
		return nil, err
	}
	return store.Clone(merged), nil
}

func (s *Store) Replace(ctx context.Context, collection, id string, rec store.Record) (store.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(collection, id)
	if i < 0 {
		return nil, store.ErrNotFound
	}
	repl := store.WithID(rec, s.data[collection][i]["id"])
	s.data[collection][i] = repl
	if err := s.flush(); err != nil {
		return nil, err
	}
	return store.Clone(repl), nil
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(collection, id)
	if i < 0 {
		return store.ErrNotFound
	}
	recs := s.data[collection]
	s.data[collection] = append(recs[:i:i], recs[i+1:]...)
	return s.flush()
}

// Close flushes the file one last time.
func (s *Store) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flush()
}

// indexOf must be called with s.mu held.
func (s *Store) indexOf(collection, id string) int {
	if id == "" {
		return -1
	}
	for i, r := range s.data[collection] {
		if store.IDOf(r) == id {
			return i
		}
	}
	return -1
}

// flush writes the whole dataset atomically (temp file + rename).
// It must be called with s.mu held for writing.
func (s *Store) flush() error {
	if s.path == "" {
		return nil
	}
	b, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode db: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".db-*.json")
	if err != nil {
		return fmt.Errorf("write db: %w", err)
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write db: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write db: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("write db: %w", err)
	}
	return nil
}
