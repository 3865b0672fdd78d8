// Package sqlitestore persists backend records in SQLite, one JSON body per row.
package sqlitestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dalemusser/raizes/internal/backend/store"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// Store is the SQLite implementation of store.Store.
type Store struct {
	conn *sql.DB
	log  *zap.Logger
}

// Open opens or creates the database at path and applies the schema.
func Open(path string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// A single connection serialises writers and keeps :memory: databases shared.
	conn.SetMaxOpenConns(1)
	if _, err := conn.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("set wal mode: %w", err)
	}
	s := &Store{conn: conn, log: log}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS records (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		collection TEXT NOT NULL,
		id TEXT NOT NULL,
		body TEXT NOT NULL,
		UNIQUE(collection, id)
	);
	CREATE INDEX IF NOT EXISTS idx_records_collection ON records(collection, seq);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close(ctx context.Context) error {
	return s.conn.Close()
}

func (s *Store) List(ctx context.Context, collection string) ([]store.Record, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT body FROM records WHERE collection = ? ORDER BY seq`, collection)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}
	defer rows.Close()

	out := []store.Record{}
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("list %s: %w", collection, err)
		}
		rec, err := decode(body)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", collection, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, collection, id string) (store.Record, error) {
	return get(ctx, s.conn, collection, id)
}

func (s *Store) Insert(ctx context.Context, collection string, rec store.Record) (store.Record, error) {
	body, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	res, err := s.conn.ExecContext(ctx,
		`INSERT INTO records (collection, id, body) VALUES (?, ?, ?) ON CONFLICT(collection, id) DO NOTHING`,
		collection, store.IDOf(rec), string(body))
	if err != nil {
		return nil, fmt.Errorf("insert %s: %w", collection, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, store.ErrDuplicate
	}
	return decode(string(body))
}

func (s *Store) Merge(ctx context.Context, collection, id string, patch store.Record) (store.Record, error) {
	return s.rewrite(ctx, collection, id, func(cur store.Record) store.Record {
		return store.MergeInto(cur, patch)
	})
}

func (s *Store) Replace(ctx context.Context, collection, id string, rec store.Record) (store.Record, error) {
	return s.rewrite(ctx, collection, id, func(cur store.Record) store.Record {
		return store.WithID(rec, cur["id"])
	})
}

// rewrite reads, transforms and writes one record inside a transaction.
func (s *Store) rewrite(ctx context.Context, collection, id string, fn func(store.Record) store.Record) (store.Record, error) {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	cur, err := get(ctx, tx, collection, id)
	if err != nil {
		return nil, err
	}
	next := fn(cur)
	body, err := json.Marshal(next)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE records SET body = ? WHERE collection = ? AND id = ?`,
		string(body), collection, id); err != nil {
		return nil, fmt.Errorf("update %s/%s: %w", collection, id, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return next, nil
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	res, err := s.conn.ExecContext(ctx,
		`DELETE FROM records WHERE collection = ? AND id = ?`, collection, id)
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.ErrNotFound
	}
	return nil
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func get(ctx context.Context, q querier, collection, id string) (store.Record, error) {
	var body string
	err := q.QueryRowContext(ctx,
		`SELECT body FROM records WHERE collection = ? AND id = ?`, collection, id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	return decode(body)
}

func decode(body string) (store.Record, error) {
	var rec store.Record
	if err := json.Unmarshal([]byte(body), &rec); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return rec, nil
}
