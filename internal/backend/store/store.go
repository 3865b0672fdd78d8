// Package store defines the persistence contract of the mock REST backend.
//
// Records are schemaless JSON objects kept verbatim. Every record carries an
// "id" field; ids are compared by their string form, so 1 and "1" name the
// same record.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dalemusser/raizes/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
)

// Record is one stored JSON object.
type Record = map[string]any

var (
	// ErrNotFound is returned when an id is not present in a collection.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when inserting an id that already exists.
	ErrDuplicate = errors.New("duplicate id")
)

// Store persists records grouped by collection name.
//
// Implementations must apply Merge and Replace atomically per record and
// return records in insertion order from List.
type Store interface {
	List(ctx context.Context, collection string) ([]Record, error)
	Get(ctx context.Context, collection, id string) (Record, error)
	Insert(ctx context.Context, collection string, rec Record) (Record, error)
	// Merge shallow-merges patch into the record; "id" cannot be changed.
	Merge(ctx context.Context, collection, id string, patch Record) (Record, error)
	// Replace swaps the whole record, keeping its id.
	Replace(ctx context.Context, collection, id string, rec Record) (Record, error)
	Delete(ctx context.Context, collection, id string) error
	Close(ctx context.Context) error
}

// IDOf returns the string form of rec's id.
func IDOf(rec Record) string {
	return models.IDString(rec["id"])
}

// Clone deep-copies a record through JSON so callers never share nested
// slices or maps with the store.
func Clone(rec Record) Record {
	if rec == nil {
		return nil
	}
	b, err := json.Marshal(rec)
	if err != nil {
		out := make(Record, len(rec))
		for k, v := range rec {
			out[k] = v
		}
		return out
	}
	var out Record
	_ = json.Unmarshal(b, &out)
	return out
}

// MergeInto applies a shallow patch to a copy of rec. The original id wins.
func MergeInto(rec, patch Record) Record {
	out := Clone(rec)
	if out == nil {
		out = Record{}
	}
	id, hasID := out["id"]
	for k, v := range Clone(patch) {
		out[k] = v
	}
	if hasID {
		out["id"] = id
	}
	return out
}

// WithID returns a copy of rec whose id is id.
func WithID(rec Record, id any) Record {
	out := Clone(rec)
	if out == nil {
		out = Record{}
	}
	out["id"] = id
	return out
}

// Query narrows a List result the way json-server does.
type Query struct {
	Sort  string
	Desc  bool
	Limit int
	// Where holds field equality filters compared by string form.
	Where map[string]string
	// Q is a full-text term matched against every string value.
	Q string
}

// Apply filters, sorts and truncates records. The input is not modified.
func (q Query) Apply(recs []Record) []Record {
	out := make([]Record, 0, len(recs))
	for _, r := range recs {
		if q.matches(r) {
			out = append(out, r)
		}
	}
	if q.Sort != "" {
		sort.SliceStable(out, func(i, j int) bool {
			c := models.CompareValues(out[i][q.Sort], out[j][q.Sort])
			if q.Desc {
				return c > 0
			}
			return c < 0
		})
	}
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out
}

func (q Query) matches(r Record) bool {
	for k, want := range q.Where {
		if !models.FieldMatches(r[k], want) {
			return false
		}
	}
	if term := text.Fold(strings.TrimSpace(q.Q)); term != "" {
		return containsText(r, term)
	}
	return true
}

func containsText(v any, term string) bool {
	switch t := v.(type) {
	case string:
		return strings.Contains(text.Fold(t), term)
	case []any:
		for _, e := range t {
			if containsText(e, term) {
				return true
			}
		}
	case map[string]any:
		for _, e := range t {
			if containsText(e, term) {
				return true
			}
		}
	}
	return false
}

// Seed inserts every record of data into s, skipping ids already present.
func Seed(ctx context.Context, s Store, data map[string][]Record) error {
	for coll, recs := range data {
		for _, r := range recs {
			if _, err := s.Insert(ctx, coll, r); err != nil && !errors.Is(err, ErrDuplicate) {
				return fmt.Errorf("seed %s/%s: %w", coll, IDOf(r), err)
			}
		}
	}
	return nil
}
