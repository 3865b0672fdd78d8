// internal/app/system/apiclient/collection.go
package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dalemusser/raizes/internal/app/system/timeouts"
	"github.com/dalemusser/raizes/internal/domain/models"
)

// Collection is the uniform CRUD surface of one entity type.
type Collection[T any] interface {
	List(ctx context.Context, opts ListOptions) ([]T, error)
	Get(ctx context.Context, id models.ID) (T, error)
	Create(ctx context.Context, rec T) (T, error)
	// Update sends a partial record (PATCH) and returns the merged record.
	Update(ctx context.Context, id models.ID, patch models.Patch) (T, error)
	// Replace sends the whole record (PUT).
	Replace(ctx context.Context, id models.ID, rec T) (T, error)
	Delete(ctx context.Context, id models.ID) error
}

// Resource is the HTTP implementation of Collection.
type Resource[T any] struct {
	c    *Client
	path string
}

// NewResource binds a collection path on c.
func NewResource[T any](c *Client, path string) *Resource[T] {
	return &Resource[T]{c: c, path: path}
}

// Path returns the collection resource path.
func (r *Resource[T]) Path() string { return r.path }

func (r *Resource[T]) item(id models.ID) string {
	return r.path + "/" + url.PathEscape(id.String())
}

// List returns the collection narrowed by opts.
func (r *Resource[T]) List(ctx context.Context, opts ListOptions) ([]T, error) {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Read())
	defer cancel()

	path := r.path
	if q := opts.Query().Encode(); q != "" {
		path += "?" + q
	}
	var raw []json.RawMessage
	if err := r.c.do(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return nil, fmt.Errorf("list %s: %w", r.path, err)
	}
	raw, err := opts.apply(raw)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.path, err)
	}

	out := make([]T, 0, len(raw))
	for i, b := range raw {
		var rec T
		if err := json.Unmarshal(b, &rec); err != nil {
			return nil, fmt.Errorf("list %s: record %d: %w", r.path, i, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// Get returns one record; a missing id yields an error matching ErrNotFound.
func (r *Resource[T]) Get(ctx context.Context, id models.ID) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Read())
	defer cancel()

	var rec T
	if err := r.c.do(ctx, http.MethodGet, r.item(id), nil, &rec); err != nil {
		var zero T
		return zero, fmt.Errorf("get %s: %w", r.item(id), err)
	}
	return rec, nil
}

// Create posts rec and returns the server echo (with its assigned id).
func (r *Resource[T]) Create(ctx context.Context, rec T) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Write())
	defer cancel()

	var out T
	if err := r.c.do(ctx, http.MethodPost, r.path, rec, &out); err != nil {
		var zero T
		return zero, fmt.Errorf("create %s: %w", r.path, err)
	}
	return out, nil
}

func (r *Resource[T]) Update(ctx context.Context, id models.ID, patch models.Patch) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Write())
	defer cancel()

	var out T
	if err := r.c.do(ctx, http.MethodPatch, r.item(id), patch, &out); err != nil {
		var zero T
		return zero, fmt.Errorf("update %s: %w", r.item(id), err)
	}
	return out, nil
}

func (r *Resource[T]) Replace(ctx context.Context, id models.ID, rec T) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Write())
	defer cancel()

	var out T
	if err := r.c.do(ctx, http.MethodPut, r.item(id), rec, &out); err != nil {
		var zero T
		return zero, fmt.Errorf("replace %s: %w", r.item(id), err)
	}
	return out, nil
}

func (r *Resource[T]) Delete(ctx context.Context, id models.ID) error {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Write())
	defer cancel()

	if err := r.c.do(ctx, http.MethodDelete, r.item(id), nil, nil); err != nil {
		return fmt.Errorf("delete %s: %w", r.item(id), err)
	}
	return nil
}
