package testutil

import (
	"context"
	"errors"

	"github.com/dalemusser/raizes/internal/app/system/apiclient"
	"github.com/dalemusser/raizes/internal/domain/models"
)

// ErrBackendDown is the error returned by the failing fakes.
var ErrBackendDown = errors.New("backend unavailable")

// FailingCollection fails every call with Err.
type FailingCollection[T any] struct {
	Err error
}

func (f FailingCollection[T]) err() error {
	if f.Err == nil {
		return ErrBackendDown
	}
	return f.Err
}

func (f FailingCollection[T]) List(context.Context, apiclient.ListOptions) ([]T, error) {
	return nil, f.err()
}

func (f FailingCollection[T]) Get(context.Context, models.ID) (T, error) {
	var zero T
	return zero, f.err()
}

func (f FailingCollection[T]) Create(context.Context, T) (T, error) {
	var zero T
	return zero, f.err()
}

func (f FailingCollection[T]) Update(context.Context, models.ID, models.Patch) (T, error) {
	var zero T
	return zero, f.err()
}

func (f FailingCollection[T]) Replace(context.Context, models.ID, T) (T, error) {
	var zero T
	return zero, f.err()
}

func (f FailingCollection[T]) Delete(context.Context, models.ID) error {
	return f.err()
}

// ReadOnly wraps a collection so reads pass through and every write fails.
type ReadOnly[T any] struct {
	apiclient.Collection[T]
	Err error
}

// FailWrites returns c with its writes failing.
func FailWrites[T any](c apiclient.Collection[T]) *ReadOnly[T] {
	return &ReadOnly[T]{Collection: c, Err: ErrBackendDown}
}

func (r *ReadOnly[T]) Create(context.Context, T) (T, error) {
	var zero T
	return zero, r.Err
}

func (r *ReadOnly[T]) Update(context.Context, models.ID, models.Patch) (T, error) {
	var zero T
	return zero, r.Err
}

func (r *ReadOnly[T]) Replace(context.Context, models.ID, T) (T, error) {
	var zero T
	return zero, r.Err
}

func (r *ReadOnly[T]) Delete(context.Context, models.ID) error {
	return r.Err
}

// Counting wraps a collection and counts List calls.
type Counting[T any] struct {
	apiclient.Collection[T]
	Lists int
}

func (c *Counting[T]) List(ctx context.Context, opts apiclient.ListOptions) ([]T, error) {
	c.Lists++
	return c.Collection.List(ctx, opts)
}

// StaticIdentity serves a fixed user and records UpdateMe patches.
type StaticIdentity struct {
	User    models.User
	Patches []models.Patch
	Err     error
}

func (s *StaticIdentity) Me(context.Context) models.User { return s.User }

func (s *StaticIdentity) UpdateMe(_ context.Context, p models.Patch) (models.User, error) {
	if s.Err != nil {
		return models.User{}, s.Err
	}
	s.Patches = append(s.Patches, p)
	return s.User, nil
}
