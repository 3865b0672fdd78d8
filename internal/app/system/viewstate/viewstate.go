// Package viewstate holds the pieces every page view-model shares: the
// mounted guard, the post-mutation consistency policy, and snapshot helpers.
package viewstate

import (
	"fmt"
	"strings"
	"sync"

	"github.com/dalemusser/raizes/internal/domain/models"
)

// Guard tracks whether a page is mounted. Results that arrive after Unmount
// are dropped instead of being applied to a view nobody is looking at.
// In-flight requests are not cancelled.
type Guard struct {
	mu      sync.Mutex
	mounted bool
	gen     uint64
}

// Mount marks the view as live and returns its generation.
func (g *Guard) Mount() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.mounted = true
	g.gen++
	return g.gen
}

// Unmount marks the view as gone.
func (g *Guard) Unmount() {
	g.mu.Lock()
	g.mounted = false
	g.mu.Unlock()
}

// Mounted reports whether the view is live.
func (g *Guard) Mounted() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.mounted
}

// Generation returns the current mount generation.
func (g *Guard) Generation() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.gen
}

// Apply runs fn while holding the guard, only if the view is still mounted
// in generation gen. It reports whether fn ran.
func (g *Guard) Apply(gen uint64, fn func()) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.mounted || g.gen != gen {
		return false
	}
	fn()
	return true
}

// Policy decides how a page resynchronises after a successful mutation.
type Policy string

const (
	// Refetch re-runs the page's whole fetch cycle (the default).
	Refetch Policy = "refetch"
	// PatchLocal replaces the mutated record in the snapshot with the
	// server echo and skips the refetch.
	PatchLocal Policy = "patch"
)

// ParsePolicy accepts "refetch" (or empty) and "patch".
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case "", Refetch:
		return Refetch, nil
	case PatchLocal:
		return PatchLocal, nil
	}
	return "", fmt.Errorf("unknown consistency policy %q (want refetch or patch)", s)
}

// Identified is implemented by every entity record.
type Identified interface {
	RecordID() models.ID
}

// ReplaceByID returns a copy of items with the record sharing rec's id
// replaced by rec. Items are unchanged when no record matches.
func ReplaceByID[T Identified](items []T, rec T) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := range out {
		if out[i].RecordID() == rec.RecordID() {
			out[i] = rec
		}
	}
	return out
}

// RemoveByID returns a copy of items without the record whose id is id.
func RemoveByID[T Identified](items []T, id models.ID) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if it.RecordID() != id {
			out = append(out, it)
		}
	}
	return out
}

// FindByID returns the record with the given id.
func FindByID[T Identified](items []T, id models.ID) (T, bool) {
	for _, it := range items {
		if it.RecordID() == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}
