package viewstate

import (
	"context"
	"errors"
	"testing"

	"github.com/dalemusser/raizes/internal/domain/models"
	"github.com/google/go-cmp/cmp"
)

func TestGuard_DropsAfterUnmount(t *testing.T) {
	var g Guard
	gen := g.Mount()

	applied := 0
	if !g.Apply(gen, func() { applied++ }) {
		t.Fatal("Apply should run while mounted")
	}
	g.Unmount()
	if g.Apply(gen, func() { applied++ }) {
		t.Error("Apply ran after Unmount")
	}
	if applied != 1 {
		t.Errorf("applied = %d, want 1", applied)
	}
}

func TestGuard_DropsStaleGeneration(t *testing.T) {
	var g Guard
	old := g.Mount()
	g.Unmount()
	cur := g.Mount()

	if g.Apply(old, func() {}) {
		t.Error("result from a previous mount was applied")
	}
	if !g.Apply(cur, func() {}) {
		t.Error("current generation should apply")
	}
	if !g.Mounted() || g.Generation() != cur {
		t.Errorf("Mounted=%v Generation=%d", g.Mounted(), g.Generation())
	}
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    Policy
		wantErr bool
	}{
		{"", Refetch, false},
		{"refetch", Refetch, false},
		{" PATCH ", PatchLocal, false},
		{"optimistic", "", true},
	}
	for _, tt := range tests {
		got, err := ParsePolicy(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParsePolicy(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestReplaceRemoveFind(t *testing.T) {
	items := []models.Saber{{ID: "1", Titulo: "A"}, {ID: "2", Titulo: "B"}}

	replaced := ReplaceByID(items, models.Saber{ID: "2", Titulo: "B2"})
	if replaced[1].Titulo != "B2" || items[1].Titulo != "B" {
		t.Errorf("ReplaceByID: got %+v, input %+v", replaced, items)
	}

	removed := RemoveByID(items, "1")
	if diff := cmp.Diff([]models.Saber{{ID: "2", Titulo: "B"}}, removed); diff != "" {
		t.Errorf("RemoveByID (-want +got):\n%s", diff)
	}

	if _, ok := FindByID(items, "3"); ok {
		t.Error("FindByID found a missing id")
	}
	if s, ok := FindByID(items, "1"); !ok || s.Titulo != "A" {
		t.Errorf("FindByID = %+v, %v", s, ok)
	}
}

func TestPolicy_Resync(t *testing.T) {
	var refetched, patched bool
	refetch := func(context.Context) error { refetched = true; return nil }
	patch := func() { patched = true }

	if err := Refetch.Resync(context.Background(), refetch, patch); err != nil || !refetched || patched {
		t.Errorf("Refetch: err=%v refetched=%v patched=%v", err, refetched, patched)
	}
	refetched, patched = false, false
	if err := PatchLocal.Resync(context.Background(), refetch, patch); err != nil || refetched || !patched {
		t.Errorf("PatchLocal: err=%v refetched=%v patched=%v", err, refetched, patched)
	}
}

func TestInvalid(t *testing.T) {
	err := Invalid("Título é obrigatório.")
	if !errors.Is(err, ErrInvalid) || errors.Is(err, ErrNotAllowed) {
		t.Errorf("Invalid() = %v", err)
	}
	if !errors.Is(NotAllowed("x"), ErrNotAllowed) {
		t.Error("NotAllowed should wrap ErrNotAllowed")
	}
}
