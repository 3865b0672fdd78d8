package membership

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestToggle_TwiceRestoresOriginal(t *testing.T) {
	orig := []string{"a@x", "b@x"}

	once, member := Toggle(orig, "c@x")
	if !member || len(once) != 3 {
		t.Fatalf("first toggle = %v, %v", once, member)
	}
	twice, member := Toggle(once, "c@x")
	if member {
		t.Error("second toggle should remove membership")
	}
	if diff := cmp.Diff(orig, twice); diff != "" {
		t.Errorf("toggle twice (-want +got):\n%s", diff)
	}
}

func TestToggle_RemovesExisting(t *testing.T) {
	got, member := Toggle([]string{"a", "b"}, "a")
	if member {
		t.Error("expected removal")
	}
	if diff := cmp.Diff([]string{"b"}, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestAdd_IsIdempotent(t *testing.T) {
	got := Add(Add(nil, "a"), "a")
	if diff := cmp.Diff([]string{"a"}, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if got := Add([]string{"a"}, ""); len(got) != 1 {
		t.Errorf("empty id should not be added: %v", got)
	}
}

func TestAdd_DoesNotAliasInput(t *testing.T) {
	in := make([]string, 1, 4)
	in[0] = "a"
	out := Add(in, "b")
	out[0] = "z"
	if in[0] != "a" {
		t.Error("Add wrote through to the input slice")
	}
}

func TestRemove_AllOccurrences(t *testing.T) {
	got := Remove([]string{"a", "b", "a"}, "a")
	if diff := cmp.Diff([]string{"b"}, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestDedupe(t *testing.T) {
	got := Dedupe([]string{"a", "b", "a", "c", "b"})
	if diff := cmp.Diff([]string{"a", "b", "c"}, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if Dedupe(nil) == nil {
		t.Error("Dedupe(nil) should be an empty slice")
	}
}
