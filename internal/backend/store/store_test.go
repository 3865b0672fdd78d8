package store

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func ids(recs []Record) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = IDOf(r)
	}
	return out
}

func TestQuery_Apply(t *testing.T) {
	recs := []Record{
		{"id": float64(1), "titulo": "Ervas", "created_date": "2024-01-01", "tipo": "medicina_tradicional"},
		{"id": float64(2), "titulo": "Sementes", "created_date": "2024-03-01", "tipo": "agricultura_ancestral"},
		{"id": "c", "titulo": "Cantos", "created_date": "2024-02-01", "tipo": "musica_oral", "tags": []any{"lua"}},
	}

	tests := []struct {
		name string
		q    Query
		want []string
	}{
		{"no options", Query{}, []string{"1", "2", "c"}},
		{"sort desc limit", Query{Sort: "created_date", Desc: true, Limit: 2}, []string{"2", "c"}},
		{"sort asc", Query{Sort: "titulo"}, []string{"c", "1", "2"}},
		{"where", Query{Where: map[string]string{"tipo": "musica_oral"}}, []string{"c"}},
		{"where on array", Query{Where: map[string]string{"tags": "lua"}}, []string{"c"}},
		{"where id number", Query{Where: map[string]string{"id": "2"}}, []string{"2"}},
		{"full text", Query{Q: "SEMEN"}, []string{"2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, ids(tt.q.Apply(recs))); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
	if IDOf(recs[0]) != "1" {
		t.Error("Apply reordered its input")
	}
}

func TestMergeInto_KeepsID(t *testing.T) {
	rec := Record{"id": float64(7), "titulo": "A", "apoios": []any{"a"}}
	got := MergeInto(rec, Record{"id": "hijack", "apoios": []any{"a", "b"}})
	want := Record{"id": float64(7), "titulo": "A", "apoios": []any{"a", "b"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if len(rec["apoios"].([]any)) != 1 {
		t.Error("MergeInto modified the original record")
	}
}

func TestClone_IsDeep(t *testing.T) {
	rec := Record{"regioes": []any{map[string]any{"nome": "a"}}}
	c := Clone(rec)
	c["regioes"].([]any)[0].(map[string]any)["nome"] = "b"
	if rec["regioes"].([]any)[0].(map[string]any)["nome"] != "a" {
		t.Error("Clone shared nested data")
	}
}
