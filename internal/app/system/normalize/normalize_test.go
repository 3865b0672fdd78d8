package normalize

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEmail(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"user@example.com", "user@example.com"},
		{"  User@Example.Com  ", "user@example.com"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Email(tt.input); got != tt.want {
				t.Errorf("Email(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Dona Maria", "Dona Maria"},
		{"  Dona   Maria  ", "Dona Maria"},
		{"", ""},
		{"QUILOMBO KALUNGA", "QUILOMBO KALUNGA"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Name(tt.input); got != tt.want {
				t.Errorf("Name(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestKey(t *testing.T) {
	if got := Key("  Minhas "); got != "minhas" {
		t.Errorf("Key() = %q", got)
	}
}

func TestList(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", []string{}},
		{"terra, água , terra", []string{"terra", "água"}},
		{" , ,sementes", []string{"sementes"}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, List(tt.input)); diff != "" {
				t.Errorf("List(%q) (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestLines(t *testing.T) {
	got := Lines("Ministério Público\r\nFUNAI\nFUNAI")
	if diff := cmp.Diff([]string{"Ministério Público", "FUNAI"}, got); diff != "" {
		t.Errorf("Lines (-want +got):\n%s", diff)
	}
}
