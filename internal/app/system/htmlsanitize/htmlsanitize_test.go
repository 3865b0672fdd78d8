package htmlsanitize_test

import (
	"html/template"
	"strings"
	"testing"

	"github.com/dalemusser/raizes/internal/app/system/htmlsanitize"
)

func TestSanitize_Empty(t *testing.T) {
	if got := htmlsanitize.Sanitize(""); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestSanitize_PlainText(t *testing.T) {
	if got := htmlsanitize.Sanitize("Terra é vida"); got != "Terra é vida" {
		t.Errorf("expected plain text unchanged, got %q", got)
	}
}

func TestSanitize_KeepsEditorMarkup(t *testing.T) {
	tests := []string{
		"<p><strong>Bold</strong> and <em>italic</em></p>",
		"<ul><li>Item 1</li><li>Item 2</li></ul>",
		"<ol><li>First</li><li>Second</li></ol>",
		"<blockquote>A quote</blockquote>",
		"<h1>Heading 1</h1><h2>Heading 2</h2>",
	}
	for _, in := range tests {
		if got := htmlsanitize.Sanitize(in); got != in {
			t.Errorf("Sanitize(%q) = %q", in, got)
		}
	}
}

func TestSanitize_RemovesScript(t *testing.T) {
	got := htmlsanitize.Sanitize("<p>Hello</p><script>alert('xss')</script>")
	if got != "<p>Hello</p>" {
		t.Errorf("expected script removed, got %q", got)
	}
}

func TestSanitize_RemovesDangerousAttributes(t *testing.T) {
	tests := []struct {
		in, forbidden string
	}{
		{`<a href="javascript:alert('xss')">Click</a>`, "javascript:"},
		{`<img src="x" onerror="alert('xss')">`, "onerror"},
		{`<p>Content</p><iframe src="https://evil.com"></iframe>`, "iframe"},
		{`<form action="/submit"><input type="text"></form>`, "<form"},
	}
	for _, tt := range tests {
		if got := htmlsanitize.Sanitize(tt.in); strings.Contains(got, tt.forbidden) {
			t.Errorf("Sanitize(%q) kept %q: %q", tt.in, tt.forbidden, got)
		}
	}
}

func TestSanitize_AllowsSafeLinks(t *testing.T) {
	got := htmlsanitize.Sanitize(`<a href="https://raizes.org">Link</a>`)
	if !strings.Contains(got, "https://raizes.org") {
		t.Errorf("expected safe link preserved, got %q", got)
	}
}

func TestSanitizeToHTML(t *testing.T) {
	if got := htmlsanitize.SanitizeToHTML("<p>Hello</p>"); got != template.HTML("<p>Hello</p>") {
		t.Errorf("got %q", got)
	}
}

func TestIsPlainText(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"", true},
		{"Hello", true},
		{"5 < 10", true},
		{"5 > 3", true},
		{"<p>Hello</p>", false},
	}
	for _, tt := range tests {
		if got := htmlsanitize.IsPlainText(tt.in); got != tt.want {
			t.Errorf("IsPlainText(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPlainTextToHTML(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"Hello", "<p>Hello</p>"},
		{"Line 1\nLine 2", "<p>Line 1<br>Line 2</p>"},
		{"A & B", "<p>A &amp; B</p>"},
	}
	for _, tt := range tests {
		if got := htmlsanitize.PlainTextToHTML(tt.in); got != tt.want {
			t.Errorf("PlainTextToHTML(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPrepareForDisplay(t *testing.T) {
	tests := []struct {
		in   string
		want template.HTML
	}{
		{"", ""},
		{"Hello", "<p>Hello</p>"},
		{"<p>Hello</p><script>x()</script>", "<p>Hello</p>"},
	}
	for _, tt := range tests {
		if got := htmlsanitize.PrepareForDisplay(tt.in); got != tt.want {
			t.Errorf("PrepareForDisplay(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExcerpt(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"<p>Terra <strong>e</strong> água</p>", 0, "Terra e água"},
		{"<p>Demarcação já</p>", 9, "Demarcaçã…"},
		{"<p>curto</p>", 50, "curto"},
	}
	for _, tt := range tests {
		if got := htmlsanitize.Excerpt(tt.in, tt.max); got != tt.want {
			t.Errorf("Excerpt(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}
