// Package htmlsanitize cleans the rich text written in the letter editor.
//
// Letter content arrives as HTML produced by a rich-text editor. It is stored
// sanitised, and it is sanitised again before being placed in a view.
package htmlsanitize

import (
	"html"
	"html/template"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// richPolicy allows what the letter editor produces: paragraphs,
	// headings, lists, quotes, links, images and basic inline formatting.
	richPolicy = newRichPolicy()
	// stripPolicy removes every tag; used for excerpts.
	stripPolicy = bluemonday.StrictPolicy()
)

func newRichPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("u", "s", "mark")
	p.AllowAttrs("class").OnElements("p", "span", "blockquote")
	return p
}

// Sanitize returns s with every disallowed element and attribute removed.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return richPolicy.Sanitize(s)
}

// SanitizeToHTML sanitises s and marks the result safe for templates.
func SanitizeToHTML(s string) template.HTML {
	return template.HTML(Sanitize(s))
}

// IsPlainText reports whether s contains no markup.
func IsPlainText(s string) bool {
	return !(strings.Contains(s, "<") && strings.Contains(s, ">"))
}

// PlainTextToHTML escapes s and wraps it in a paragraph, turning newlines into <br>.
func PlainTextToHTML(s string) string {
	if s == "" {
		return ""
	}
	escaped := html.EscapeString(s)
	escaped = strings.ReplaceAll(escaped, "\r\n", "\n")
	return "<p>" + strings.ReplaceAll(escaped, "\n", "<br>") + "</p>"
}

// PrepareForDisplay accepts either plain text or HTML and returns safe HTML.
func PrepareForDisplay(s string) template.HTML {
	if s == "" {
		return ""
	}
	if IsPlainText(s) {
		return template.HTML(PlainTextToHTML(s))
	}
	return SanitizeToHTML(s)
}

// Excerpt returns the text of s without markup, cut to at most max runes
// (an ellipsis marks a cut).
func Excerpt(s string, max int) string {
	t := html.UnescapeString(stripPolicy.Sanitize(s))
	t = strings.Join(strings.Fields(t), " ")
	if max <= 0 || utf8.RuneCountInString(t) <= max {
		return t
	}
	r := []rune(t)
	return strings.TrimSpace(string(r[:max])) + "…"
}
