package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

func validOutput(s string) bool {
	return s == outputTable || s == outputJSON || s == outputYAML
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8BC34A"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))
)

// encode writes v as JSON or YAML. YAML goes through JSON first so both
// formats use the same field names.
func (c *cli) encode(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	if c.output == outputJSON {
		_, err = fmt.Fprintln(c.out, string(b))
		return err
	}
	var generic any
	if err := json.Unmarshal(b, &generic); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	y, err := yaml.Marshal(generic)
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = c.out.Write(y)
	return err
}

// table is a static listing rendered with lipgloss.
type table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Footer  string

	// colors holds an optional foreground per row for the first column.
	colors map[int]lipgloss.Color
}

func newTable(title string, headers ...string) *table {
	return &table{Title: title, Headers: headers, colors: map[int]lipgloss.Color{}}
}

func (t *table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// ColorLast tints the first cell of the most recent row.
func (t *table) ColorLast(hex string) {
	if hex != "" && len(t.Rows) > 0 {
		t.colors[len(t.Rows)-1] = lipgloss.Color(hex)
	}
}

func (t *table) Render() string {
	var sb strings.Builder
	if t.Title != "" {
		sb.WriteString(titleStyle.Render(t.Title))
		sb.WriteString("\n")
	}
	if len(t.Rows) == 0 {
		sb.WriteString(mutedStyle.Render("(nada encontrado)"))
		sb.WriteString("\n")
		return sb.String()
	}

	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}
	// Padding(0, 1) adds a column on each side.
	for i := range widths {
		widths[i] += 2
	}

	sep := mutedStyle.Render("│")
	for i, h := range t.Headers {
		sb.WriteString(headerStyle.Width(widths[i]).Render(h))
		if i < len(t.Headers)-1 {
			sb.WriteString(sep)
		}
	}
	sb.WriteString("\n")
	for i, w := range widths {
		sb.WriteString(mutedStyle.Render(strings.Repeat("─", w)))
		if i < len(widths)-1 {
			sb.WriteString(mutedStyle.Render("┼"))
		}
	}
	sb.WriteString("\n")

	for r, row := range t.Rows {
		for i := range t.Headers {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			style := cellStyle.Width(widths[i])
			if color, ok := t.colors[r]; ok && i == 0 {
				style = style.Foreground(color)
			}
			sb.WriteString(style.Render(cell))
			if i < len(t.Headers)-1 {
				sb.WriteString(sep)
			}
		}
		sb.WriteString("\n")
	}
	if t.Footer != "" {
		sb.WriteString(mutedStyle.Render(t.Footer))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (c *cli) table(t *table) error {
	_, err := fmt.Fprint(c.out, t.Render())
	return err
}

func yesNo(b bool) string {
	if b {
		return "sim"
	}
	return "não"
}

func mark(b bool) string {
	if b {
		return "●"
	}
	return ""
}

// clip shortens s to n runes for a table cell.
func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
