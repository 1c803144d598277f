package cli

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// ansiPattern matches SGR escape sequences, which take no screen space.
var ansiPattern = regexp.MustCompile("\x1b\\[[0-9;]*m")

// Table formats rows into aligned columns. Column widths are measured in
// visible characters, so cells may carry ANSI colour.
type Table struct {
	headers []string
	rows    [][]string
	padding int
}

// NewTable creates a table with the given headers. A table without headers
// renders only its rows.
func NewTable(headers ...string) *Table {
	return &Table{
		headers: headers,
		padding: 2,
	}
}

// AddRow adds a row. Rows shorter than the widest row are padded with empty
// cells; headers, when set, fix the column count.
func (t *Table) AddRow(cells ...string) {
	if n := len(t.headers); n > 0 && len(cells) != n {
		row := make([]string, n)
		copy(row, cells)
		cells = row
	}
	t.rows = append(t.rows, cells)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

func (t *Table) columns() int {
	n := len(t.headers)
	for _, row := range t.rows {
		n = max(n, len(row))
	}
	return n
}

// Render returns the table with a dashed rule under the headers. Trailing
// spaces are trimmed from every line.
func (t *Table) Render() string {
	cols := t.columns()
	if cols == 0 {
		return ""
	}

	widths := make([]int, cols)
	measure := func(row []string) {
		for i, cell := range row {
			widths[i] = max(widths[i], displayWidth(cell))
		}
	}
	measure(t.headers)
	for _, row := range t.rows {
		measure(row)
	}

	var b strings.Builder
	gap := strings.Repeat(" ", t.padding)
	writeRow := func(row []string) {
		var line strings.Builder
		for i := 0; i < cols; i++ {
			if i > 0 {
				line.WriteString(gap)
			}
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			line.WriteString(padRight(cell, widths[i]))
		}
		b.WriteString(strings.TrimRight(line.String(), " "))
		b.WriteString("\n")
	}

	if len(t.headers) > 0 {
		writeRow(t.headers)
		rule := make([]string, cols)
		for i, w := range widths {
			rule[i] = strings.Repeat("-", w)
		}
		writeRow(rule)
	}
	for _, row := range t.rows {
		writeRow(row)
	}

	return b.String()
}

// displayWidth returns the number of visible characters in s.
func displayWidth(s string) int {
	return utf8.RuneCountInString(ansiPattern.ReplaceAllString(s, ""))
}

// padRight pads s with spaces to width visible characters.
func padRight(s string, width int) string {
	if w := displayWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
