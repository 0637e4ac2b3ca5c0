package cli

import (
	"strings"
	"unicode/utf8"
)

// Table renders rows as left-aligned columns sized to their widest cell.
type Table struct {
	headers   []string
	rows      [][]string
	padding   int
	maxWidths map[int]int // wrap limit per column index; 0 or absent means none
}

// NewTable creates a new table with the given headers.
func NewTable(headers []string) *Table {
	return &Table{
		headers:   headers,
		padding:   2,
		maxWidths: make(map[int]int),
	}
}

// SetColumnMaxWidth wraps cells in column colIndex at word boundaries once
// they exceed maxWidth.
func (t *Table) SetColumnMaxWidth(colIndex, maxWidth int) {
	t.maxWidths[colIndex] = maxWidth
}

// AddRow appends a row, padding or truncating it to the header count.
func (t *Table) AddRow(row []string) {
	fitted := make([]string, len(t.headers))
	copy(fitted, row)
	t.rows = append(t.rows, fitted)
}

// Render formats the table with a header, a dashed separator and the rows.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	// Each cell becomes one or more lines.
	cells := make([][][]string, len(t.rows))
	for r, row := range t.rows {
		cells[r] = make([][]string, len(row))
		for c, cell := range row {
			cells[r][c] = wrapText(cell, t.maxWidths[c])
		}
	}

	widths := make([]int, len(t.headers))
	for c, h := range t.headers {
		widths[c] = textWidth(h)
	}
	for _, row := range cells {
		for c, lines := range row {
			for _, line := range lines {
				widths[c] = max(widths[c], textWidth(line))
			}
		}
	}

	gap := strings.Repeat(" ", t.padding)
	var b strings.Builder
	writeLine := func(parts []string) {
		b.WriteString(strings.TrimRight(strings.Join(parts, gap), " "))
		b.WriteByte('\n')
	}

	parts := make([]string, len(t.headers))
	for c, h := range t.headers {
		parts[c] = padRight(h, widths[c])
	}
	writeLine(parts)

	for c, w := range widths {
		parts[c] = strings.Repeat("-", w)
	}
	writeLine(parts)

	for _, row := range cells {
		height := 1
		for _, lines := range row {
			height = max(height, len(lines))
		}
		for i := range height {
			for c := range t.headers {
				line := ""
				if i < len(row[c]) {
					line = row[c][i]
				}
				parts[c] = padRight(line, widths[c])
			}
			writeLine(parts)
		}
	}

	return b.String()
}

func textWidth(s string) int {
	return utf8.RuneCountInString(s)
}

// padRight pads s with spaces to width. Longer strings are returned unchanged.
func padRight(s string, width int) string {
	if n := textWidth(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// wrapText breaks text at word boundaries so no line exceeds width. Words
// longer than width are split. A width of 0 disables wrapping.
func wrapText(text string, width int) []string {
	if width <= 0 || textWidth(text) <= width {
		return []string{text}
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{text}
	}

	var lines []string
	current := ""
	for _, word := range words {
		for textWidth(word) > width {
			if current != "" {
				lines = append(lines, current)
				current = ""
			}
			runes := []rune(word)
			lines = append(lines, string(runes[:width]))
			word = string(runes[width:])
		}

		switch {
		case current == "":
			current = word
		case textWidth(current)+1+textWidth(word) <= width:
			current += " " + word
		default:
			lines = append(lines, current)
			current = word
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}
