// pkg/report/table.go
package report

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// writeTable renders an aligned markdown table. Column widths use display
// width so names with wide runes (Pokémon titles, Japanese publishers)
// still line up.
func writeTable(sb *strings.Builder, headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			if w := runewidth.StringWidth(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}
	for i := range widths {
		if widths[i] < 3 {
			widths[i] = 3
		}
	}

	writeRow := func(cells []string) {
		sb.WriteString("|")
		for i, width := range widths {
			content := ""
			if i < len(cells) {
				content = cells[i]
			}
			sb.WriteString(" ")
			sb.WriteString(content)
			if padding := width - runewidth.StringWidth(content); padding > 0 {
				sb.WriteString(strings.Repeat(" ", padding))
			}
			sb.WriteString(" |")
		}
		sb.WriteString("\n")
	}

	writeRow(headers)

	sb.WriteString("|")
	for _, width := range widths {
		sb.WriteString(" ")
		sb.WriteString(strings.Repeat("-", width))
		sb.WriteString(" |")
	}
	sb.WriteString("\n")

	for _, row := range rows {
		writeRow(row)
	}
}
