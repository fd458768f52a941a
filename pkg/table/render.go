package table

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/net/html"
)

// EmptyTable is the single line produced for a table without rows or columns.
const EmptyTable = "(empty table)"

// box holds the box-drawing runes of a bordered table.
type box struct {
	horizontal, vertical               string
	topLeft, topTee, topRight          string
	leftTee, cross, rightTee           string
	bottomLeft, bottomTee, bottomRight string
}

var singleBox = box{
	horizontal: "─", vertical: "│",
	topLeft: "┌", topTee: "┬", topRight: "┐",
	leftTee: "├", cross: "┼", rightTee: "┤",
	bottomLeft: "└", bottomTee: "┴", bottomRight: "┘",
}

// Layout renders the table node n into at most width columns per line.
// A non-positive width falls back to DefaultWidth.
func Layout(n *html.Node, width int) []string {
	return LayoutRows(Extract(n), width)
}

// LayoutRows renders already extracted rows. See Layout.
func LayoutRows(rows [][]Cell, width int) []string {
	if width <= 0 {
		width = DefaultWidth
	}
	if len(rows) == 0 {
		return []string{EmptyTable}
	}

	g := Resolve(rows)
	if g.Cols() == 0 {
		return []string{EmptyTable}
	}

	widths := Scale(ColumnWidths(g), width)
	return Render(g, widths, width)
}

// Render draws g with the given column widths: a top border, every row's
// wrapped lines, a separator after the header row and between all further
// rows, and a bottom border. Lines are clipped to width when width > 0.
func Render(g Grid, widths []int, width int) []string {
	b := singleBox
	lines := []string{border(widths, b.topLeft, b.topTee, b.topRight)}

	for r, row := range g {
		wrapped := make([][]string, len(row))
		height := 1
		for c, text := range row {
			wrapped[c] = WrapCell(text, widths[c])
			height = max(height, len(wrapped[c]))
		}

		for i := range height {
			var line strings.Builder
			line.WriteString(b.vertical)
			for c, cell := range wrapped {
				content := ""
				if i < len(cell) {
					content = cell[i]
				}
				line.WriteString(" ")
				line.WriteString(runewidth.FillRight(content, widths[c]))
				line.WriteString(" ")
				line.WriteString(b.vertical)
			}
			lines = append(lines, line.String())
		}

		if r == 0 || r < len(g)-1 {
			lines = append(lines, border(widths, b.leftTee, b.cross, b.rightTee))
		}
	}

	lines = append(lines, border(widths, b.bottomLeft, b.bottomTee, b.bottomRight))

	if width > 0 {
		for i, l := range lines {
			lines[i] = runewidth.Truncate(l, width, "")
		}
	}
	return lines
}

func border(widths []int, left, mid, right string) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat(singleBox.horizontal, w+2)
	}
	return left + strings.Join(parts, mid) + right
}
