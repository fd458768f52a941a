package table

import (
	"slices"
	"strings"

	"github.com/mattn/go-runewidth"
)

const (
	// MaxColumnWidth caps the cell-length contribution to a column width.
	// A single word longer than this still widens the column.
	MaxColumnWidth = 30

	// MinScaledWidth is the narrowest a column may become when scaled.
	MinScaledWidth = 5

	// DefaultWidth is used when no positive width is available.
	DefaultWidth = 80
)

// ColumnWidths computes the natural width of every column of g:
// max(longest word, min(longest cell, MaxColumnWidth)), over non-empty cells
// only. Columns without content get width 1.
func ColumnWidths(g Grid) []int {
	widths := make([]int, g.Cols())
	for c := range widths {
		longestWord, longestCell := 1, 1
		for _, row := range g {
			if c >= len(row) || row[c] == "" {
				continue
			}
			longestCell = max(longestCell, runewidth.StringWidth(row[c]))
			for _, word := range strings.Fields(row[c]) {
				longestWord = max(longestWord, runewidth.StringWidth(word))
			}
		}
		widths[c] = max(longestWord, min(longestCell, MaxColumnWidth))
	}
	return widths
}

// TotalWidth estimates the rendered width of a table with the given column
// widths: the cells plus three characters of separator between columns and
// two of outer border.
func TotalWidth(widths []int) int {
	if len(widths) == 0 {
		return 0
	}
	return sum(widths) + 3*(len(widths)-1) + 2
}

// Scale fits widths into the available width. When the estimated total
// exceeds available, every width is multiplied by
// (available - 3*(cols-1) - 2) / sum(widths) and floored at MinScaledWidth.
// The input slice is not modified.
func Scale(widths []int, available int) []int {
	out := slices.Clone(widths)
	total := sum(widths)
	if total == 0 || TotalWidth(widths) <= available {
		return out
	}

	ratio := float64(available-3*(len(widths)-1)-2) / float64(total)
	for i, w := range out {
		out[i] = max(MinScaledWidth, int(float64(w)*ratio))
	}
	return out
}

func sum(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}
