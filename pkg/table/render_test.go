package table

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestLayoutRowsEmpty(t *testing.T) {
	tests := []struct {
		name string
		rows [][]Cell
	}{
		{"no rows", nil},
		{"rows without cells", [][]Cell{{}, {}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LayoutRows(tt.rows, 40)
			if !reflect.DeepEqual(got, []string{EmptyTable}) {
				t.Errorf("LayoutRows() = %q, want %q", got, []string{EmptyTable})
			}
		})
	}
}

func TestLayoutTwoByTwo(t *testing.T) {
	rows := [][]Cell{cells("a", "b"), cells("c", "d")}

	for _, width := range []int{20, 40, 80} {
		t.Run(fmt.Sprintf("width=%d", width), func(t *testing.T) {
			got := LayoutRows(rows, width)
			want := []string{
				"┌───┬───┐",
				"│ a │ b │",
				"├───┼───┤",
				"│ c │ d │",
				"└───┴───┘",
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("LayoutRows() =\n%s\nwant\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
			}
		})
	}
}

func TestLayoutSeparators(t *testing.T) {
	rows := [][]Cell{cells("h1", "h2"), cells("a", "b"), cells("c", "d"), cells("e", "f")}
	got := LayoutRows(rows, 80)

	// top, 4 rows, 3 separators, bottom
	if len(got) != 9 {
		t.Fatalf("LayoutRows() returned %d lines, want 9:\n%s", len(got), strings.Join(got, "\n"))
	}
	for _, i := range []int{2, 4, 6} {
		if !strings.HasPrefix(got[i], "├") {
			t.Errorf("line %d = %q, want a separator", i, got[i])
		}
	}
}

func TestLayoutSingleRowHasHeaderSeparator(t *testing.T) {
	got := LayoutRows([][]Cell{cells("only")}, 80)
	want := []string{
		"┌──────┐",
		"│ only │",
		"├──────┤",
		"└──────┘",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LayoutRows() = %q, want %q", got, want)
	}
}

func TestLayoutWrapsTallRows(t *testing.T) {
	rows := [][]Cell{
		cells("Planet", "Notes"),
		cells("Mercury", "smallest planet in the solar system and closest to the sun"),
	}
	got := LayoutRows(rows, 50)

	var body []string
	for _, l := range got {
		if strings.Contains(l, "Mercury") {
			body = append(body, l)
		}
	}
	if len(body) != 1 {
		t.Fatalf("Mercury should appear on exactly one line, got %d", len(body))
	}

	tall := 0
	for _, l := range got {
		if strings.HasPrefix(l, "│") {
			tall++
		}
	}
	if tall < 3 {
		t.Errorf("expected the notes cell to wrap onto several lines, got %d content lines:\n%s",
			tall, strings.Join(got, "\n"))
	}
}

func TestLayoutLinesNeverExceedWidth(t *testing.T) {
	rows := [][]Cell{
		{NewCell("Country", 1, 1), NewCell("Capital city and other notes", 2, 1), NewCell("Population", 1, 1)},
		{NewCell("Liechtenstein", 1, 2), NewCell("Vaduz", 1, 1), NewCell("The capital is small", 1, 1), NewCell("39,000", 1, 1)},
		{NewCell("Schaan", 1, 1), NewCell("largest municipality", 1, 1), NewCell("6,000", 1, 1)},
		cells("日本", "東京", "首都", "125,000,000"),
		cells(strings.Repeat("supercalifragilistic", 3)),
	}

	for width := 1; width <= 120; width++ {
		lines := LayoutRows(rows, width)
		if len(lines) == 0 {
			t.Fatalf("LayoutRows(width=%d) returned no lines", width)
		}
		for i, l := range lines {
			if w := runewidth.StringWidth(l); w > width {
				t.Fatalf("LayoutRows(width=%d) line %d is %d wide: %q", width, i, w, l)
			}
		}
	}
}

func TestLayoutNonPositiveWidth(t *testing.T) {
	got := LayoutRows([][]Cell{cells(strings.Repeat("x", 200))}, 0)
	for _, l := range got {
		if w := runewidth.StringWidth(l); w > DefaultWidth {
			t.Errorf("line %q is %d wide, want <= %d", l, w, DefaultWidth)
		}
	}
}

func TestLayoutFromHTML(t *testing.T) {
	n := findTable(t, `<table>
		<tr><th>Element</th><th>Symbol</th></tr>
		<tr><td>Hydrogen</td><td>H</td></tr>
		<tr><td>Helium</td><td>He</td></tr>
	</table>`)

	got := Layout(n, 80)
	want := []string{
		"┌──────────┬────────┐",
		"│ Element  │ Symbol │",
		"├──────────┼────────┤",
		"│ Hydrogen │ H      │",
		"├──────────┼────────┤",
		"│ Helium   │ He     │",
		"└──────────┴────────┘",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Layout() =\n%s\nwant\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
}
