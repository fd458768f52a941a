// Package table lays out HTML tables as bordered, word-wrapped text lines.
//
// Layout is a pure, total function: given a table node and an available width
// it always terminates and always returns at least one line. The pipeline is:
//
//  1. [Extract] reads rows of [Cell] values (text, colspan, rowspan) from the
//     table node. Spans are clamped to [1, 5].
//  2. [Resolve] expands merged cells into a rectangular [Grid]. Cells spanning
//     several rows are re-emitted in each covered row; cells spanning several
//     columns are replicated into their continuation columns.
//  3. [ColumnWidths] picks one width per column: the longest single word, or
//     the longest cell capped at [MaxColumnWidth], whichever is larger.
//  4. [Scale] shrinks all widths proportionally when the table would not fit,
//     never below [MinScaledWidth].
//  5. [WrapCell] wraps each cell to its column, hyphen-splitting words that
//     are wider than the column.
//  6. [Render] draws box borders and clips every line to the available width.
//
// Widths are terminal display widths (see github.com/mattn/go-runewidth), so
// wide runes occupy two columns.
//
// # Example
//
//	lines := table.Layout(tableNode, 80)
//	for _, l := range lines {
//	    fmt.Println(l)
//	}
package table
