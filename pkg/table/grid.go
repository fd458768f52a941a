package table

// Grid is a resolved rectangular table: Grid[row][col] is the text shown at
// that position.
type Grid [][]string

// Rows returns the number of rows.
func (g Grid) Rows() int { return len(g) }

// Cols returns the number of columns of the widest row.
func (g Grid) Cols() int {
	n := 0
	for _, row := range g {
		n = max(n, len(row))
	}
	return n
}

// occupant is a cell spanning down into later rows.
type occupant struct {
	text      string
	remaining int // rows still covered below the current one
}

// Resolve expands merged cells into a rectangular grid.
//
// Rows are scanned top to bottom and columns left to right. Positions covered
// by a rowspan from an earlier row receive that cell's text; every other
// position takes the next source cell of the row. A cell's text is replicated
// into its colspan continuation columns, and a rowspan registers the cell's
// starting column for the following rows. Finally every row is padded with
// empty cells to the widest row.
func Resolve(rows [][]Cell) Grid {
	grid := make(Grid, 0, len(rows))
	occupied := make(map[int]*occupant)

	for _, row := range rows {
		var out []string
		pending := make(map[int]*occupant)
		next := 0

		for col := 0; next < len(row) || occupiedFrom(occupied, col); col++ {
			if take(occupied, col, &out) {
				continue
			}
			if next >= len(row) {
				// Gap before an occupant further right.
				out = append(out, "")
				continue
			}

			cell := row[next]
			next++
			span := clampSpan(cell.Colspan)
			for k := range span {
				if k > 0 {
					// A continuation overlapping an occupant consumes it.
					release(occupied, col+k)
				}
				out = append(out, cell.Text)
			}
			if cell.Rowspan > 1 {
				pending[col] = &occupant{text: cell.Text, remaining: clampSpan(cell.Rowspan) - 1}
			}
			col += span - 1
		}

		for c, occ := range pending {
			occupied[c] = occ
		}
		grid = append(grid, out)
	}

	return pad(grid)
}

// take places the occupant of col, if any, and reports whether it did.
func take(occupied map[int]*occupant, col int, out *[]string) bool {
	occ, ok := occupied[col]
	if !ok {
		return false
	}
	*out = append(*out, occ.text)
	release(occupied, col)
	return true
}

// release decrements the occupant of col and drops it once exhausted.
func release(occupied map[int]*occupant, col int) {
	occ, ok := occupied[col]
	if !ok {
		return
	}
	occ.remaining--
	if occ.remaining <= 0 {
		delete(occupied, col)
	}
}

func occupiedFrom(occupied map[int]*occupant, col int) bool {
	for c := range occupied {
		if c >= col {
			return true
		}
	}
	return false
}

func pad(g Grid) Grid {
	cols := g.Cols()
	for i, row := range g {
		for len(row) < cols {
			row = append(row, "")
		}
		g[i] = row
	}
	return g
}
