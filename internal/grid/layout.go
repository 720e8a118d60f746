// Package grid computes the placement rectangles of the camera wall.
package grid

import "github.com/terraform-industry/gen3-test/internal/config"

// Cell is one rectangular region of the arrangement, addressed by
// (row, column), with absolute screen coordinates.
type Cell struct {
	Row    int
	Col    int
	X      int
	Y      int
	Width  int
	Height int
}

// Params holds the geometry inputs for Compute.
type Params struct {
	OffsetX    int
	OffsetY    int
	CellWidth  int
	CellHeight int
	Rows       int
	Cols       int
	OverlapPx  int
	Reserved   []config.Slot
}

// FromConfig builds Params from the grid configuration.
func FromConfig(g config.Grid) Params {
	return Params{
		OffsetX:    g.MonitorOffsetX,
		OffsetY:    g.MonitorOffsetY,
		CellWidth:  g.CellWidth,
		CellHeight: g.CellHeight,
		Rows:       g.Rows,
		Cols:       g.Cols,
		OverlapPx:  g.OverlapPx,
		Reserved:   g.Reserved,
	}
}

// Compute returns one cell per non-reserved grid position in row-major scan
// order. Cells past the first row/column are shifted back by OverlapPx and
// every cell is enlarged by OverlapPx so adjacent windows overlap rather
// than leaving seams from window-manager chrome and rounding.
//
// Compute is deterministic and has no failure path; rows/cols <= 0 is a
// configuration error reported by the caller.
func Compute(p Params) []Cell {
	reserved := make(map[config.Slot]struct{}, len(p.Reserved))
	for _, slot := range p.Reserved {
		reserved[slot] = struct{}{}
	}

	cells := make([]Cell, 0, p.Rows*p.Cols-len(reserved))
	for row := 0; row < p.Rows; row++ {
		for col := 0; col < p.Cols; col++ {
			if _, ok := reserved[config.Slot{Row: row, Col: col}]; ok {
				continue
			}

			x := p.OffsetX + col*p.CellWidth
			if col > 0 {
				x -= p.OverlapPx
			}
			y := p.OffsetY + row*p.CellHeight
			if row > 0 {
				y -= p.OverlapPx
			}

			cells = append(cells, Cell{
				Row:    row,
				Col:    col,
				X:      x,
				Y:      y,
				Width:  p.CellWidth + p.OverlapPx,
				Height: p.CellHeight + p.OverlapPx,
			})
		}
	}

	return cells
}
