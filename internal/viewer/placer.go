package viewer

import (
	"github.com/terraform-industry/gen3-test/internal/grid"
	"github.com/terraform-industry/gen3-test/internal/platform"
)

// PlaceAll moves each located window into the next free grid cell, pairing
// located windows in stream order with cells in row-major scan order for
// min(windows, cells) pairs. Streams without a window do not consume a
// cell; streams beyond the cell count are dropped without error.
//
// Placement is fire-and-forget per window: a stale handle or rejected
// request is logged and the remaining placements continue. Re-running with
// identical inputs yields identical rectangles.
func (m *Manager) PlaceAll(launched []Launched, cells []grid.Cell) int {
	placed := 0
	next := 0

	for i := range launched {
		if launched[i].Window == 0 {
			continue
		}
		if next >= len(cells) {
			break
		}
		cell := cells[next]
		next++

		// Minimized windows ignore configure requests; restore first.
		// Restore also maps the window if it was hidden, without raising
		// it above its current stacking position.
		if err := m.backend.Restore(launched[i].Window); err != nil {
			m.logger.Warn("failed to restore window",
				"stream", launched[i].Stream.Index, "window", launched[i].Window, "error", err)
		}

		bounds := platform.Rect{X: cell.X, Y: cell.Y, Width: cell.Width, Height: cell.Height}
		if err := m.backend.MoveResize(launched[i].Window, bounds); err != nil {
			m.logger.Warn("failed to position window",
				"stream", launched[i].Stream.Index, "window", launched[i].Window,
				"row", cell.Row, "col", cell.Col, "error", err)
			continue
		}

		m.logger.Debug("window placed",
			"stream", launched[i].Stream.Index, "window", launched[i].Window,
			"row", cell.Row, "col", cell.Col,
			"x", cell.X, "y", cell.Y, "width", cell.Width, "height", cell.Height)
		placed++
	}

	return placed
}
