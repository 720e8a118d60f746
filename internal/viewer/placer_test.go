package viewer

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/terraform-industry/gen3-test/internal/grid"
	"github.com/terraform-industry/gen3-test/internal/platform"
)

func testCells(n int) []grid.Cell {
	cells := make([]grid.Cell, 0, n)
	for i := 0; i < n; i++ {
		cells = append(cells, grid.Cell{
			Row: i / 3, Col: i % 3,
			X: (i % 3) * 100, Y: (i / 3) * 100,
			Width: 108, Height: 108,
		})
	}
	return cells
}

func TestPlaceAll_FewerWindowsThanCells(t *testing.T) {
	backend := newFakeBackend()
	m := newTestManager(testConfig(), backend)

	launched := []Launched{
		{Stream: Stream{Index: 0}, PID: 1, Window: 11},
		{Stream: Stream{Index: 1}, PID: 2, Window: 12},
		{Stream: Stream{Index: 2}, PID: 3, Window: 13},
	}
	cells := testCells(5)

	if placed := m.PlaceAll(launched, cells); placed != 3 {
		t.Fatalf("expected 3 placed windows, got %d", placed)
	}

	// The first 3 cells in scan order are used, one per window.
	for i, id := range []platform.WindowID{11, 12, 13} {
		moves := backend.moves[id]
		if len(moves) != 1 {
			t.Fatalf("expected one move for window %d, got %d", id, len(moves))
		}
		want := platform.Rect{X: cells[i].X, Y: cells[i].Y, Width: cells[i].Width, Height: cells[i].Height}
		if moves[0] != want {
			t.Fatalf("window %d: expected %+v, got %+v", id, want, moves[0])
		}
		if backend.restored[id] != 1 {
			t.Fatalf("expected window %d restored before placement", id)
		}
	}
}

func TestPlaceAll_ExcessStreamsDropped(t *testing.T) {
	backend := newFakeBackend()
	m := newTestManager(testConfig(), backend)

	launched := []Launched{
		{Stream: Stream{Index: 0}, PID: 1, Window: 11},
		{Stream: Stream{Index: 1}, PID: 2, Window: 12},
		{Stream: Stream{Index: 2}, PID: 3, Window: 13},
	}

	if placed := m.PlaceAll(launched, testCells(2)); placed != 2 {
		t.Fatalf("expected 2 placed windows, got %d", placed)
	}
	if len(backend.moves[13]) != 0 {
		t.Fatalf("expected excess window 13 to be left alone")
	}
}

func TestPlaceAll_UnlocatedStreamDoesNotConsumeCell(t *testing.T) {
	backend := newFakeBackend()
	m := newTestManager(testConfig(), backend)

	launched := []Launched{
		{Stream: Stream{Index: 0}, PID: 1, Window: 0}, // never located
		{Stream: Stream{Index: 1}, PID: 2, Window: 12},
	}
	cells := testCells(4)

	if placed := m.PlaceAll(launched, cells); placed != 1 {
		t.Fatalf("expected 1 placed window, got %d", placed)
	}
	moves := backend.moves[12]
	if len(moves) != 1 || moves[0].X != cells[0].X || moves[0].Y != cells[0].Y {
		t.Fatalf("expected window 12 in the first cell, got %+v", moves)
	}
}

func TestPlaceAll_FailureDoesNotAbortBatch(t *testing.T) {
	backend := newFakeBackend()
	backend.moveErr[11] = fmt.Errorf("window gone")
	m := newTestManager(testConfig(), backend)

	launched := []Launched{
		{Stream: Stream{Index: 0}, PID: 1, Window: 11},
		{Stream: Stream{Index: 1}, PID: 2, Window: 12},
	}
	cells := testCells(4)

	if placed := m.PlaceAll(launched, cells); placed != 1 {
		t.Fatalf("expected 1 placed window, got %d", placed)
	}
	// The failed window consumed its cell; the next window keeps its own.
	moves := backend.moves[12]
	if len(moves) != 1 || moves[0].X != cells[1].X {
		t.Fatalf("expected window 12 in the second cell, got %+v", moves)
	}
}

func TestPlaceAll_RestoreFailureStillPlaces(t *testing.T) {
	backend := newFakeBackend()
	backend.restoreErr[11] = fmt.Errorf("state change rejected")
	m := newTestManager(testConfig(), backend)

	launched := []Launched{{Stream: Stream{Index: 0}, PID: 1, Window: 11}}

	if placed := m.PlaceAll(launched, testCells(1)); placed != 1 {
		t.Fatalf("expected 1 placed window, got %d", placed)
	}
}

func TestPlaceAll_Idempotent(t *testing.T) {
	backend := newFakeBackend()
	m := newTestManager(testConfig(), backend)

	launched := []Launched{
		{Stream: Stream{Index: 0}, PID: 1, Window: 11},
		{Stream: Stream{Index: 1}, PID: 2, Window: 12},
	}
	cells := testCells(2)

	m.PlaceAll(launched, cells)
	m.PlaceAll(launched, cells)

	for _, id := range []platform.WindowID{11, 12} {
		moves := backend.moves[id]
		if len(moves) != 2 {
			t.Fatalf("expected 2 moves for window %d, got %d", id, len(moves))
		}
		if !reflect.DeepEqual(moves[0], moves[1]) {
			t.Fatalf("window %d drifted between runs: %+v vs %+v", id, moves[0], moves[1])
		}
	}
}
