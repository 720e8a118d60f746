package viewer

import (
	"io"
	"log/slog"
	"time"

	"github.com/terraform-industry/gen3-test/internal/config"
	"github.com/terraform-industry/gen3-test/internal/platform"
)

// fakeBackend implements platform.Backend against an in-memory window list.
type fakeBackend struct {
	windows    []platform.Window
	listErr    error
	moves      map[platform.WindowID][]platform.Rect
	restored   map[platform.WindowID]int
	moveErr    map[platform.WindowID]error
	restoreErr map[platform.WindowID]error
}

func newFakeBackend(windows ...platform.Window) *fakeBackend {
	return &fakeBackend{
		windows:    windows,
		moves:      make(map[platform.WindowID][]platform.Rect),
		restored:   make(map[platform.WindowID]int),
		moveErr:    make(map[platform.WindowID]error),
		restoreErr: make(map[platform.WindowID]error),
	}
}

func (f *fakeBackend) Displays() ([]platform.Display, error) {
	return nil, nil
}

func (f *fakeBackend) ListWindows() ([]platform.Window, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.windows, nil
}

func (f *fakeBackend) MoveResize(windowID platform.WindowID, bounds platform.Rect) error {
	if err := f.moveErr[windowID]; err != nil {
		return err
	}
	f.moves[windowID] = append(f.moves[windowID], bounds)
	return nil
}

func (f *fakeBackend) Restore(windowID platform.WindowID) error {
	if err := f.restoreErr[windowID]; err != nil {
		return err
	}
	f.restored[windowID]++
	return nil
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Streams = []string{"rtsp://cam-01.local/live", "rtsp://cam-02.local/live"}
	cfg.LocateTimeoutSeconds = 1
	return cfg
}

func newTestManager(cfg *config.Config, backend platform.Backend) *Manager {
	m := NewManager(backend, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	m.sleep = func(time.Duration) {}
	m.pollInterval = time.Millisecond
	return m
}
