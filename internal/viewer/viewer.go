// Package viewer launches the external stream viewer processes and places
// their windows into the computed camera-wall grid.
package viewer

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/terraform-industry/gen3-test/internal/config"
	"github.com/terraform-industry/gen3-test/internal/platform"
)

// Stream is one camera feed to display. Order defines launch order and,
// indirectly, grid assignment order.
type Stream struct {
	Index int
	URI   string
}

// Launched tracks one spawned viewer process. PID is 0 when the spawn
// failed; Window is 0 until the locator resolves it.
type Launched struct {
	Stream Stream
	PID    int
	Marker string
	Window platform.WindowID
}

// Manager drives the launch -> locate -> place batch. It is single-threaded;
// the ordered Launched slice is the only state threaded through the stages.
type Manager struct {
	backend platform.Backend
	cfg     *config.Config
	logger  *slog.Logger
	runID   string

	// Injection points for tests.
	spawn        func(argv []string) (int, error)
	sleep        func(d time.Duration)
	pollInterval time.Duration
}

// NewManager creates a manager for one batch run.
func NewManager(backend platform.Backend, cfg *config.Config, logger *slog.Logger) *Manager {
	return &Manager{
		backend:      backend,
		cfg:          cfg,
		logger:       logger,
		runID:        uuid.NewString()[:8],
		spawn:        startProcess,
		sleep:        time.Sleep,
		pollInterval: 100 * time.Millisecond,
	}
}

// Streams converts the ordered URI list from configuration into streams.
func Streams(uris []string) []Stream {
	streams := make([]Stream, 0, len(uris))
	for i, uri := range uris {
		streams = append(streams, Stream{Index: i, URI: uri})
	}
	return streams
}
