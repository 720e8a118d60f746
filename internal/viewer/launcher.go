package viewer

import (
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/terraform-industry/gen3-test/internal/config"
)

// LaunchAll spawns one viewer process per stream, preserving input order.
// A failed spawn is logged and recorded with PID 0; remaining launches
// continue. After issuing all spawns the optional settle delay blocks once
// to give slow viewers time to create their windows before the locator
// starts polling.
func (m *Manager) LaunchAll(streams []Stream) []Launched {
	launched := make([]Launched, 0, len(streams))

	for _, stream := range streams {
		l := Launched{
			Stream: stream,
			Marker: m.markerFor(stream.Index),
		}

		argv := renderViewerArgs(m.cfg.Viewer, stream.URI, l.Marker)
		pid, err := m.spawn(argv)
		if err != nil {
			m.logger.Error("failed to spawn viewer",
				"stream", stream.Index, "uri", stream.URI, "error", err)
		} else {
			l.PID = pid
			m.logger.Debug("viewer spawned",
				"stream", stream.Index, "uri", stream.URI, "pid", pid)
		}

		launched = append(launched, l)
	}

	if m.cfg.SettleDelaySeconds > 0 {
		m.sleep(time.Duration(m.cfg.SettleDelaySeconds) * time.Second)
	}

	return launched
}

// markerFor builds the unique per-instance window-title marker used by
// title pairing. The run ID keeps this run's windows distinct from any
// viewer instances left over from a prior run.
func (m *Manager) markerFor(index int) string {
	return fmt.Sprintf("camgrid-%s-%02d", m.runID, index)
}

// renderViewerArgs fills the {{uri}} and {{title}} placeholders in the
// configured viewer argv template.
func renderViewerArgs(v config.Viewer, uri, marker string) []string {
	argv := make([]string, 0, len(v.Args)+1)
	argv = append(argv, v.Command)
	for _, arg := range v.Args {
		arg = strings.ReplaceAll(arg, "{{uri}}", uri)
		arg = strings.ReplaceAll(arg, "{{title}}", marker)
		argv = append(argv, arg)
	}
	return argv
}

// startProcess spawns argv detached. The viewer is not supervised past
// launch: it is neither waited on nor killed when this process exits.
func startProcess(argv []string) (int, error) {
	if len(argv) == 0 {
		return 0, fmt.Errorf("empty viewer command")
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	if err := cmd.Start(); err != nil {
		return 0, err
	}
	pid := cmd.Process.Pid
	// Do not wait; viewers are long-lived.
	_ = cmd.Process.Release()
	return pid, nil
}
