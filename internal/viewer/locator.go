package viewer

import (
	"strings"
	"time"

	"github.com/terraform-industry/gen3-test/internal/config"
	"github.com/terraform-industry/gen3-test/internal/platform"
)

// LocateWindows polls the window registry until every spawned viewer has a
// top-level window or the locate timeout passes, resolving Window fields in
// place. It returns the number of windows located.
//
// A shortfall is a degraded-but-successful run: streams whose window never
// appeared are logged distinctly from spawn failures and left unplaced.
func (m *Manager) LocateWindows(launched []Launched) int {
	expected := 0
	for i := range launched {
		if launched[i].PID != 0 {
			expected++
		}
	}
	if expected == 0 {
		return 0
	}

	deadline := time.Now().Add(time.Duration(m.cfg.LocateTimeoutSeconds) * time.Second)

	located := 0
	for {
		windows, err := m.backend.ListWindows()
		if err != nil {
			m.logger.Warn("failed to enumerate windows", "error", err)
		} else {
			located = m.matchWindows(launched, windows)
		}

		if located >= expected {
			break
		}
		if time.Now().After(deadline) {
			for i := range launched {
				if launched[i].PID != 0 && launched[i].Window == 0 {
					m.logger.Warn("no window located before timeout",
						"stream", launched[i].Stream.Index,
						"uri", launched[i].Stream.URI,
						"pid", launched[i].PID)
				}
			}
			break
		}
		m.sleep(m.pollInterval)
	}

	return located
}

func (m *Manager) matchWindows(launched []Launched, windows []platform.Window) int {
	switch m.cfg.Pairing {
	case config.PairingTitle:
		m.matchByTitle(launched, windows)
	case config.PairingOrder:
		m.matchByOrder(launched, windows)
	default:
		m.matchByPID(launched, windows)
	}

	located := 0
	for i := range launched {
		if launched[i].Window != 0 {
			located++
		}
	}
	return located
}

// matchByPID resolves windows only for the process IDs this run spawned,
// via _NET_WM_PID. Stale viewer instances from a prior run never match.
func (m *Manager) matchByPID(launched []Launched, windows []platform.Window) {
	claimed := claimedWindows(launched)
	for i := range launched {
		if launched[i].Window != 0 || launched[i].PID == 0 {
			continue
		}
		for _, w := range windows {
			if _, ok := claimed[w.ID]; ok {
				continue
			}
			if w.PID == launched[i].PID {
				launched[i].Window = w.ID
				claimed[w.ID] = struct{}{}
				break
			}
		}
	}
}

// matchByTitle resolves windows by the unique per-instance marker passed
// through the viewer's title argument.
func (m *Manager) matchByTitle(launched []Launched, windows []platform.Window) {
	claimed := claimedWindows(launched)
	for i := range launched {
		if launched[i].Window != 0 || launched[i].PID == 0 {
			continue
		}
		for _, w := range windows {
			if _, ok := claimed[w.ID]; ok {
				continue
			}
			if strings.Contains(w.Title, launched[i].Marker) {
				launched[i].Window = w.ID
				claimed[w.ID] = struct{}{}
				break
			}
		}
	}
}

// matchByOrder pairs the Nth enumerated window of the viewer's WM_CLASS
// with the Nth launched stream. Enumeration order carries no guaranteed
// relation to launch order; this is the legacy best-effort heuristic for
// viewers that expose neither a PID property nor a title argument.
func (m *Manager) matchByOrder(launched []Launched, windows []platform.Window) {
	var class []platform.WindowID
	for _, w := range windows {
		if strings.EqualFold(w.AppID, m.cfg.Viewer.WindowClass) {
			class = append(class, w.ID)
		}
	}

	// Re-pair from scratch: positional pairing is global, and the window
	// set grows between polls.
	for i := range launched {
		if i < len(class) {
			launched[i].Window = class[i]
		} else {
			launched[i].Window = 0
		}
	}
}

func claimedWindows(launched []Launched) map[platform.WindowID]struct{} {
	claimed := make(map[platform.WindowID]struct{}, len(launched))
	for i := range launched {
		if launched[i].Window != 0 {
			claimed[launched[i].Window] = struct{}{}
		}
	}
	return claimed
}
