package config

import (
	"fmt"
	"strings"
)

// PairingMode defines how located windows are matched back to launched
// viewer processes.
type PairingMode string

const (
	// PairingPID matches a window's _NET_WM_PID against the PIDs of the
	// processes this run spawned. Pre-existing viewer instances from a
	// prior run are never picked up.
	PairingPID PairingMode = "pid"
	// PairingTitle matches windows by a unique per-instance marker passed
	// through the {{title}} placeholder in the viewer args.
	PairingTitle PairingMode = "title"
	// PairingOrder pairs the Nth enumerated window of the viewer's
	// WM_CLASS with the Nth launched stream. Enumeration order is not
	// guaranteed to match launch order; kept for viewers that expose
	// neither a PID property nor a title argument.
	PairingOrder PairingMode = "order"
)

// Slot identifies one grid cell by row and column.
type Slot struct {
	Row int `yaml:"row"`
	Col int `yaml:"col"`
}

// Viewer describes the external media-player process spawned per stream.
type Viewer struct {
	Command string `yaml:"command"`
	// Args is the argv template after Command. {{uri}} expands to the
	// stream URI, {{title}} to the per-instance window-title marker.
	Args []string `yaml:"args"`
	// WindowClass is the WM_CLASS used to enumerate viewer windows in
	// order pairing mode.
	WindowClass string `yaml:"window_class"`
}

// Grid describes the cell geometry of the camera wall.
type Grid struct {
	Rows       int `yaml:"rows"`
	Cols       int `yaml:"cols"`
	CellWidth  int `yaml:"cell_width"`
	CellHeight int `yaml:"cell_height"`
	// MonitorOffsetX/Y shift the whole grid to a target monitor's origin.
	MonitorOffsetX int `yaml:"monitor_offset_x"`
	MonitorOffsetY int `yaml:"monitor_offset_y"`
	// Monitor names a RandR output whose bounds override the offsets
	// when set (e.g. "DP-3").
	Monitor string `yaml:"monitor,omitempty"`
	// OverlapPx is subtracted from non-first rows/columns and added to
	// every cell's size so adjacent windows overlap instead of leaving
	// seams from window-manager chrome.
	OverlapPx int `yaml:"overlap_px"`
	// Reserved cells are never assigned a stream.
	Reserved []Slot `yaml:"reserved,omitempty"`
}

// Config holds the application configuration.
type Config struct {
	Streams              []string    `yaml:"streams"`
	Viewer               Viewer      `yaml:"viewer"`
	Grid                 Grid        `yaml:"grid"`
	Pairing              PairingMode `yaml:"pairing"`
	SettleDelaySeconds   int         `yaml:"settle_delay_seconds"`
	LocateTimeoutSeconds int         `yaml:"locate_timeout_seconds"`
	LogLevel             string      `yaml:"log_level"`
}

func DefaultConfig() *Config {
	return &Config{
		Viewer: Viewer{
			Command:     "vlc",
			Args:        []string{"{{uri}}"},
			WindowClass: "vlc",
		},
		Grid: Grid{
			Rows:       2,
			Cols:       3,
			CellWidth:  1147,
			CellHeight: 720,
			OverlapPx:  8,
		},
		Pairing:              PairingPID,
		SettleDelaySeconds:   0,
		LocateTimeoutSeconds: 10,
		LogLevel:             "info",
	}
}

// Validate performs strict validation of the effective configuration.
func (c *Config) Validate() error {
	if len(c.Streams) == 0 {
		return &ValidationError{Path: "streams", Err: fmt.Errorf("at least one stream URI is required")}
	}
	for i, uri := range c.Streams {
		if strings.TrimSpace(uri) == "" {
			return &ValidationError{Path: fmt.Sprintf("streams[%d]", i), Err: fmt.Errorf("stream URI must not be empty")}
		}
	}
	if strings.TrimSpace(c.Viewer.Command) == "" {
		return &ValidationError{Path: "viewer.command", Err: fmt.Errorf("viewer command is required")}
	}
	if c.Grid.Rows <= 0 || c.Grid.Cols <= 0 {
		return &ValidationError{Path: "grid", Err: fmt.Errorf("rows and cols must be positive")}
	}
	if c.Grid.CellWidth <= 0 || c.Grid.CellHeight <= 0 {
		return &ValidationError{Path: "grid", Err: fmt.Errorf("cell_width and cell_height must be positive")}
	}
	if c.Grid.OverlapPx < 0 {
		return &ValidationError{Path: "grid.overlap_px", Err: fmt.Errorf("overlap_px must be >= 0")}
	}
	for i, slot := range c.Grid.Reserved {
		if slot.Row < 0 || slot.Row >= c.Grid.Rows || slot.Col < 0 || slot.Col >= c.Grid.Cols {
			return &ValidationError{
				Path: fmt.Sprintf("grid.reserved[%d]", i),
				Err:  fmt.Errorf("slot (%d,%d) is outside the %dx%d grid", slot.Row, slot.Col, c.Grid.Rows, c.Grid.Cols),
			}
		}
	}
	switch c.Pairing {
	case PairingPID, PairingOrder:
	case PairingTitle:
		if !hasTitlePlaceholder(c.Viewer.Args) {
			return &ValidationError{Path: "viewer.args", Err: fmt.Errorf("pairing %q requires a {{title}} placeholder in viewer.args", c.Pairing)}
		}
	default:
		return &ValidationError{Path: "pairing", Err: fmt.Errorf("pairing must be one of: pid, title, order")}
	}
	if c.Pairing == PairingOrder && strings.TrimSpace(c.Viewer.WindowClass) == "" {
		return &ValidationError{Path: "viewer.window_class", Err: fmt.Errorf("pairing %q requires viewer.window_class", c.Pairing)}
	}
	if c.SettleDelaySeconds < 0 {
		return &ValidationError{Path: "settle_delay_seconds", Err: fmt.Errorf("settle_delay_seconds must be >= 0")}
	}
	if c.LocateTimeoutSeconds <= 0 {
		return &ValidationError{Path: "locate_timeout_seconds", Err: fmt.Errorf("locate_timeout_seconds must be positive")}
	}
	switch c.LogLevel {
	case "debug", "info", "warning", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warning, error")}
	}
	return nil
}

func hasTitlePlaceholder(args []string) bool {
	for _, arg := range args {
		if strings.Contains(arg, "{{title}}") {
			return true
		}
	}
	return false
}
