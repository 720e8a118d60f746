package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, data string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestLoadFromPath_MinimalConfigUsesDefaults(t *testing.T) {
	path := writeConfig(t, "streams:\n  - rtsp://cam-01.local/live\n")

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Viewer.Command != "vlc" {
		t.Fatalf("expected default viewer command vlc, got %q", cfg.Viewer.Command)
	}
	if cfg.Grid.Rows != 2 || cfg.Grid.Cols != 3 {
		t.Fatalf("expected default 2x3 grid, got %dx%d", cfg.Grid.Rows, cfg.Grid.Cols)
	}
	if cfg.Pairing != PairingPID {
		t.Fatalf("expected default pairing pid, got %q", cfg.Pairing)
	}
	if cfg.LocateTimeoutSeconds != 10 {
		t.Fatalf("expected default locate timeout 10, got %d", cfg.LocateTimeoutSeconds)
	}
}

func TestLoadFromPath_MissingFileIsFatal(t *testing.T) {
	_, err := LoadFromPath(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestLoadFromPath_EmptyStreamsRejected(t *testing.T) {
	path := writeConfig(t, "grid:\n  rows: 2\n  cols: 2\n")

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected error for empty stream list")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
	if verr.Path != "streams" {
		t.Fatalf("expected path streams, got %q", verr.Path)
	}
}

func TestLoadFromPath_UnknownKeyRejected(t *testing.T) {
	path := writeConfig(t, strings.Join([]string{
		"streams:",
		"  - rtsp://cam-01.local/live",
		"grdi:",
		"  rows: 2",
		"",
	}, "\n"))

	if _, err := LoadFromPath(path); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}

func TestValidate_ReservedSlotOutsideGrid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Streams = []string{"rtsp://cam-01.local/live"}
	cfg.Grid.Reserved = []Slot{{Row: 5, Col: 0}}

	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected error for reserved slot outside grid")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if verr.Path != "grid.reserved[0]" {
		t.Fatalf("expected path grid.reserved[0], got %q", verr.Path)
	}
}

func TestValidate_TitlePairingRequiresPlaceholder(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Streams = []string{"rtsp://cam-01.local/live"}
	cfg.Pairing = PairingTitle

	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error: title pairing without {{title}} in viewer.args")
	}

	cfg.Viewer.Args = []string{"--video-title={{title}}", "{{uri}}"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestValidate_OrderPairingRequiresWindowClass(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Streams = []string{"rtsp://cam-01.local/live"}
	cfg.Pairing = PairingOrder
	cfg.Viewer.WindowClass = ""

	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error: order pairing without viewer.window_class")
	}
}

func TestValidate_InvalidGridRejected(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "zero rows", mutate: func(c *Config) { c.Grid.Rows = 0 }},
		{name: "negative cols", mutate: func(c *Config) { c.Grid.Cols = -1 }},
		{name: "zero cell width", mutate: func(c *Config) { c.Grid.CellWidth = 0 }},
		{name: "negative overlap", mutate: func(c *Config) { c.Grid.OverlapPx = -1 }},
		{name: "blank stream", mutate: func(c *Config) { c.Streams = []string{"  "} }},
		{name: "bad pairing", mutate: func(c *Config) { c.Pairing = "guess" }},
		{name: "zero locate timeout", mutate: func(c *Config) { c.LocateTimeoutSeconds = 0 }},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "verbose" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Streams = []string{"rtsp://cam-01.local/live"}
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}
