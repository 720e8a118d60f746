package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/terraform-industry/gen3-test/internal/config"
	"github.com/terraform-industry/gen3-test/internal/grid"
	"github.com/terraform-industry/gen3-test/internal/platform"
	"github.com/terraform-industry/gen3-test/internal/viewer"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "run":
		os.Exit(runRun(os.Args[2:]))
	case "layout":
		os.Exit(runLayout(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: camgrid <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  run                 Launch stream viewers and arrange them on the grid")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  layout print        Print the computed grid cells")
	fmt.Fprintln(w, "  layout monitors     List monitors and their bounds")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'camgrid <command> --help' for command-specific options.")
}

func runRun(args []string) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: camgrid run [--config PATH]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Launch one viewer per configured stream, wait for their windows")
		fmt.Fprintln(os.Stderr, "and move each one into its grid cell. Per-stream failures are")
		fmt.Fprintln(os.Stderr, "logged and never abort the batch; re-run to recover.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	configPath := fs.String("config", "", "Config file path (default: ~/.config/camgrid/config.yaml)")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "run takes no arguments")
		fs.Usage()
		return 2
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Printf("Failed to load configuration: %v", err)
		return 1
	}

	backend, err := platform.NewLinuxBackendFromDisplay()
	if err != nil {
		log.Printf("Failed to connect to display: %v", err)
		return 1
	}
	defer backend.Disconnect()

	params := grid.FromConfig(cfg.Grid)
	if cfg.Grid.Monitor != "" {
		if err := applyMonitorOffsets(backend, cfg.Grid.Monitor, &params); err != nil {
			log.Printf("Failed to resolve monitor %q: %v", cfg.Grid.Monitor, err)
			return 1
		}
	}
	cells := grid.Compute(params)

	mgr := viewer.NewManager(backend, cfg, newLogger(cfg.LogLevel))

	log.Printf("Launching %d streams...", len(cfg.Streams))
	launched := mgr.LaunchAll(viewer.Streams(cfg.Streams))

	located := mgr.LocateWindows(launched)
	log.Printf("Arranging %d windows...", located)

	placed := mgr.PlaceAll(launched, cells)
	log.Printf("Done: %d of %d streams placed", placed, len(cfg.Streams))

	// Per-stream failures were logged above; a completed batch is success.
	return 0
}

func runLayout(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  camgrid layout print [--config PATH] [--json]")
		fmt.Fprintln(os.Stderr, "  camgrid layout monitors")
		return 2
	}

	switch args[0] {
	case "print":
		fs := flag.NewFlagSet("print", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		configPath := fs.String("config", "", "Config file path (default: ~/.config/camgrid/config.yaml)")
		jsonOut := fs.Bool("json", false, "Output cells as JSON")
		if err := fs.Parse(args[1:]); err != nil {
			if err == flag.ErrHelp {
				return 0
			}
			return 2
		}

		cfg, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}

		params := grid.FromConfig(cfg.Grid)
		if cfg.Grid.Monitor != "" {
			backend, err := platform.NewLinuxBackendFromDisplay()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 1
			}
			defer backend.Disconnect()
			if err := applyMonitorOffsets(backend, cfg.Grid.Monitor, &params); err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 1
			}
		}
		cells := grid.Compute(params)

		if *jsonOut {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(cellsJSON(cells)); err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 1
			}
			return 0
		}

		fmt.Printf("grid: %dx%d, %d cells (%d reserved)\n",
			cfg.Grid.Rows, cfg.Grid.Cols, len(cells), cfg.Grid.Rows*cfg.Grid.Cols-len(cells))
		for _, c := range cells {
			fmt.Printf("  (%d,%d)  %dx%d at %d,%d\n", c.Row, c.Col, c.Width, c.Height, c.X, c.Y)
		}
		return 0

	case "monitors":
		backend, err := platform.NewLinuxBackendFromDisplay()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		defer backend.Disconnect()

		displays, err := backend.Displays()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		for _, d := range displays {
			fmt.Printf("%-12s %dx%d at %d,%d\n", d.Name, d.Bounds.Width, d.Bounds.Height, d.Bounds.X, d.Bounds.Y)
		}
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown layout command: %s\n", args[0])
		return 2
	}
}

func runConfig(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  camgrid config validate [--path PATH]")
		fmt.Fprintln(os.Stderr, "  camgrid config print [--path PATH] [--defaults]")
		return 2
	}

	switch args[0] {
	case "validate":
		fs := flag.NewFlagSet("validate", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/camgrid/config.yaml)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		if _, err := loadConfig(*path); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println("config: ok")
		return 0

	case "print":
		fs := flag.NewFlagSet("print", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/camgrid/config.yaml)")
		printDefaults := fs.Bool("defaults", false, "Print built-in defaults (no files)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		var cfg *config.Config
		if *printDefaults {
			cfg = config.DefaultConfig()
		} else {
			var err error
			cfg, err = loadConfig(*path)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 1
			}
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Print(string(data))
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown config subcommand: %s\n", args[0])
		return 2
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFromPath(path)
}

// applyMonitorOffsets overrides the grid offsets with the named monitor's
// origin.
func applyMonitorOffsets(backend platform.Backend, name string, params *grid.Params) error {
	displays, err := backend.Displays()
	if err != nil {
		return err
	}
	for _, d := range displays {
		if d.Name == name {
			params.OffsetX = d.Bounds.X
			params.OffsetY = d.Bounds.Y
			return nil
		}
	}
	return fmt.Errorf("monitor %q not found", name)
}

func newLogger(level string) *slog.Logger {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warning":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}

type cellJSON struct {
	Row    int `json:"row"`
	Col    int `json:"col"`
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

func cellsJSON(cells []grid.Cell) []cellJSON {
	out := make([]cellJSON, 0, len(cells))
	for _, c := range cells {
		out = append(out, cellJSON{Row: c.Row, Col: c.Col, X: c.X, Y: c.Y, Width: c.Width, Height: c.Height})
	}
	return out
}
