package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/mosaic/config"
	"github.com/pthm-cable/mosaic/game"
	"github.com/pthm-cable/mosaic/sim"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	imagePath := flag.String("image", "", "Image to sample (empty = built-in test card)")
	headless := flag.Bool("headless", false, "Run without graphics, rasterising frames on the CPU")
	terminal := flag.Bool("terminal", false, "Draw in the terminal with half-block cells")
	maxFrames := flag.Int64("max-frames", 0, "Stop after N frames (0 = unlimited)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs, snapshots and config")
	logStats := flag.Bool("log-stats", false, "Output perf stats via slog")
	strategy := flag.String("strategy", "", "Render strategy: circles or sprites (empty = use config)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging). The terminal
	// renderer owns the tty, so logs go to a file there.
	logOut := io.Writer(os.Stdout)
	if *terminal {
		logOut = io.Discard
		if *outputDir != "" {
			if err := os.MkdirAll(*outputDir, 0755); err == nil {
				if f, err := os.Create(filepath.Join(*outputDir, "mosaic.log")); err == nil {
					defer f.Close()
					logOut = f
				}
			}
		}
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(logOut, nil)))

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	opts := sim.Options{
		ImagePath: *imagePath,
		Strategy:  *strategy,
		LogStats:  *logStats,
		OutputDir: *outputDir,
	}

	switch {
	case *headless:
		runHeadless(opts, *maxFrames)

	case *terminal:
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := sim.RunTerminal(ctx, opts, *maxFrames); err != nil {
			slog.Error("terminal run failed", "error", err)
			fmt.Fprintln(os.Stderr, "mosaic:", err)
			os.Exit(1)
		}

	default:
		if cfg.Screen.HighDPI {
			rl.SetConfigFlags(rl.FlagWindowHighdpi | rl.FlagWindowResizable)
		} else {
			rl.SetConfigFlags(rl.FlagWindowResizable)
		}
		rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
		if !rl.IsWindowReady() {
			slog.Error("failed to open window: no graphics context")
			os.Exit(1)
		}
		defer rl.CloseWindow()

		rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

		g, err := game.NewGameWithOptions(opts)
		if err != nil {
			slog.Error("failed to start", "error", err)
			rl.CloseWindow()
			os.Exit(1)
		}
		defer g.Unload()

		for !rl.WindowShouldClose() {
			g.Update()
			g.Draw()

			if *maxFrames > 0 && g.Frame() >= *maxFrames {
				slog.Info("max frames reached", "frame", g.Frame())
				break
			}
		}
	}
}

// runHeadless steps the CPU pipeline. Without -max-frames it runs one orbit.
func runHeadless(opts sim.Options, maxFrames int64) {
	h, err := sim.NewHeadless(opts)
	if err != nil {
		slog.Error("failed to start headless run", "error", err)
		os.Exit(1)
	}
	defer h.Close()

	if maxFrames <= 0 {
		maxFrames = int64(config.Cfg().Headless.OrbitPeriodFrames)
	}

	slog.Info("starting headless run", "max_frames", maxFrames, "output_dir", opts.OutputDir)

	for h.Frame() < maxFrames {
		h.Step()
	}
	slog.Info("max frames reached", "frame", h.Frame())
}
