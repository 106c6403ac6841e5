package sim

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/mosaic/config"
	"github.com/pthm-cable/mosaic/raster"
)

// RunTerminal draws the field in the terminal with half-block cells until ctx
// is cancelled or the user presses Esc, q or Ctrl-C. Each cell is one surface
// pixel wide and two tall.
func RunTerminal(ctx context.Context, opts Options, maxFrames int64) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal: init: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.EnableFocus()
	screen.HideCursor()

	return runTerminal(ctx, screen, opts, maxFrames)
}

// runTerminal drives an initialised screen. The caller finalises it.
func runTerminal(ctx context.Context, screen tcell.Screen, opts Options, maxFrames int64) error {
	cfg := config.Cfg()

	w, h := raster.SurfaceSize(screen)
	img, err := LoadSource(opts.ImagePath, w, h)
	if err != nil {
		return err
	}

	sim, err := New(img, TerminalSpec(cfg, w, h), opts)
	if err != nil {
		return err
	}
	defer sim.Finish()
	sim.pointer.Leave()

	bg := BackgroundColor()
	r := raster.NewTerminalRenderer(screen, bg.R, bg.G, bg.B)

	ticker := time.NewTicker(time.Second / time.Duration(cfg.Terminal.FPS))
	defer ticker.Stop()

	done := make(chan struct{})
	defer close(done)

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return // screen finalised
			}
			select {
			case eventChan <- ev:
			case <-done:
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-eventChan:
			if !handleTerminalEvent(ev, sim, screen, r) {
				return nil
			}

		case now := <-ticker.C:
			sim.Update(now)
			sim.Draw(r)
			if maxFrames > 0 && sim.frame >= maxFrames {
				slog.Info("max frames reached", "frame", sim.frame)
				return nil
			}
		}
	}
}

// handleTerminalEvent applies one input event. Returns false to quit.
func handleTerminalEvent(ev tcell.Event, sim *Simulation, screen tcell.Screen, r *raster.TerminalRenderer) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				sim.TogglePause()
			case 'r':
				sim.Reset()
			}
		}

	case *tcell.EventMouse:
		col, row := ev.Position()
		x, y := cellToSurface(col, row)
		sim.pointer.Set(x, y)

	case *tcell.EventFocus:
		if !ev.Focused {
			sim.pointer.Leave()
		}

	case *tcell.EventResize:
		screen.Sync()
		r.Resize()
	}

	return true
}

// cellToSurface returns the surface point at the centre of a terminal cell.
func cellToSurface(col, row int) (x, y float64) {
	return float64(col) + 0.5, float64(row)*2 + 1
}
