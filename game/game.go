// Package game drives the particle field in a raylib window.
package game

import (
	"fmt"
	"log/slog"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/mosaic/camera"
	"github.com/pthm-cable/mosaic/config"
	"github.com/pthm-cable/mosaic/sim"
	"github.com/pthm-cable/mosaic/ui"
)

// Game holds the windowed run state.
type Game struct {
	sim      *sim.Simulation
	camera   *camera.Camera
	renderer Renderer
	strategy string

	// UI
	hud       *ui.HUD
	perfPanel *ui.PerfPanel
	tuning    *ui.TuningPanel
	showHUD   bool

	screenW, screenH float32
}

// NewGameWithOptions samples the image and sets up rendering. The raylib
// window must already be open.
func NewGameWithOptions(opts sim.Options) (*Game, error) {
	cfg := config.Cfg()

	// Render size is the window in physical pixels; it exceeds the screen
	// size on high-DPI displays.
	screenW, screenH := float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight())
	surfaceW, surfaceH := int(rl.GetRenderWidth()), int(rl.GetRenderHeight())
	if !cfg.Screen.HighDPI || surfaceW <= 0 || surfaceH <= 0 {
		surfaceW, surfaceH = int(screenW), int(screenH)
	}

	img, err := sim.LoadSource(opts.ImagePath, surfaceW, surfaceH)
	if err != nil {
		return nil, err
	}

	s, err := sim.New(img, sim.WindowSpec(cfg, surfaceW, surfaceH), opts)
	if err != nil {
		return nil, err
	}

	strategy := cfg.Render.Strategy
	if opts.Strategy != "" {
		strategy = opts.Strategy
	}
	r, err := newRenderer(strategy, sim.BackgroundColor())
	if err != nil {
		s.Finish()
		return nil, fmt.Errorf("renderer: %w", err)
	}
	slog.Info("renderer ready", "strategy", strategy)

	return &Game{
		sim:       s,
		camera:    camera.New(screenW, screenH, float32(surfaceW), float32(surfaceH)),
		renderer:  r,
		strategy:  strategy,
		hud:       ui.NewHUD(),
		perfPanel: ui.NewPerfPanel(int32(screenW)-250, 5, 245),
		tuning:    ui.NewTuningPanel(5, 92, 330),
		showHUD:   true,
		screenW:   screenW,
		screenH:   screenH,
	}, nil
}

// Update handles input and advances the particles by one frame.
func (g *Game) Update() {
	g.handleInput()
	g.updatePointer()
	g.sim.Update(time.Now())
}

// updatePointer maps the mouse onto the surface. The pointer leaves when the
// cursor is off the window or outside the letterboxed surface.
func (g *Game) updatePointer() {
	mouse := rl.GetMousePosition()
	wx, wy := g.camera.ScreenToWorld(mouse.X, mouse.Y)
	g.sim.TrackPointer(rl.IsCursorOnScreen(), float64(wx), float64(wy))
}

// Frame returns the number of frames drawn.
func (g *Game) Frame() int64 {
	return g.sim.Frame()
}

// Unload writes final output and frees GPU resources.
func (g *Game) Unload() {
	g.sim.Finish()
	g.renderer.Unload()
}
