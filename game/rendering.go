package game

import (
	"fmt"
	"image/color"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/mosaic/renderer"
	"github.com/pthm-cable/mosaic/sim"
	"github.com/pthm-cable/mosaic/ui"
)

// Renderer is a GPU drawer that owns resources freed on exit.
type Renderer interface {
	sim.Drawer
	Unload()
}

const controlsLegend = "[Space] pause  [R] reset  [H] hud  [Wheel/+/-] zoom  [Arrows] pan  [Home] fit  [F11] fullscreen"

// newRenderer builds the raylib renderer for a strategy.
func newRenderer(strategy string, bg color.RGBA) (Renderer, error) {
	rlBg := rl.NewColor(bg.R, bg.G, bg.B, bg.A)
	switch strategy {
	case "circles":
		return renderer.NewCircleRenderer(rlBg), nil
	case "sprites":
		return renderer.NewSpriteRenderer(rlBg)
	default:
		return nil, fmt.Errorf("unknown strategy %q", strategy)
	}
}

// Draw renders the particles and, when shown, the HUD.
func (g *Game) Draw() {
	rl.BeginDrawing()

	rl.BeginMode2D(rl.Camera2D{
		Offset: rl.NewVector2(g.screenW/2, g.screenH/2),
		Target: rl.NewVector2(g.camera.X, g.camera.Y),
		Zoom:   g.camera.Scale(),
	})
	g.sim.Draw(g.renderer)
	rl.EndMode2D()

	if g.showHUD {
		g.drawUI()
	}

	rl.EndDrawing()
}

// drawUI renders the HUD panels and applies live force edits.
func (g *Game) drawUI() {
	layout := g.sim.Layout()
	g.hud.Draw(ui.HUDData{
		Title:     "Mosaic",
		Particles: g.sim.Field().Len(),
		Rows:      layout.Rows,
		Cols:      layout.Cols,
		Frame:     g.sim.Frame(),
		FPS:       rl.GetFPS(),
		Zoom:      g.camera.Zoom,
		Paused:    g.sim.Paused(),
		Pointer:   g.sim.Pointer().Present(),
		Strategy:  g.strategy,
	})

	g.perfPanel.Draw(g.sim.Perf().Stats())

	params, timeScaled := g.sim.Tuning()
	if g.tuning.Draw(params, timeScaled) {
		slog.Debug("forces tuned",
			"repel_radius", params.RepelRadius,
			"repel_speed", params.RepelSpeed,
			"return_speed", params.ReturnSpeed,
			"time_scaled", *timeScaled,
		)
	}

	g.hud.DrawControls(int32(g.screenH), controlsLegend)
}
