package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/mosaic/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title     string
	Particles int
	Rows      int
	Cols      int
	Frame     int64
	FPS       int32
	Zoom      float32
	Paused    bool
	Pointer   bool // pointer is over the surface
	Strategy  string
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	h.renderer.DrawPanel(5, 5, 330, 82)

	rl.DrawText(data.Title, 12, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Particles: %d (%dx%d) | %s", data.Particles, data.Cols, data.Rows, data.Strategy),
		12, 35, 14, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Frame: %d | FPS: %d | Zoom: %.1fx", data.Frame, data.FPS, data.Zoom),
		12, 52, 14, rl.LightGray,
	)

	status := "Running"
	if data.Paused {
		status = "PAUSED"
	}
	if !data.Pointer {
		status += " | pointer away"
	}
	rl.DrawText(status, 12, 69, 14, rl.Yellow)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders frame phase timings.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y, width int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel and returns its bottom edge.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) int32 {
	r := p.renderer
	pad := r.Theme.Padding
	height := pad*2 + r.Theme.LineHeight*4 + (r.Theme.LineHeight+2)*int32(len(telemetry.Phases)+1)
	r.DrawPanel(p.x, p.y, p.width, height)

	x, y := p.x+pad, p.y+pad
	inner := p.width - pad*2

	y = r.DrawSectionHeader(x, y, "Frame")
	y = r.DrawLabelValue(x, y, "avg", stats.AvgFrame.Round(time.Microsecond).String())
	y = r.DrawLabelValue(x, y, "p95", stats.P95Frame.Round(time.Microsecond).String())
	y = r.DrawLabelValue(x, y, "max", stats.MaxFrame.Round(time.Microsecond).String())

	for _, phase := range telemetry.Phases {
		y = r.DrawBar(x, y, phase, stats.PhasePct[phase], inner)
	}

	return p.y + height
}
