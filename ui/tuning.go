package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/mosaic/systems"
)

// Slider ranges for live tuning.
const (
	maxRepelRadius = 400
	maxRepelSpeed  = 50
)

// TuningPanel edits force parameters in place with raygui controls.
type TuningPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewTuningPanel creates a tuning panel at the given position.
func NewTuningPanel(x, y, width int32) *TuningPanel {
	return &TuningPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (t *TuningPanel) SetPosition(x, y int32) {
	t.x = x
	t.y = y
}

// Draw renders the controls and applies edits to params and timeScaled.
// Returns true if anything changed.
func (t *TuningPanel) Draw(params *systems.ForceParams, timeScaled *bool) bool {
	r := t.renderer
	pad := r.Theme.Padding
	r.DrawPanel(t.x, t.y, t.width, 190)

	x := float32(t.x + pad)
	y := t.y + pad
	sliderW := float32(t.width - pad*2 - 60)
	changed := false

	y = r.DrawSectionHeader(int32(x), y, "Forces")

	slider := func(label string, value *float64, lo, hi float32, format string) {
		rl.DrawText(label, int32(x), y, r.Theme.FontSize, r.Theme.LabelColor)
		y += r.Theme.LineHeight
		bounds := rl.Rectangle{X: x, Y: float32(y), Width: sliderW, Height: 16}
		next := gui.SliderBar(bounds, "", "", float32(*value), lo, hi)
		rl.DrawText(fmt.Sprintf(format, *value), int32(x+sliderW+8), y+2, r.Theme.FontSize, r.Theme.ValueColor)
		if float64(next) != *value {
			*value = float64(next)
			changed = true
		}
		y += 24
	}

	slider("Repel radius", &params.RepelRadius, 1, maxRepelRadius, "%.0f")
	slider("Repel speed", &params.RepelSpeed, 0, maxRepelSpeed, "%.1f")
	slider("Return speed", &params.ReturnSpeed, 0, 1, "%.3f")

	checked := gui.CheckBox(rl.Rectangle{X: x, Y: float32(y), Width: 16, Height: 16}, "Time scaled", *timeScaled)
	if checked != *timeScaled {
		*timeScaled = checked
		changed = true
	}

	return changed
}
