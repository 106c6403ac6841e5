package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/mosaic/systems"
)

// CircleRenderer draws each particle as an immediate-mode circle.
type CircleRenderer struct {
	background rl.Color
}

// NewCircleRenderer creates a circle renderer that clears to bg each frame.
func NewCircleRenderer(bg rl.Color) *CircleRenderer {
	return &CircleRenderer{background: bg}
}

// DrawBatch clears the frame and draws every particle.
func (r *CircleRenderer) DrawBatch(b *systems.Batch) {
	rl.ClearBackground(r.background)

	radius := b.Radius
	if radius < 0.5 {
		radius = 0.5
	}

	for i := 0; i < b.Len(); i++ {
		x, y, tint := b.At(i)
		if tint.Transparent() {
			continue
		}
		r8, g8, b8, a8 := tint.RGBA8()
		rl.DrawCircleV(rl.NewVector2(x, y), radius, rl.NewColor(r8, g8, b8, a8))
	}
}

// Unload is a no-op; circles hold no GPU resources.
func (r *CircleRenderer) Unload() {}
