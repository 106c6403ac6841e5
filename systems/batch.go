package systems

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/mosaic/components"
)

// Batch is a frame's draw data in flat arrays: two floats of position and
// four floats of colour per particle.
type Batch struct {
	Positions []float32 // x, y
	Colors    []float32 // r, g, b, a in [0,1]
	Radius    float32
}

// Len returns the number of particles in the batch.
func (b *Batch) Len() int {
	return len(b.Positions) / 2
}

// Reset empties the batch, growing capacity for n particles if needed.
func (b *Batch) Reset(n int) {
	if cap(b.Positions) < n*2 {
		b.Positions = make([]float32, 0, n*2)
	}
	if cap(b.Colors) < n*4 {
		b.Colors = make([]float32, 0, n*4)
	}
	b.Positions = b.Positions[:0]
	b.Colors = b.Colors[:0]
}

// Append adds one particle.
func (b *Batch) Append(pos r2.Vec, t components.Tint) {
	b.Positions = append(b.Positions, float32(pos.X), float32(pos.Y))
	b.Colors = append(b.Colors, t.R, t.G, t.B, t.A)
}

// At returns particle i's position and colour.
func (b *Batch) At(i int) (x, y float32, t components.Tint) {
	p := b.Positions[i*2 : i*2+2]
	c := b.Colors[i*4 : i*4+4]
	return p[0], p[1], components.Tint{R: c[0], G: c[1], B: c[2], A: c[3]}
}
