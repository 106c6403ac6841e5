package systems

import (
	"math"
	"sync/atomic"

	"gonum.org/v1/gonum/spatial/r2"
)

// Pointer is a single-slot pointer position shared between an input source
// and the frame loop. The zero value reports the origin.
type Pointer struct {
	slot atomic.Pointer[r2.Vec]
}

// Away is the position stored when the pointer leaves the surface.
// Its distance to any particle is infinite, so no repulsion applies.
var Away = r2.Vec{X: math.Inf(1), Y: math.Inf(1)}

// Set records a pointer position in surface pixels.
func (p *Pointer) Set(x, y float64) {
	p.slot.Store(&r2.Vec{X: x, Y: y})
}

// Leave marks the pointer as off the surface.
func (p *Pointer) Leave() {
	v := Away
	p.slot.Store(&v)
}

// Load returns the latest pointer position.
func (p *Pointer) Load() r2.Vec {
	v := p.slot.Load()
	if v == nil {
		return r2.Vec{}
	}
	return *v
}

// Present reports whether the pointer is over the surface.
func (p *Pointer) Present() bool {
	v := p.Load()
	return !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}
