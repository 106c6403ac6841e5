package systems

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/mosaic/components"
)

// Particle is a copy of one particle's state, used for inspection and export.
type Particle struct {
	Position r2.Vec
	Home     r2.Vec
	Tint     components.Tint
}

// Field owns the particle set. Particles are ECS entities with a Position,
// Home and Tint. The set is created once and never grows or shrinks, so
// queries always visit particles in spawn order.
type Field struct {
	world  *ecs.World
	mapper *ecs.Map3[components.Position, components.Home, components.Tint]
	filter *ecs.Filter3[components.Position, components.Home, components.Tint]
	count  int
	radius float32
}

// NewField spawns one particle per sample. radius is the drawn disk radius.
func NewField(samples []Sample, radius float32) *Field {
	world := ecs.NewWorld()

	f := &Field{
		world:  world,
		mapper: ecs.NewMap3[components.Position, components.Home, components.Tint](world),
		filter: ecs.NewFilter3[components.Position, components.Home, components.Tint](world),
		radius: radius,
	}

	for i := range samples {
		s := &samples[i]
		pos := components.Position(s.Home)
		home := components.Home(s.Home)
		tint := s.Tint
		f.mapper.NewEntity(&pos, &home, &tint)
	}
	f.count = len(samples)

	return f
}

// Len returns the number of particles.
func (f *Field) Len() int {
	return f.count
}

// Radius returns the drawn disk radius.
func (f *Field) Radius() float32 {
	return f.radius
}

// Step advances every particle by one frame against a fixed pointer position.
// frames is the number of reference frames the step covers (1 when frame-coupled).
func (f *Field) Step(pointer r2.Vec, p ForceParams, frames float64) {
	query := f.filter.Query()
	for query.Next() {
		pos, home, _ := query.Get()
		*pos = components.Position(Integrate(pos.Vec(), home.Vec(), pointer, p, frames))
	}
}

// Reset snaps every particle back to its home position.
func (f *Field) Reset() {
	query := f.filter.Query()
	for query.Next() {
		pos, home, _ := query.Get()
		*pos = components.Position(*home)
	}
}

// Pack fills b with the current positions and colours in spawn order.
func (f *Field) Pack(b *Batch) {
	b.Reset(f.count)
	b.Radius = f.radius

	query := f.filter.Query()
	for query.Next() {
		pos, _, tint := query.Get()
		b.Append(pos.Vec(), *tint)
	}
}

// Particles returns a snapshot of every particle in spawn order.
func (f *Field) Particles() []Particle {
	out := make([]Particle, 0, f.count)
	query := f.filter.Query()
	for query.Next() {
		pos, home, tint := query.Get()
		out = append(out, Particle{Position: pos.Vec(), Home: home.Vec(), Tint: *tint})
	}
	return out
}

// MeanDisplacement returns the average distance of particles from home.
func (f *Field) MeanDisplacement() float64 {
	if f.count == 0 {
		return 0
	}
	var sum float64
	query := f.filter.Query()
	for query.Next() {
		pos, home, _ := query.Get()
		sum += r2.Norm(r2.Sub(home.Vec(), pos.Vec()))
	}
	return sum / float64(f.count)
}
