// Package components defines ECS components for the particle field.
package components

import "gonum.org/v1/gonum/spatial/r2"

// Position is a particle's current location in surface pixels.
type Position r2.Vec

// Home is the rest location a particle springs back to. Set once at spawn.
type Home r2.Vec

// Vec returns the position as a gonum vector.
func (p Position) Vec() r2.Vec { return r2.Vec(p) }

// Vec returns the home position as a gonum vector.
func (h Home) Vec() r2.Vec { return r2.Vec(h) }

// Tint is a particle's straight-alpha colour with channels in [0,1].
type Tint struct {
	R, G, B, A float32
}

// Transparent reports whether the particle contributes nothing when drawn.
func (t Tint) Transparent() bool {
	return t.A == 0
}

// RGBA8 converts the tint to 8-bit channels, rounding to nearest.
func (t Tint) RGBA8() (r, g, b, a uint8) {
	return unit8(t.R), unit8(t.G), unit8(t.B), unit8(t.A)
}

func unit8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
