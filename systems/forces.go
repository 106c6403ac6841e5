package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// ForceParams holds the two force rules' constants.
type ForceParams struct {
	RepelRadius float64 // Pointer distance at which repulsion falls to zero
	RepelSpeed  float64 // Displacement per frame at zero distance
	ReturnSpeed float64 // Fraction of home distance closed per frame
}

// repelDirection is used when the pointer sits exactly on the particle.
// It matches atan2(0, 0) == 0.
var repelDirection = r2.Vec{X: 1, Y: 0}

// Repel pushes pos directly away from pointer. Force falls off linearly from
// RepelSpeed at zero distance to nothing at RepelRadius. frames scales the
// displacement; 1 is one reference frame.
func Repel(pos, pointer r2.Vec, p ForceParams, frames float64) r2.Vec {
	d := r2.Sub(pointer, pos)
	dist := r2.Norm(d)
	if !(dist < p.RepelRadius) {
		return pos
	}

	dir := repelDirection
	if dist > 0 {
		dir = r2.Scale(1/dist, d)
	}

	force := (p.RepelRadius - dist) / p.RepelRadius
	return r2.Sub(pos, r2.Scale(force*p.RepelSpeed*frames, dir))
}

// Restore moves pos a fixed fraction of the way back to home.
// Over many frames this decays the offset exponentially.
func Restore(pos, home r2.Vec, p ForceParams, frames float64) r2.Vec {
	if pos == home {
		return pos
	}
	return r2.Add(pos, r2.Scale(springFraction(p.ReturnSpeed, frames), r2.Sub(home, pos)))
}

// Integrate applies repulsion then the home spring, in that order.
func Integrate(pos, home, pointer r2.Vec, p ForceParams, frames float64) r2.Vec {
	pos = Repel(pos, pointer, p, frames)
	return Restore(pos, home, p, frames)
}

// FrameScale converts elapsed wall time into reference frames.
// Frame-coupled mode always returns 1 so behaviour tracks the display rate.
func FrameScale(elapsed float64, timeScaled bool, referenceFPS float64) float64 {
	if !timeScaled || elapsed <= 0 || referenceFPS <= 0 {
		return 1
	}
	return elapsed * referenceFPS
}

// springFraction is the share of home distance closed over frames reference
// frames. frames == 1 returns returnSpeed exactly.
func springFraction(returnSpeed, frames float64) float64 {
	if frames == 1 {
		return returnSpeed
	}
	return 1 - math.Pow(1-returnSpeed, frames)
}
