package systems

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

var defaultForces = ForceParams{RepelRadius: 100, RepelSpeed: 10, ReturnSpeed: 0.1}

func TestIntegrate_FixedPoint(t *testing.T) {
	home := r2.Vec{X: 37, Y: 12}

	got := Integrate(home, home, Away, defaultForces, 1)
	if got != home {
		t.Errorf("particle at home with pointer away moved to %v", got)
	}
}

// TestRestore_Convergence checks distance after n frames is d0*(1-k)^n,
// decreasing every frame.
func TestRestore_Convergence(t *testing.T) {
	home := r2.Vec{X: 50, Y: 50}
	pos := r2.Vec{X: 80, Y: 10}
	d0 := r2.Norm(r2.Sub(home, pos))

	prev := d0
	for n := 1; n <= 60; n++ {
		pos = Integrate(pos, home, Away, defaultForces, 1)
		d := r2.Norm(r2.Sub(home, pos))

		want := d0 * math.Pow(1-defaultForces.ReturnSpeed, float64(n))
		if math.Abs(d-want) > 1e-9*d0 {
			t.Fatalf("frame %d: distance %v, want %v", n, d, want)
		}
		if d >= prev {
			t.Fatalf("frame %d: distance %v did not decrease from %v", n, d, prev)
		}
		prev = d
	}
}

func TestRepel_Boundary(t *testing.T) {
	pos := r2.Vec{X: 0, Y: 0}

	tests := []struct {
		name    string
		pointer r2.Vec
		moved   bool
	}{
		{"exactly at radius", r2.Vec{X: 100, Y: 0}, false},
		{"beyond radius", r2.Vec{X: 70, Y: 80}, false},
		{"just inside radius", r2.Vec{X: 99.9, Y: 0}, true},
		{"pointer away", Away, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Repel(pos, tt.pointer, defaultForces, 1)
			if moved := got != pos; moved != tt.moved {
				t.Errorf("Repel moved=%v (to %v), want moved=%v", moved, got, tt.moved)
			}
		})
	}
}

func TestRepel_MagnitudeFalloff(t *testing.T) {
	pos := r2.Vec{X: 200, Y: 200}

	tests := []struct {
		dist float64
		want float64
	}{
		{1e-9, 10},
		{25, 7.5},
		{50, 5},
		{75, 2.5},
	}

	for _, tt := range tests {
		// Pointer below the particle: push is straight up (-y)
		pointer := r2.Vec{X: 200, Y: 200 + tt.dist}
		got := Repel(pos, pointer, defaultForces, 1)
		disp := r2.Sub(got, pos)

		if math.Abs(r2.Norm(disp)-tt.want) > 1e-6 {
			t.Errorf("dist %v: displacement %v, want %v", tt.dist, r2.Norm(disp), tt.want)
		}
		if disp.Y >= 0 || math.Abs(disp.X) > 1e-12 {
			t.Errorf("dist %v: displacement %v not directly away from pointer", tt.dist, disp)
		}
	}
}

// TestRepel_ZeroDistance documents the tie-break: with the pointer exactly on
// the particle the push direction is the +x unit vector, so the particle moves
// RepelSpeed along the x axis toward -x.
func TestRepel_ZeroDistance(t *testing.T) {
	home := r2.Vec{X: 2, Y: 2}

	got := Repel(home, home, defaultForces, 1)
	want := r2.Vec{X: 2 - defaultForces.RepelSpeed, Y: 2}
	if got != want {
		t.Errorf("Repel at zero distance = %v, want %v", got, want)
	}

	// Full frame: spring then closes 10% of the 10px offset
	got = Integrate(home, home, home, defaultForces, 1)
	want = r2.Vec{X: -7, Y: 2}
	if math.Abs(got.X-want.X) > 1e-12 || got.Y != want.Y {
		t.Errorf("Integrate at zero distance = %v, want %v", got, want)
	}
}

// TestIntegrate_Order verifies the spring acts on the post-repulsion position.
func TestIntegrate_Order(t *testing.T) {
	home := r2.Vec{X: 0, Y: 0}
	pointer := r2.Vec{X: 50, Y: 0}

	repelled := Repel(home, pointer, defaultForces, 1)
	want := Restore(repelled, home, defaultForces, 1)
	got := Integrate(home, home, pointer, defaultForces, 1)

	if got != want {
		t.Errorf("Integrate = %v, want repel-then-restore %v", got, want)
	}
	if got.X != -4.5 {
		t.Errorf("Integrate x = %v, want -4.5", got.X)
	}
}

func TestFrameScale(t *testing.T) {
	tests := []struct {
		name       string
		elapsed    float64
		timeScaled bool
		fps        float64
		want       float64
	}{
		{"frame coupled ignores elapsed", 0.1, false, 60, 1},
		{"one reference frame", 1.0 / 60, true, 60, 1},
		{"half-rate display", 1.0 / 30, true, 60, 2},
		{"zero elapsed falls back", 0, true, 60, 1},
		{"bad reference fps falls back", 0.016, true, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FrameScale(tt.elapsed, tt.timeScaled, tt.fps)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("FrameScale = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestRestore_TimeScaledMatchesFrames checks that one step covering two
// reference frames equals two single-frame steps.
func TestRestore_TimeScaledMatchesFrames(t *testing.T) {
	home := r2.Vec{}
	start := r2.Vec{X: 40, Y: -30}

	twice := Restore(Restore(start, home, defaultForces, 1), home, defaultForces, 1)
	once := Restore(start, home, defaultForces, 2)

	if r2.Norm(r2.Sub(twice, once)) > 1e-9 {
		t.Errorf("two frames %v != one double frame %v", twice, once)
	}
}
