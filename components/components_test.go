package components

import "testing"

func TestTintRGBA8(t *testing.T) {
	tests := []struct {
		name       string
		tint       Tint
		r, g, b, a uint8
	}{
		{"opaque red", Tint{1, 0, 0, 1}, 255, 0, 0, 255},
		{"transparent", Tint{}, 0, 0, 0, 0},
		{"mid grey", Tint{0.5, 0.5, 0.5, 0.5}, 128, 128, 128, 128},
		{"out of range clamps", Tint{-1, 2, 0, 1}, 0, 255, 0, 255},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b, a := tt.tint.RGBA8()
			if r != tt.r || g != tt.g || b != tt.b || a != tt.a {
				t.Errorf("RGBA8() = (%d,%d,%d,%d), want (%d,%d,%d,%d)", r, g, b, a, tt.r, tt.g, tt.b, tt.a)
			}
		})
	}
}

func TestTintTransparent(t *testing.T) {
	if !(Tint{R: 1}).Transparent() {
		t.Error("zero alpha tint should be transparent")
	}
	if (Tint{A: 0.01}).Transparent() {
		t.Error("non-zero alpha tint should not be transparent")
	}
}
