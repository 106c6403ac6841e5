package systems

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"

	"github.com/lucasb-eyer/go-colorful"
)

// LoadImage decodes a PNG, JPEG or GIF file.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sampler: open %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("sampler: decode %s: %w", path, err)
	}
	return img, nil
}

// TestCard generates a w x h image used when no source image is given:
// a hue sweep across x, darkening down y, with a white ring in the centre.
func TestCard(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	cx, cy := float64(w)/2, float64(h)/2
	ringR := math.Min(cx, cy) * 0.6
	ringW := math.Max(2, ringR*0.08)

	for y := 0; y < h; y++ {
		v := 1 - 0.6*float64(y)/float64(max(h-1, 1))
		for x := 0; x < w; x++ {
			c := colorful.Hsv(360*float64(x)/float64(max(w, 1)), 0.85, v)

			d := math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy)
			if math.Abs(d-ringR) < ringW {
				c = colorful.Color{R: 1, G: 1, B: 1}
			}

			r, g, b := c.Clamped().RGB255()
			img.SetNRGBA(x, y, color.NRGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img
}
