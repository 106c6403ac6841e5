package systems

import (
	"errors"
	"fmt"
	"image"
	"math"

	"golang.org/x/image/draw"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/mosaic/components"
)

// SamplerOptions configures how an image is turned into particles.
type SamplerOptions struct {
	CellSize      int    // Grid cell side in surface pixels
	Interpolation string // nearest, bilinear, catmullrom (empty = bilinear)
}

// Sample is one particle's spawn data: where it rests and what colour it is.
type Sample struct {
	Home r2.Vec
	Tint components.Tint
}

// Layout describes where the image landed on the surface and how the grid was cut.
type Layout struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
	Rows    int
	Cols    int
}

// Count returns the number of particles the layout produces.
func (l Layout) Count() int {
	return l.Rows * l.Cols
}

// GridSize returns the particle grid dimensions for a surface.
// Partial cells round to the nearest whole cell.
func GridSize(surfaceW, surfaceH, cellSize int) (rows, cols int) {
	c := float64(cellSize)
	rows = int(math.Round(float64(surfaceH) / c))
	cols = int(math.Round(float64(surfaceW) / c))
	return rows, cols
}

// Fit returns the uniform scale and centring offset that letterbox an
// imgW x imgH image inside a surfaceW x surfaceH surface.
func Fit(imgW, imgH, surfaceW, surfaceH int) (scale, offsetX, offsetY float64) {
	scale = math.Min(float64(surfaceW)/float64(imgW), float64(surfaceH)/float64(imgH))
	offsetX = (float64(surfaceW) - float64(imgW)*scale) / 2
	offsetY = (float64(surfaceH) - float64(imgH)*scale) / 2
	return scale, offsetX, offsetY
}

// Rasterize draws img onto a transparent surface-sized buffer, scaled to fit
// and centred. Pixels outside the image footprint stay (0,0,0,0).
func Rasterize(img image.Image, surfaceW, surfaceH int, interpolation string) (*image.NRGBA, error) {
	if img == nil {
		return nil, errors.New("sampler: nil image")
	}
	sr := img.Bounds()
	if sr.Empty() {
		return nil, errors.New("sampler: image has no pixels")
	}
	if surfaceW <= 0 || surfaceH <= 0 {
		return nil, fmt.Errorf("sampler: invalid surface %dx%d", surfaceW, surfaceH)
	}

	scaler, err := interpolator(interpolation)
	if err != nil {
		return nil, err
	}

	scale, offX, offY := Fit(sr.Dx(), sr.Dy(), surfaceW, surfaceH)
	// The footprint snaps to whole pixels; half offsets round away from zero.
	dr := image.Rect(
		int(math.Round(offX)),
		int(math.Round(offY)),
		int(math.Round(offX+float64(sr.Dx())*scale)),
		int(math.Round(offY+float64(sr.Dy())*scale)),
	)

	dst := image.NewNRGBA(image.Rect(0, 0, surfaceW, surfaceH))
	if dr.Dx() == sr.Dx() && dr.Dy() == sr.Dy() {
		// 1:1 placement, copy pixels exactly
		draw.Draw(dst, dr, img, sr.Min, draw.Src)
	} else {
		scaler.Scale(dst, dr, img, sr, draw.Src, nil)
	}
	return dst, nil
}

// SampleImage converts img into a uniform grid of particle samples for a
// surfaceW x surfaceH drawing surface. Samples are emitted row-major; cells
// whose centre misses the image are emitted fully transparent.
func SampleImage(img image.Image, surfaceW, surfaceH int, opts SamplerOptions) ([]Sample, Layout, error) {
	if opts.CellSize < 1 {
		return nil, Layout{}, fmt.Errorf("sampler: cell size must be >= 1, got %d", opts.CellSize)
	}

	buf, err := Rasterize(img, surfaceW, surfaceH, opts.Interpolation)
	if err != nil {
		return nil, Layout{}, err
	}

	b := img.Bounds()
	var layout Layout
	layout.Scale, layout.OffsetX, layout.OffsetY = Fit(b.Dx(), b.Dy(), surfaceW, surfaceH)
	layout.Rows, layout.Cols = GridSize(surfaceW, surfaceH, opts.CellSize)

	cell := float64(opts.CellSize)
	samples := make([]Sample, 0, layout.Count())
	for row := 0; row < layout.Rows; row++ {
		y := math.Floor(float64(row)*cell + cell/2)
		for col := 0; col < layout.Cols; col++ {
			x := math.Floor(float64(col)*cell + cell/2)

			// NRGBAAt returns the zero colour outside the buffer
			c := buf.NRGBAAt(int(x), int(y))
			samples = append(samples, Sample{
				Home: r2.Vec{X: x, Y: y},
				Tint: components.Tint{
					R: float32(c.R) / 255,
					G: float32(c.G) / 255,
					B: float32(c.B) / 255,
					A: float32(c.A) / 255,
				},
			})
		}
	}

	return samples, layout, nil
}

func interpolator(name string) (draw.Scaler, error) {
	switch name {
	case "", "bilinear":
		return draw.BiLinear, nil
	case "nearest":
		return draw.NearestNeighbor, nil
	case "catmullrom":
		return draw.CatmullRom, nil
	default:
		return nil, fmt.Errorf("sampler: unknown interpolation %q", name)
	}
}
