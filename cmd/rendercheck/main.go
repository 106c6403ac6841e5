// Render check tool - draws one settled frame with a GPU strategy and with
// the CPU rasteriser, writing both as PNGs for side-by-side comparison.
//
// Usage: go run ./cmd/rendercheck -config config.yaml -image photo.png -strategy sprites -out check
package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/mosaic/config"
	"github.com/pthm-cable/mosaic/raster"
	"github.com/pthm-cable/mosaic/renderer"
	"github.com/pthm-cable/mosaic/sim"
	"github.com/pthm-cable/mosaic/systems"
)

type batchRenderer interface {
	DrawBatch(b *systems.Batch)
	Unload()
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	imagePath := flag.String("image", "", "Image to sample (empty = test card)")
	strategy := flag.String("strategy", "sprites", "GPU strategy: circles or sprites")
	outDir := flag.String("out", ".", "Output directory")
	width := flag.Int("width", 512, "Render width")
	height := flag.Int("height", 512, "Render height")
	cellSize := flag.Int("cell", 8, "Grid cell size")
	flag.Parse()

	config.MustInit(*configPath)
	bg := sim.BackgroundColor()
	rlBg := rl.NewColor(bg.R, bg.G, bg.B, bg.A)

	samples, err := sample(*imagePath, *width, *height, *cellSize, config.Cfg().Sampler.Interpolation)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to sample image: %v\n", err)
		os.Exit(1)
	}
	field := systems.NewField(samples, float32(*cellSize)/2)
	var batch systems.Batch
	field.Pack(&batch)

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create output dir: %v\n", err)
		os.Exit(1)
	}

	// CPU reference
	cpu := raster.NewImageRenderer(*width, *height, bg)
	cpu.DrawBatch(&batch)
	cpuPath := filepath.Join(*outDir, "cpu.png")
	if err := cpu.WritePNG(cpuPath); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", cpuPath, err)
		os.Exit(1)
	}

	// Initialize raylib with hidden window
	rl.SetConfigFlags(rl.FlagWindowHidden)
	rl.InitWindow(int32(*width), int32(*height), "Render Check")
	if !rl.IsWindowReady() {
		fmt.Fprintln(os.Stderr, "Failed to create graphics context")
		os.Exit(1)
	}
	defer rl.CloseWindow()

	var gpu batchRenderer
	switch *strategy {
	case "circles":
		gpu = renderer.NewCircleRenderer(rlBg)
	case "sprites":
		gpu, err = renderer.NewSpriteRenderer(rlBg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load renderer: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown strategy %q\n", *strategy)
		os.Exit(1)
	}
	defer gpu.Unload()

	target := rl.LoadRenderTexture(int32(*width), int32(*height))
	defer rl.UnloadRenderTexture(target)

	rl.BeginTextureMode(target)
	gpu.DrawBatch(&batch)
	rl.EndTextureMode()

	// Get image from texture and flip it (OpenGL convention)
	img := rl.LoadImageFromTexture(target.Texture)
	rl.ImageFlipVertical(img)

	gpuPath := filepath.Join(*outDir, *strategy+".png")
	success := rl.ExportImage(*img, gpuPath)
	rl.UnloadImage(img)

	if !success {
		fmt.Fprintf(os.Stderr, "Failed to export %s\n", gpuPath)
		os.Exit(1)
	}
	fmt.Printf("Rendered %d particles to %s and %s (%dx%d)\n", field.Len(), cpuPath, gpuPath, *width, *height)
}

func sample(path string, w, h, cell int, interpolation string) ([]systems.Sample, error) {
	var src image.Image = systems.TestCard(w, h)
	if path != "" {
		img, err := systems.LoadImage(path)
		if err != nil {
			return nil, err
		}
		src = img
	}
	samples, _, err := systems.SampleImage(src, w, h, systems.SamplerOptions{
		CellSize:      cell,
		Interpolation: interpolation,
	})
	return samples, err
}
