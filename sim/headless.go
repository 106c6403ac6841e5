package sim

import (
	"image"
	"log/slog"
	"math"
	"time"

	"github.com/pthm-cable/mosaic/config"
	"github.com/pthm-cable/mosaic/raster"
)

// Headless runs the field without a window. A scripted pointer orbits the
// surface centre and frames are rasterised on the CPU.
type Headless struct {
	sim      *Simulation
	renderer *raster.ImageRenderer

	centreX, centreY float64
	orbitRadius      float64
	orbitPeriod      int
	snapshotEvery    int64

	// Synthetic clock: each frame advances exactly one reference frame, so
	// time-scaled runs are reproducible.
	clock     time.Time
	frameStep time.Duration
}

// NewHeadless samples the image at the configured headless surface size.
func NewHeadless(opts Options) (*Headless, error) {
	cfg := config.Cfg()
	w, h := cfg.Headless.Width, cfg.Headless.Height

	img, err := LoadSource(opts.ImagePath, w, h)
	if err != nil {
		return nil, err
	}

	sim, err := New(img, WindowSpec(cfg, w, h), opts)
	if err != nil {
		return nil, err
	}

	period := cfg.Headless.OrbitPeriodFrames
	if period < 1 {
		period = 1
	}

	return &Headless{
		sim:           sim,
		renderer:      raster.NewImageRenderer(w, h, BackgroundColor()),
		centreX:       float64(w) / 2,
		centreY:       float64(h) / 2,
		orbitRadius:   cfg.Headless.OrbitRadiusFrac * math.Min(float64(w), float64(h)),
		orbitPeriod:   period,
		snapshotEvery: int64(cfg.Headless.SnapshotEvery),
		clock:         time.Unix(0, 0),
		frameStep:     time.Duration(float64(time.Second) / cfg.Physics.ReferenceFPS),
	}, nil
}

// Step moves the scripted pointer, advances one frame and draws it.
func (h *Headless) Step() {
	angle := 2 * math.Pi * float64(h.sim.frame%int64(h.orbitPeriod)) / float64(h.orbitPeriod)
	h.sim.pointer.Set(
		h.centreX+h.orbitRadius*math.Cos(angle),
		h.centreY+h.orbitRadius*math.Sin(angle),
	)

	h.clock = h.clock.Add(h.frameStep)
	h.sim.Update(h.clock)
	h.sim.Draw(h.renderer)

	if h.snapshotEvery > 0 && h.sim.frame%h.snapshotEvery == 0 {
		h.snapshot()
	}
}

// Frame returns the number of frames drawn.
func (h *Headless) Frame() int64 {
	return h.sim.frame
}

// Image returns the most recent frame.
func (h *Headless) Image() *image.RGBA {
	return h.renderer.Image()
}

// Close writes a final snapshot and particle dump.
func (h *Headless) Close() {
	if h.sim.frame > 0 {
		h.snapshot()
	}
	h.sim.Finish()
}

func (h *Headless) snapshot() {
	path := h.sim.output.SnapshotPath(h.sim.frame)
	if path == "" {
		return
	}
	if err := h.renderer.WritePNG(path); err != nil {
		slog.Error("failed to write snapshot", "error", err)
		return
	}
	slog.Info("snapshot saved", "frame", h.sim.frame, "path", path)
}
