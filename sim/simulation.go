// Package sim runs the particle frame pipeline shared by the window,
// headless and terminal modes: read the pointer, integrate, pack, draw.
package sim

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"time"

	"github.com/pthm-cable/mosaic/config"
	"github.com/pthm-cable/mosaic/systems"
	"github.com/pthm-cable/mosaic/telemetry"
)

// Options configures a run.
type Options struct {
	ImagePath string // empty = built-in test card
	Strategy  string // render strategy override; empty = config
	LogStats  bool
	OutputDir string
}

// Drawer draws a frame's particle batch. Implementations clear the
// previous frame first.
type Drawer interface {
	DrawBatch(b *systems.Batch)
}

// SurfaceSpec describes the sampling surface and force tuning for one mode.
type SurfaceSpec struct {
	Width, Height int
	CellSize      int
	Radius        float32 // drawn disk radius
	Forces        systems.ForceParams
}

// WindowSpec is the surface used by the window and headless modes.
func WindowSpec(cfg *config.Config, w, h int) SurfaceSpec {
	return SurfaceSpec{
		Width:    w,
		Height:   h,
		CellSize: cfg.Sampler.CellSize,
		Radius:   cfg.Derived.Radius32,
		Forces: systems.ForceParams{
			RepelRadius: cfg.Forces.RepelRadius,
			RepelSpeed:  cfg.Forces.RepelSpeed,
			ReturnSpeed: cfg.Forces.ReturnSpeed,
		},
	}
}

// TerminalSpec is the surface used by the terminal mode.
func TerminalSpec(cfg *config.Config, w, h int) SurfaceSpec {
	return SurfaceSpec{
		Width:    w,
		Height:   h,
		CellSize: cfg.Terminal.CellSize,
		Radius:   cfg.Derived.TerminalRadius32,
		Forces: systems.ForceParams{
			RepelRadius: cfg.Terminal.RepelRadius,
			RepelSpeed:  cfg.Terminal.RepelSpeed,
			ReturnSpeed: cfg.Terminal.ReturnSpeed,
		},
	}
}

// BackgroundColor returns the configured clear colour.
func BackgroundColor() color.RGBA {
	bg := config.Cfg().Render.Background
	return color.RGBA{R: uint8(bg[0]), G: uint8(bg[1]), B: uint8(bg[2]), A: uint8(bg[3])}
}

// Simulation owns the particle field and one frame's worth of state.
type Simulation struct {
	field   *systems.Field
	layout  systems.Layout
	pointer systems.Pointer
	batch   systems.Batch

	width, height int

	params       systems.ForceParams
	timeScaled   bool
	referenceFPS float64
	paused       bool

	frame     int64
	lastStep  time.Time
	lastScale float64

	perf     *telemetry.PerfCollector
	output   *telemetry.OutputManager
	logStats bool
	logEvery int64
}

// New samples img onto the surface and spawns the particle field.
func New(img image.Image, spec SurfaceSpec, opts Options) (*Simulation, error) {
	cfg := config.Cfg()

	samples, layout, err := systems.SampleImage(img, spec.Width, spec.Height, systems.SamplerOptions{
		CellSize:      spec.CellSize,
		Interpolation: cfg.Sampler.Interpolation,
	})
	if err != nil {
		return nil, err
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("output: %w", err)
	}
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	s := &Simulation{
		field:        systems.NewField(samples, spec.Radius),
		layout:       layout,
		width:        spec.Width,
		height:       spec.Height,
		params:       spec.Forces,
		timeScaled:   cfg.Physics.TimeScaled,
		referenceFPS: cfg.Physics.ReferenceFPS,
		perf:         telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		output:       output,
		logStats:     opts.LogStats,
		logEvery:     int64(cfg.Telemetry.LogEvery),
	}

	slog.Info("sampled image",
		"surface_w", spec.Width,
		"surface_h", spec.Height,
		"cell_size", spec.CellSize,
		"rows", layout.Rows,
		"cols", layout.Cols,
		"particles", s.field.Len(),
		"scale", layout.Scale,
		"offset_x", layout.OffsetX,
		"offset_y", layout.OffsetY,
	)

	return s, nil
}

// Update runs the pointer, integrate and pack phases of one frame.
// The draw phase follows in Draw.
func (s *Simulation) Update(now time.Time) {
	s.perf.StartFrame()

	s.perf.StartPhase(telemetry.PhasePointer)
	pointer := s.pointer.Load()

	s.perf.StartPhase(telemetry.PhaseIntegrate)
	var elapsed float64
	if !s.lastStep.IsZero() {
		elapsed = now.Sub(s.lastStep).Seconds()
	}
	s.lastStep = now
	if !s.paused {
		s.lastScale = systems.FrameScale(elapsed, s.timeScaled, s.referenceFPS)
		s.field.Step(pointer, s.params, s.lastScale)
	}

	s.perf.StartPhase(telemetry.PhasePack)
	s.field.Pack(&s.batch)
}

// Draw hands the packed batch to d and closes the frame.
func (s *Simulation) Draw(d Drawer) {
	s.perf.StartPhase(telemetry.PhaseDraw)
	d.DrawBatch(&s.batch)
	s.perf.EndFrame()
	s.perf.RecordPresent()

	s.frame++
	s.flushTelemetry()
}

// TrackPointer records a pointer sample in surface pixels. The pointer
// leaves when it is off screen or outside the surface.
func (s *Simulation) TrackPointer(onScreen bool, x, y float64) {
	if !onScreen || x < 0 || y < 0 || x >= float64(s.width) || y >= float64(s.height) {
		s.pointer.Leave()
		return
	}
	s.pointer.Set(x, y)
}

// Reset snaps every particle home.
func (s *Simulation) Reset() {
	s.field.Reset()
	slog.Info("particles reset", "frame", s.frame)
}

// TogglePause stops or resumes integration. Drawing continues while paused.
func (s *Simulation) TogglePause() {
	s.paused = !s.paused
	// Drop the paused interval so time-scaled mode does not jump on resume
	s.lastStep = time.Time{}
}

// Paused reports whether integration is stopped.
func (s *Simulation) Paused() bool { return s.paused }

// Frame returns the number of frames drawn.
func (s *Simulation) Frame() int64 { return s.frame }

// Field returns the particle field.
func (s *Simulation) Field() *systems.Field { return s.field }

// Layout returns the sampling grid layout.
func (s *Simulation) Layout() systems.Layout { return s.layout }

// Pointer returns the pointer slot read at the start of each frame.
func (s *Simulation) Pointer() *systems.Pointer { return &s.pointer }

// Perf returns the frame timing collector.
func (s *Simulation) Perf() *telemetry.PerfCollector { return s.perf }

// Tuning returns the live force parameters and time-scaled flag for editing.
func (s *Simulation) Tuning() (*systems.ForceParams, *bool) {
	return &s.params, &s.timeScaled
}
