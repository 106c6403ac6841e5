// Package config provides configuration loading and access for the particle field.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Sampler   SamplerConfig   `yaml:"sampler"`
	Forces    ForcesConfig    `yaml:"forces"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Render    RenderConfig    `yaml:"render"`
	Headless  HeadlessConfig  `yaml:"headless"`
	Terminal  TerminalConfig  `yaml:"terminal"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	HighDPI   bool   `yaml:"high_dpi"` // Sample at render-pixel resolution on HiDPI displays
	Title     string `yaml:"title"`
}

// SamplerConfig holds image sampling parameters.
type SamplerConfig struct {
	CellSize      int    `yaml:"cell_size"`     // Grid cell side in surface pixels
	Interpolation string `yaml:"interpolation"` // nearest, bilinear, catmullrom
}

// ForcesConfig holds the per-frame force rule constants.
type ForcesConfig struct {
	RepelRadius float64 `yaml:"repel_radius"` // Max pointer distance that displaces a particle
	RepelSpeed  float64 `yaml:"repel_speed"`  // Displacement at zero distance
	ReturnSpeed float64 `yaml:"return_speed"` // Fraction of home distance closed per frame
}

// PhysicsConfig controls how force rules relate to wall-clock time.
type PhysicsConfig struct {
	TimeScaled   bool    `yaml:"time_scaled"`   // false = one rule application per frame
	ReferenceFPS float64 `yaml:"reference_fps"` // Frame rate the force constants were tuned at
}

// RenderConfig holds renderer selection.
type RenderConfig struct {
	Strategy   string `yaml:"strategy"`   // circles or sprites
	Background [4]int  `yaml:"background"` // RGBA clear colour, 0-255
}

// HeadlessConfig holds parameters for windowless runs.
type HeadlessConfig struct {
	Width             int     `yaml:"width"`
	Height            int     `yaml:"height"`
	OrbitRadiusFrac   float64 `yaml:"orbit_radius_frac"`   // Pointer orbit radius as a fraction of min(W,H)
	OrbitPeriodFrames int     `yaml:"orbit_period_frames"` // Frames per full pointer orbit
	SnapshotEvery     int     `yaml:"snapshot_every"`      // Frames between PNG snapshots (0 = off)
}

// TerminalConfig holds parameters for the terminal backend.
// Terminal cells are coarse, so it carries its own force constants.
type TerminalConfig struct {
	FPS         int     `yaml:"fps"`
	CellSize    int     `yaml:"cell_size"`
	RepelRadius float64 `yaml:"repel_radius"`
	RepelSpeed  float64 `yaml:"repel_speed"`
	ReturnSpeed float64 `yaml:"return_speed"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	PerfWindow int `yaml:"perf_window"` // Frames in the rolling perf window
	LogEvery   int `yaml:"log_every"`   // Frames between perf log lines / CSV rows
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Radius32         float32 // Particle disk radius (Sampler.CellSize / 2)
	TerminalRadius32 float32 // Terminal.CellSize / 2
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	cfg.computeDerived()

	return cfg, nil
}

// validate rejects values that would make the sampler or force rules degenerate.
func (c *Config) validate() error {
	if c.Sampler.CellSize < 1 {
		return fmt.Errorf("config: sampler.cell_size must be >= 1, got %d", c.Sampler.CellSize)
	}
	if c.Terminal.CellSize < 1 {
		return fmt.Errorf("config: terminal.cell_size must be >= 1, got %d", c.Terminal.CellSize)
	}
	if err := validateForces("forces", c.Forces.RepelRadius, c.Forces.RepelSpeed, c.Forces.ReturnSpeed); err != nil {
		return err
	}
	if err := validateForces("terminal", c.Terminal.RepelRadius, c.Terminal.RepelSpeed, c.Terminal.ReturnSpeed); err != nil {
		return err
	}
	if c.Headless.Width < 1 || c.Headless.Height < 1 {
		return fmt.Errorf("config: headless surface must be at least 1x1, got %dx%d", c.Headless.Width, c.Headless.Height)
	}
	switch c.Render.Strategy {
	case "circles", "sprites":
	default:
		return fmt.Errorf("config: unknown render.strategy %q", c.Render.Strategy)
	}
	switch c.Sampler.Interpolation {
	case "nearest", "bilinear", "catmullrom":
	default:
		return fmt.Errorf("config: unknown sampler.interpolation %q", c.Sampler.Interpolation)
	}
	return nil
}

func validateForces(section string, repelRadius, repelSpeed, returnSpeed float64) error {
	if repelRadius <= 0 {
		return fmt.Errorf("config: %s.repel_radius must be > 0, got %g", section, repelRadius)
	}
	if repelSpeed < 0 {
		return fmt.Errorf("config: %s.repel_speed must be >= 0, got %g", section, repelSpeed)
	}
	if returnSpeed < 0 || returnSpeed > 1 {
		return fmt.Errorf("config: %s.return_speed must be in [0,1], got %g", section, returnSpeed)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.Radius32 = float32(c.Sampler.CellSize) / 2
	c.Derived.TerminalRadius32 = float32(c.Terminal.CellSize) / 2

	if c.Physics.ReferenceFPS <= 0 {
		c.Physics.ReferenceFPS = 60
	}
	if c.Terminal.FPS <= 0 {
		c.Terminal.FPS = 30
	}
	if c.Telemetry.PerfWindow <= 0 {
		c.Telemetry.PerfWindow = 120
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
