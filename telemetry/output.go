package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/mosaic/config"
	"github.com/pthm-cable/mosaic/systems"
)

// ParticleRecord is one row of particles.csv.
type ParticleRecord struct {
	Index int     `csv:"index"`
	HomeX float64 `csv:"home_x"`
	HomeY float64 `csv:"home_y"`
	X     float64 `csv:"x"`
	Y     float64 `csv:"y"`
	R     float32 `csv:"r"`
	G     float32 `csv:"g"`
	B     float32 `csv:"b"`
	A     float32 `csv:"a"`
}

// ParticleRecords flattens particles in spawn order.
func ParticleRecords(particles []systems.Particle) []ParticleRecord {
	records := make([]ParticleRecord, len(particles))
	for i, p := range particles {
		records[i] = ParticleRecord{
			Index: i,
			HomeX: p.Home.X,
			HomeY: p.Home.Y,
			X:     p.Position.X,
			Y:     p.Position.Y,
			R:     p.Tint.R,
			G:     p.Tint.G,
			B:     p.Tint.B,
			A:     p.Tint.A,
		}
	}
	return records
}

// OutputManager writes run output into a directory: perf.csv, particles.csv,
// config.yaml and a snapshots/ folder of PNG frames.
type OutputManager struct {
	dir      string
	perfFile *os.File

	perfHeaderWritten bool
}

// NewOutputManager creates the output directory and opens perf.csv.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(filepath.Join(dir, "snapshots"), 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, "perf.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating perf.csv: %w", err)
	}

	return &OutputManager{dir: dir, perfFile: f}, nil
}

// WriteConfig saves the effective configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WritePerf appends a row to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, frame int64) error {
	if om == nil {
		return nil
	}

	records := []PerfStatsCSV{stats.ToCSV(frame)}

	if !om.perfHeaderWritten {
		if err := gocsv.Marshal(records, om.perfFile); err != nil {
			return fmt.Errorf("writing perf: %w", err)
		}
		om.perfHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.perfFile); err != nil {
			return fmt.Errorf("writing perf: %w", err)
		}
	}

	return nil
}

// WriteParticles replaces particles.csv with the current particle state.
func (om *OutputManager) WriteParticles(particles []systems.Particle) error {
	if om == nil {
		return nil
	}

	f, err := os.Create(filepath.Join(om.dir, "particles.csv"))
	if err != nil {
		return fmt.Errorf("creating particles.csv: %w", err)
	}
	if err := gocsv.MarshalFile(ParticleRecords(particles), f); err != nil {
		f.Close()
		return fmt.Errorf("writing particles: %w", err)
	}
	return f.Close()
}

// SnapshotPath returns the PNG path for a frame snapshot.
func (om *OutputManager) SnapshotPath(frame int64) string {
	if om == nil {
		return ""
	}
	return filepath.Join(om.dir, "snapshots", fmt.Sprintf("frame_%06d.png", frame))
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close closes perf.csv.
func (om *OutputManager) Close() error {
	if om == nil || om.perfFile == nil {
		return nil
	}
	return om.perfFile.Close()
}
