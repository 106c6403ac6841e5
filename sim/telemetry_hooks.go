package sim

import (
	"log/slog"
)

// flushTelemetry logs and records perf stats once per telemetry window.
func (s *Simulation) flushTelemetry() {
	if s.logEvery <= 0 || s.frame%s.logEvery != 0 {
		return
	}

	stats := s.perf.Stats()

	if s.logStats {
		stats.LogStats()
	}

	if s.output != nil {
		if err := s.output.WritePerf(stats, s.frame); err != nil {
			slog.Error("failed to write perf, disabling output", "error", err)
			s.closeOutput()
		}
	}
}

// Finish writes the final particle state and closes output files.
func (s *Simulation) Finish() {
	if s.output != nil {
		if err := s.output.WriteParticles(s.field.Particles()); err != nil {
			slog.Error("failed to write particles", "error", err)
		}
	}
	s.closeOutput()

	slog.Info("simulation finished",
		"frames", s.frame,
		"mean_displacement", s.field.MeanDisplacement(),
	)
}

func (s *Simulation) closeOutput() {
	if s.output == nil {
		return
	}
	if err := s.output.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
	s.output = nil
}
