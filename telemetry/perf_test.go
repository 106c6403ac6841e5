package telemetry

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"time"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartFrame()
		pc.StartPhase(PhaseIntegrate)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseDraw)
		time.Sleep(200 * time.Microsecond)
		pc.EndFrame()
	}

	stats := pc.Stats()

	if stats.AvgFrame <= 0 {
		t.Error("expected positive average frame duration")
	}
	if _, ok := stats.PhaseAvg[PhaseIntegrate]; !ok {
		t.Error("expected integrate phase to be tracked")
	}
	if _, ok := stats.PhaseAvg[PhaseDraw]; !ok {
		t.Error("expected draw phase to be tracked")
	}
}

func TestPerfCollector_Quantiles(t *testing.T) {
	pc := NewPerfCollector(20)

	for i := 0; i < 20; i++ {
		pc.StartFrame()
		pc.StartPhase(PhasePack)
		if i == 19 {
			time.Sleep(5 * time.Millisecond)
		}
		pc.EndFrame()
	}

	stats := pc.Stats()

	if stats.MinFrame > stats.P50Frame || stats.P50Frame > stats.P95Frame || stats.P95Frame > stats.MaxFrame {
		t.Errorf("quantiles out of order: min %v p50 %v p95 %v max %v",
			stats.MinFrame, stats.P50Frame, stats.P95Frame, stats.MaxFrame)
	}
	if stats.MaxFrame < 5*time.Millisecond {
		t.Errorf("max frame %v, want >= 5ms", stats.MaxFrame)
	}
	// One slow frame in twenty stays out of the median
	if stats.P50Frame >= 5*time.Millisecond {
		t.Errorf("p50 %v pulled up by a single outlier", stats.P50Frame)
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5)

	for i := 0; i < 10; i++ {
		pc.StartFrame()
		pc.StartPhase(PhasePointer)
		pc.EndFrame()
	}

	stats := pc.Stats()

	if stats.AvgFrame <= 0 {
		t.Error("expected positive average frame duration after window filled")
	}
	if stats.Throughput <= 0 {
		t.Error("expected positive throughput")
	}
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartFrame()
		pc.StartPhase("fast")
		time.Sleep(10 * time.Microsecond)
		pc.StartPhase("slow")
		time.Sleep(100 * time.Microsecond)
		pc.EndFrame()
	}

	stats := pc.Stats()

	if stats.PhasePct["slow"] <= stats.PhasePct["fast"] {
		t.Errorf("expected slow phase (%v%%) > fast phase (%v%%)",
			stats.PhasePct["slow"], stats.PhasePct["fast"])
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	pc := NewPerfCollector(10)

	stats := pc.Stats()

	if stats.AvgFrame != 0 {
		t.Error("expected zero avg frame duration for empty collector")
	}
	if stats.PhaseAvg == nil || stats.PhasePct == nil {
		t.Error("expected non-nil phase maps")
	}
}

func TestPerfCollector_PresentTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	pc.RecordPresent()
	time.Sleep(16 * time.Millisecond)
	pc.RecordPresent()

	stats := pc.Stats()

	if stats.PresentInterval < 15*time.Millisecond {
		t.Errorf("expected present interval >= 15ms, got %v", stats.PresentInterval)
	}
	if stats.FPS <= 0 || stats.FPS > 70 {
		t.Errorf("expected FPS in (0, 70] with 16ms frames, got %v", stats.FPS)
	}
}

func TestPerfStats_ToCSV(t *testing.T) {
	s := PerfStats{
		AvgFrame: 1500 * time.Microsecond,
		P95Frame: 3 * time.Millisecond,
		PhasePct: map[string]float64{PhaseIntegrate: 40, PhaseDraw: 55},
	}

	row := s.ToCSV(600)

	if row.Frame != 600 || row.AvgFrameUS != 1500 || row.P95FrameUS != 3000 {
		t.Errorf("unexpected row %+v", row)
	}
	if row.IntegratePct != 40 || row.DrawPct != 55 || row.PackPct != 0 {
		t.Errorf("phase columns %+v", row)
	}
}

func TestPerfStats_LogStats(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	PerfStats{
		AvgFrame: 2 * time.Millisecond,
		P95Frame: 4 * time.Millisecond,
		FPS:      59.9,
		PhasePct: map[string]float64{PhaseIntegrate: 62.345, PhasePack: 0.05},
	}.LogStats()

	var line struct {
		Msg   string         `json:"msg"`
		Stats map[string]any `json:"stats"`
	}
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}

	if line.Msg != "perf" {
		t.Errorf("msg = %q, want perf", line.Msg)
	}
	if line.Stats["avg_frame_us"] != float64(2000) || line.Stats["p95_frame_us"] != float64(4000) {
		t.Errorf("frame times %v", line.Stats)
	}
	if line.Stats["fps"] != float64(59) {
		t.Errorf("fps = %v, want 59", line.Stats["fps"])
	}
	if line.Stats["integrate_pct"] != 62.3 {
		t.Errorf("integrate_pct = %v, want 62.3", line.Stats["integrate_pct"])
	}
	if _, ok := line.Stats["pack_pct"]; ok {
		t.Error("negligible phase should be omitted")
	}
}
