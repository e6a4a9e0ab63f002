// Package telemetry records per-frame emitter and physics counters and
// writes them as CSV for offline comparison.
package telemetry

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/phanxgames/ember"
)

// FrameRecord is one row of a telemetry CSV.
type FrameRecord struct {
	Frame      int     `csv:"frame"`
	Label      string  `csv:"label"`
	Active     int     `csv:"active"`
	Spawned    int     `csv:"spawned"`
	Released   int     `csv:"released"`
	Dropped    int     `csv:"dropped"`
	Bodies     int     `csv:"bodies"`
	Contacts   int     `csv:"contacts"`
	UpdateMsec float64 `csv:"update_ms"`
}

// Recorder accumulates frame records in memory.
type Recorder struct {
	Label string

	records []FrameRecord
	frame   int
}

// NewRecorder returns a recorder tagging rows with label.
func NewRecorder(label string) *Recorder {
	return &Recorder{Label: label}
}

// Record appends one frame. world may be nil when no physics runs.
func (r *Recorder) Record(stats ember.EmitterStats, world *ember.PhysicsWorld, elapsed time.Duration) {
	rec := FrameRecord{
		Frame:      r.frame,
		Label:      r.Label,
		Active:     stats.Active,
		Spawned:    stats.Spawned,
		Released:   stats.Released,
		Dropped:    stats.Dropped,
		UpdateMsec: float64(elapsed) / float64(time.Millisecond),
	}
	if world != nil {
		rec.Bodies = len(world.Bodies())
		rec.Contacts = world.Contacts()
	}
	r.records = append(r.records, rec)
	r.frame++
}

// Records returns the recorded frames.
func (r *Recorder) Records() []FrameRecord {
	return r.records
}

// Reset drops all records and restarts frame numbering.
func (r *Recorder) Reset() {
	r.records = r.records[:0]
	r.frame = 0
}

// WriteCSV writes every record with a header row.
func (r *Recorder) WriteCSV(w io.Writer) error {
	if len(r.records) == 0 {
		return nil
	}
	if err := gocsv.Marshal(r.records, w); err != nil {
		return fmt.Errorf("writing telemetry: %w", err)
	}
	return nil
}

// Summary aggregates a run of frames.
type Summary struct {
	Frames       int
	MeanActive   float64
	PeakActive   float64
	TotalDropped int
	MeanUpdateMs float64
	StdUpdateMs  float64
	PeakUpdateMs float64
}

// Summary computes aggregate statistics over the recorded frames.
func (r *Recorder) Summary() Summary {
	n := len(r.records)
	if n == 0 {
		return Summary{}
	}
	active := make([]float64, n)
	update := make([]float64, n)
	s := Summary{Frames: n}
	for i, rec := range r.records {
		active[i] = float64(rec.Active)
		update[i] = rec.UpdateMsec
		s.TotalDropped += rec.Dropped
	}
	s.MeanActive = stat.Mean(active, nil)
	s.PeakActive = floats.Max(active)
	s.MeanUpdateMs, s.StdUpdateMs = stat.MeanStdDev(update, nil)
	s.PeakUpdateMs = floats.Max(update)
	return s
}

// LogValue implements slog.LogValuer.
func (s Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("frames", s.Frames),
		slog.Float64("mean_active", s.MeanActive),
		slog.Float64("peak_active", s.PeakActive),
		slog.Int("dropped", s.TotalDropped),
		slog.Float64("mean_update_ms", s.MeanUpdateMs),
		slog.Float64("std_update_ms", s.StdUpdateMs),
		slog.Float64("peak_update_ms", s.PeakUpdateMs),
	)
}
