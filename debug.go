package ember

import (
	"context"
	"log/slog"
)

// EmitterStats holds counters for the most recent Update. Spawned also
// includes Burst calls made since that Update.
type EmitterStats struct {
	Active   int // live particles after the update
	Free     int // pool slots on the free stack
	Spawned  int // particles spawned
	Released int // particles that died and returned to the pool
	Dropped  int // owed rate spawns discarded because the cap was full
}

// LogValue implements slog.LogValuer.
func (s EmitterStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("active", s.Active),
		slog.Int("free", s.Free),
		slog.Int("spawned", s.Spawned),
		slog.Int("released", s.Released),
		slog.Int("dropped", s.Dropped),
	)
}

// Stats returns the counters collected by the last Update.
func (e *ParticleEmitter) Stats() EmitterStats {
	return e.stats
}

// logStats emits per-frame stats when Debug is set and warns once each time
// the emitter enters a saturated run of dropped spawns.
func (e *ParticleEmitter) logStats() {
	dropping := e.stats.Dropped > 0
	if !e.config.Debug {
		e.saturated = dropping
		return
	}
	l := Logger()
	if dropping && !e.saturated {
		l.Warn("ember: emitter saturated, dropping spawns",
			slog.Int("max", e.config.MaxParticles),
			slog.Float64("rate", e.config.SpawnRate),
			slog.Int("dropped", e.stats.Dropped))
	}
	e.saturated = dropping
	if l.Enabled(context.Background(), slog.LevelDebug) {
		l.Debug("ember: emitter update", slog.Any("stats", e.stats))
	}
}
