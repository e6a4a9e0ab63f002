package ember

import (
	"errors"
	"image/color"
	"testing"
)

func testSystem(t *testing.T, max int, rate float64, life Range) *ParticleSystem {
	t.Helper()
	cfg := DefaultSystemConfig(fakeTexture{16, 16})
	cfg.MaxParticles = max
	cfg.SpawnRate = rate
	cfg.Lifetime = life
	cfg.Rand = NewRand(3)
	s, err := NewParticleSystem(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestParticleSystemRequiresTextures(t *testing.T) {
	if _, err := NewParticleSystem(DefaultSystemConfig()); !errors.Is(err, ErrNoTextures) {
		t.Errorf("err = %v, want ErrNoTextures", err)
	}
}

func TestParticleSystemSpawnRate(t *testing.T) {
	s := testSystem(t, 1000, 8, Range{10, 10})
	for i := 0; i < 8; i++ {
		s.Update(0.125)
	}
	if s.Count() != 8 {
		t.Errorf("count = %d, want 8", s.Count())
	}
}

func TestParticleSystemCarriesOwedSpawns(t *testing.T) {
	s := testSystem(t, 5, 100, Range{0.5, 0.5})

	s.Update(0.25) // 25 owed, 5 placed
	if s.Count() != 5 {
		t.Fatalf("count = %d, want 5", s.Count())
	}
	s.Update(0.5) // full during spawn, then everything expires
	if s.Count() != 0 {
		t.Fatalf("count = %d, want 0", s.Count())
	}
	// Unlike ParticleEmitter, the backlog is kept.
	s.Update(0)
	if s.Count() != 5 {
		t.Errorf("count = %d, want 5 from carried spawns", s.Count())
	}
}

func TestParticleSystemParticlesKeepSize(t *testing.T) {
	s := testSystem(t, 10, 8, Range{2, 2})
	s.Update(0.125)
	s.Config.SpawnRate = 0
	s.Update(0.5)

	var r recordingRenderer
	s.Draw(&r)
	if len(r.quads) != 1 {
		t.Fatalf("quads = %d, want 1", len(r.quads))
	}
	q := r.quads[0]
	p := s.particles[0]
	if p.Size < 16 || p.Size > 32 {
		t.Errorf("size = %v outside [16, 32]", p.Size)
	}
	assertNear(t, "scale.X", q.scale.X, p.Size/16)
	assertNear(t, "rotation", q.rotation, 0)
	// 255 * 1.375/2
	if q.tint != (color.NRGBA{255, 255, 255, 175}) {
		t.Errorf("tint = %v", q.tint)
	}
}

func TestParticleSystemClear(t *testing.T) {
	s := testSystem(t, 10, 8, Range{10, 10})
	s.Update(0.5)
	s.Update(0.0625)
	s.Clear()
	if s.Count() != 0 {
		t.Fatalf("count = %d after Clear", s.Count())
	}
	s.Update(0.0625)
	if s.Count() != 0 {
		t.Errorf("accumulator survived Clear: count = %d", s.Count())
	}
}
