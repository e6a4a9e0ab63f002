package ember

import (
	"image/color"
	"slices"
)

// SystemConfig configures a ParticleSystem.
type SystemConfig struct {
	Position     Vec2
	MaxParticles int
	SpawnRate    float64 // particles per second
	Textures     []Texture
	VelocityMin  Vec2
	VelocityMax  Vec2
	Lifetime     Range
	Size         Range
	Rand         RandSource
}

// DefaultSystemConfig returns 1000 particles at 50/s, ±50 velocity, 1–2s
// lifetimes and 16–32 sizes. Textures must still be supplied.
func DefaultSystemConfig(textures ...Texture) SystemConfig {
	return SystemConfig{
		MaxParticles: 1000,
		SpawnRate:    50,
		Textures:     textures,
		VelocityMin:  Vec2{-50, -50},
		VelocityMax:  Vec2{50, 50},
		Lifetime:     Range{1, 2},
		Size:         Range{16, 32},
	}
}

// ParticleSystem is a lightweight emitter without pooling or modifiers.
// Particles live in a growable slice and keep a constant size, spin-free and
// white, fading out over their lifetime.
type ParticleSystem struct {
	Config SystemConfig

	particles []Particle
	spawnAcc  float64
}

// NewParticleSystem returns a system for cfg. Every spawn picks a texture,
// so cfg.Textures must not be empty.
func NewParticleSystem(cfg SystemConfig) (*ParticleSystem, error) {
	if len(cfg.Textures) == 0 {
		return nil, ErrNoTextures
	}
	return &ParticleSystem{Config: cfg}, nil
}

// Count returns the number of live particles.
func (s *ParticleSystem) Count() int {
	return len(s.particles)
}

// Clear removes every particle and resets the spawn accumulator.
func (s *ParticleSystem) Clear() {
	s.particles = s.particles[:0]
	s.spawnAcc = 0
}

// Update spawns at the configured rate while under MaxParticles, then ages
// and moves every particle, dropping the dead. Negative dt is treated as zero.
func (s *ParticleSystem) Update(dt float64) {
	if dt < 0 {
		dt = 0
	}
	s.spawnAcc += s.Config.SpawnRate * dt
	for s.spawnAcc >= 1 && len(s.particles) < s.Config.MaxParticles {
		s.spawn()
		s.spawnAcc--
	}

	for i := len(s.particles) - 1; i >= 0; i-- {
		p := &s.particles[i]
		p.Lifetime -= dt
		if p.Alive() {
			p.basicUpdate(dt)
			continue
		}
		s.particles = slices.Delete(s.particles, i, i+1)
	}
}

// Draw issues one quad per particle.
func (s *ParticleSystem) Draw(r Renderer) {
	for i := range s.particles {
		p := &s.particles[i]
		if p.Texture == nil {
			continue
		}
		src, scale, ok := fullTextureQuad(p.Texture, p.Size)
		if !ok {
			continue
		}
		r.DrawTexturedQuad(p.Texture, src, p.Position, p.Color, p.Rotation, scale)
	}
}

func (s *ParticleSystem) spawn() {
	cfg := &s.Config
	rng := cfg.Rand
	if rng == nil {
		rng = defaultRand
	}
	vel := Vec2{
		X: cfg.VelocityMin.X + rng.Float64()*(cfg.VelocityMax.X-cfg.VelocityMin.X),
		Y: cfg.VelocityMin.Y + rng.Float64()*(cfg.VelocityMax.Y-cfg.VelocityMin.Y),
	}
	lifetime := cfg.Lifetime.Sample(rng)
	size := cfg.Size.Sample(rng)
	tex := cfg.Textures[rng.IntN(len(cfg.Textures))]

	var p Particle
	p.reset(cfg.Position, vel, lifetime, color.NRGBA{255, 255, 255, 255}, tex, size, size, 0, 0)
	s.particles = append(s.particles, p)
}
