package ember

import (
	"image/color"
	"iter"
	"math"
	"slices"
)

// EmitterConfig controls how particles are spawned.
type EmitterConfig struct {
	// Position is the emitter origin in world units.
	Position Vec2
	// MaxParticles caps the number of live particles. It also sizes the pool
	// at construction; raising it later through Config has no effect beyond
	// the pool capacity.
	MaxParticles int
	// SpawnRate is the number of particles spawned per second.
	SpawnRate float64

	// Shape selects the spawn area. SpawnRadius applies to SpawnCircle and
	// SpawnRect (width, height) to SpawnRectangle.
	Shape       SpawnShape
	SpawnRadius float64
	SpawnRect   Vec2

	// VelocityMin and VelocityMax bound the initial velocity per axis.
	VelocityMin Vec2
	VelocityMax Vec2
	// Lifetime is the range of particle lifetimes in seconds.
	Lifetime Range
	// StartSize is the range of sizes at birth, interpolated to EndSize over lifetime.
	StartSize Range
	// EndSize is the range of sizes at death.
	EndSize Range
	// Rotation is the range of initial rotations in degrees.
	Rotation Range
	// AngularVelocity is the range of spin rates in degrees per second.
	AngularVelocity Range

	// StartColor tints new particles. Its alpha is ignored; alpha follows
	// the remaining life fraction.
	StartColor color.NRGBA
	// Textures is the set each spawn picks from uniformly. Empty means
	// particles are simulated but not drawn.
	Textures []Texture

	// Enabled gates rate-based spawning. Live particles keep simulating and
	// Burst still works while disabled.
	Enabled bool

	// Rand supplies spawn randomness. Nil uses the math/rand/v2 global source.
	Rand RandSource

	// Debug logs per-update stats at debug level and a warning whenever the
	// emitter starts dropping spawns.
	Debug bool
}

// DefaultEmitterConfig returns a general-purpose configuration: 1000
// particles at 50/s from a point, ±50 velocity, 1–2s lifetimes, 8–24 start
// size shrinking to nothing, random rotation and ±90°/s spin.
func DefaultEmitterConfig() EmitterConfig {
	return EmitterConfig{
		MaxParticles:    1000,
		SpawnRate:       50,
		VelocityMin:     Vec2{-50, -50},
		VelocityMax:     Vec2{50, 50},
		Lifetime:        Range{1, 2},
		StartSize:       Range{8, 24},
		EndSize:         Range{0, 0},
		Rotation:        Range{0, 360},
		AngularVelocity: Range{-90, 90},
		StartColor:      color.NRGBA{255, 255, 255, 255},
		Enabled:         true,
	}
}

// ParticleEmitter owns a ParticlePool, the ordered list of live particle
// indices and a modifier pipeline. It is single-threaded: one Update then one
// Draw per frame, never shared between goroutines without external locking.
type ParticleEmitter struct {
	config    EmitterConfig
	pool      *ParticlePool
	active    []int
	modifiers []Modifier
	spawnAcc  float64

	stats     EmitterStats
	saturated bool
}

// NewParticleEmitter creates an emitter with a pool of cfg.MaxParticles
// preallocated particles.
func NewParticleEmitter(cfg EmitterConfig) (*ParticleEmitter, error) {
	pool, err := NewParticlePool(cfg.MaxParticles)
	if err != nil {
		return nil, err
	}
	return &ParticleEmitter{
		config: cfg,
		pool:   pool,
		active: make([]int, 0, cfg.MaxParticles),
	}, nil
}

// Config returns a pointer to the emitter's config for live tuning.
func (e *ParticleEmitter) Config() *EmitterConfig {
	return &e.config
}

// AddModifier appends m to the pipeline.
func (e *ParticleEmitter) AddModifier(m Modifier) {
	e.modifiers = append(e.modifiers, m)
}

// RemoveModifier removes the first occurrence of m and reports whether it
// was registered. Modifiers are matched with ==, so m must be comparable
// (pointer modifiers always are).
func (e *ParticleEmitter) RemoveModifier(m Modifier) bool {
	for i, have := range e.modifiers {
		if have == m {
			e.modifiers = slices.Delete(e.modifiers, i, i+1)
			return true
		}
	}
	return false
}

// Modifiers returns the registered pipeline in application order. The
// returned slice MUST NOT be mutated.
func (e *ParticleEmitter) Modifiers() []Modifier {
	return e.modifiers
}

// ActiveCount returns the number of live particles.
func (e *ParticleEmitter) ActiveCount() int {
	return len(e.active)
}

// Capacity returns the pool size fixed at construction.
func (e *ParticleEmitter) Capacity() int {
	return e.pool.Capacity()
}

// Particles yields a copy of every live particle in spawn order.
func (e *ParticleEmitter) Particles() iter.Seq[Particle] {
	return func(yield func(Particle) bool) {
		for _, idx := range e.active {
			if !yield(*e.pool.At(idx)) {
				return
			}
		}
	}
}

// Burst immediately spawns up to count particles, ignoring the rate
// accumulator, and returns how many were spawned. Fewer than count are
// spawned when MaxParticles or the pool is exhausted.
func (e *ParticleEmitter) Burst(count int) int {
	spawned := 0
	for i := 0; i < count; i++ {
		if !e.trySpawn() {
			break
		}
		spawned++
	}
	e.stats.Spawned += spawned
	return spawned
}

// Update advances the emitter by dt seconds: the spawn phase runs first,
// then every live particle is aged, moved and passed through the modifier
// pipeline. A negative or non-finite dt is treated as zero.
func (e *ParticleEmitter) Update(dt float64) {
	if dt < 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		dt = 0
	}
	e.stats.Spawned, e.stats.Released, e.stats.Dropped = 0, 0, 0

	if e.config.Enabled && e.config.SpawnRate > 0 {
		e.spawnAcc += e.config.SpawnRate * dt
		owed := int(e.spawnAcc)
		e.spawnAcc -= float64(owed)
		for i := 0; i < owed; i++ {
			if !e.trySpawn() {
				// Whole spawns that find no slot are dropped; only the
				// fractional remainder carries into the next update.
				e.stats.Dropped += owed - i
				break
			}
			e.stats.Spawned++
		}
	}

	for _, m := range e.modifiers {
		if s, ok := m.(Stepper); ok {
			s.Step(dt)
		}
	}

	// Reverse order so removing index i never disturbs unvisited entries.
	for i := len(e.active) - 1; i >= 0; i-- {
		idx := e.active[i]
		p := e.pool.At(idx)

		p.Lifetime -= dt
		if !p.Alive() {
			e.release(i, idx)
			continue
		}

		p.basicUpdate(dt)
		for _, m := range e.modifiers {
			m.Apply(p, dt)
		}

		if !p.Alive() {
			e.release(i, idx)
		}
	}

	e.stats.Active = len(e.active)
	e.stats.Free = e.pool.Free()
	e.logStats()
}

// Draw issues one textured quad per live particle that has a texture,
// scaled so the drawn width and height equal the particle's Size.
func (e *ParticleEmitter) Draw(r Renderer) {
	for _, idx := range e.active {
		p := e.pool.At(idx)
		if !p.Alive() || p.Texture == nil {
			continue
		}
		src, scale, ok := fullTextureQuad(p.Texture, p.Size)
		if !ok {
			continue
		}
		r.DrawTexturedQuad(p.Texture, src, p.Position, p.Color, p.Rotation, scale)
	}
}

// Clear releases every live particle and zeroes the spawn accumulator.
func (e *ParticleEmitter) Clear() {
	for _, idx := range e.active {
		e.pool.Release(idx)
	}
	e.active = e.active[:0]
	e.spawnAcc = 0
	e.stats.Active = 0
	e.stats.Free = e.pool.Free()
}

// release returns the particle at active position i (pool index idx) to the pool.
func (e *ParticleEmitter) release(i, idx int) {
	e.pool.Release(idx)
	e.active = slices.Delete(e.active, i, i+1)
	e.stats.Released++
}

// trySpawn acquires a slot and initializes a particle from the config.
// It reports false when MaxParticles or the pool is exhausted.
func (e *ParticleEmitter) trySpawn() bool {
	cfg := &e.config
	if len(e.active) >= cfg.MaxParticles {
		return false
	}
	idx, p, ok := e.pool.TryAcquire()
	if !ok {
		return false
	}

	rng := cfg.Rand
	if rng == nil {
		rng = defaultRand
	}

	pos := e.spawnPosition(rng)
	vel := Vec2{
		X: cfg.VelocityMin.X + rng.Float64()*(cfg.VelocityMax.X-cfg.VelocityMin.X),
		Y: cfg.VelocityMin.Y + rng.Float64()*(cfg.VelocityMax.Y-cfg.VelocityMin.Y),
	}
	lifetime := cfg.Lifetime.Sample(rng)
	startSize := cfg.StartSize.Sample(rng)
	endSize := cfg.EndSize.Sample(rng)

	var tex Texture
	if n := len(cfg.Textures); n > 0 {
		tex = cfg.Textures[rng.IntN(n)]
	}

	rotation := cfg.Rotation.Sample(rng)
	angVel := cfg.AngularVelocity.Sample(rng)

	p.reset(pos, vel, lifetime, cfg.StartColor, tex, startSize, endSize, rotation, angVel)
	e.active = append(e.active, idx)
	return true
}

// spawnPosition samples the configured spawn shape around the emitter.
func (e *ParticleEmitter) spawnPosition(rng RandSource) Vec2 {
	cfg := &e.config
	switch cfg.Shape {
	case SpawnCircle:
		// sqrt keeps the density uniform over the disc area.
		r := math.Sqrt(rng.Float64()) * cfg.SpawnRadius
		a := rng.Float64() * 2 * math.Pi
		return Vec2{cfg.Position.X + math.Cos(a)*r, cfg.Position.Y + math.Sin(a)*r}
	case SpawnRectangle:
		x := rng.Float64()*cfg.SpawnRect.X - cfg.SpawnRect.X/2
		y := rng.Float64()*cfg.SpawnRect.Y - cfg.SpawnRect.Y/2
		return Vec2{cfg.Position.X + x, cfg.Position.Y + y}
	default:
		return cfg.Position
	}
}
