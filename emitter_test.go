package ember

import (
	"bytes"
	"errors"
	"image/color"
	"log/slog"
	"math"
	"strings"
	"testing"
)

func testConfig(max int) EmitterConfig {
	cfg := DefaultEmitterConfig()
	cfg.MaxParticles = max
	cfg.SpawnRate = 0
	cfg.VelocityMin = Vec2{}
	cfg.VelocityMax = Vec2{}
	cfg.Lifetime = Range{10, 10}
	cfg.Rand = NewRand(1)
	return cfg
}

func mustEmitter(t testing.TB, cfg EmitterConfig) *ParticleEmitter {
	t.Helper()
	e, err := NewParticleEmitter(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func firstParticle(t *testing.T, e *ParticleEmitter) Particle {
	t.Helper()
	for p := range e.Particles() {
		return p
	}
	t.Fatal("no live particles")
	return Particle{}
}

// killAt kills particles whose X position equals x.
type killAt struct{ x float64 }

func (k *killAt) Apply(p *Particle, _ float64) {
	if p.Position.X == k.x {
		p.Kill()
	}
}

func TestNewParticleEmitterRejectsBadCapacity(t *testing.T) {
	cfg := DefaultEmitterConfig()
	cfg.MaxParticles = 0
	if _, err := NewParticleEmitter(cfg); !errors.Is(err, ErrInvalidCapacity) {
		t.Errorf("err = %v, want ErrInvalidCapacity", err)
	}
}

func TestDefaultEmitterConfig(t *testing.T) {
	cfg := DefaultEmitterConfig()
	if cfg.MaxParticles != 1000 || cfg.SpawnRate != 50 || !cfg.Enabled {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.Shape != SpawnPoint {
		t.Errorf("Shape = %v, want point", cfg.Shape)
	}
	if cfg.StartColor != (color.NRGBA{255, 255, 255, 255}) {
		t.Errorf("StartColor = %v, want white", cfg.StartColor)
	}
}

func TestSpawnRateAccumulates(t *testing.T) {
	cfg := testConfig(100)
	cfg.SpawnRate = 10
	e := mustEmitter(t, cfg)

	// 2.7 per update: 2, then 0.7+2.7 -> 3, 0.4+2.7 -> 3, 0.1+2.7 -> 2.
	want := []int{2, 5, 8, 10}
	for i, w := range want {
		e.Update(0.27)
		if got := e.ActiveCount(); got != w {
			t.Errorf("after update %d: active = %d, want %d", i+1, got, w)
		}
	}
}

func TestSpawnCapDropsOwedSpawns(t *testing.T) {
	cfg := testConfig(1)
	cfg.SpawnRate = 8
	cfg.Lifetime = Range{1, 1}
	e := mustEmitter(t, cfg)

	e.Update(0.5)
	if s := e.Stats(); s.Spawned != 1 || s.Dropped != 3 || s.Active != 1 {
		t.Fatalf("first update stats = %+v", s)
	}

	// The only particle dies during this update, after the spawn phase.
	e.Update(0.5)
	if s := e.Stats(); s.Dropped != 4 || s.Active != 0 || s.Released != 1 {
		t.Fatalf("second update stats = %+v", s)
	}

	// Only the fractional remainder carries over: 0.5 owed, nothing spawns.
	e.Update(0.0625)
	if e.ActiveCount() != 0 || e.Stats().Spawned != 0 {
		t.Errorf("dropped spawns carried over: active = %d", e.ActiveCount())
	}
}

func TestSingleSlotLifecycle(t *testing.T) {
	cfg := testConfig(1)
	cfg.SpawnRate = 1000
	cfg.Lifetime = Range{1, 1}
	e := mustEmitter(t, cfg)

	e.Update(0.5)
	if e.ActiveCount() != 1 {
		t.Fatalf("active = %d, want 1", e.ActiveCount())
	}
	assertNear(t, "lifetime", firstParticle(t, e).Lifetime, 0.5)

	e.Update(0.6)
	if e.ActiveCount() != 0 {
		t.Fatalf("active = %d, want 0 after expiry", e.ActiveCount())
	}

	if n := e.Burst(1); n != 1 {
		t.Errorf("Burst(1) = %d, want 1 after slot freed", n)
	}
}

func TestBurstRespectsCap(t *testing.T) {
	e := mustEmitter(t, testConfig(10))
	if n := e.Burst(25); n != 10 {
		t.Errorf("Burst(25) = %d, want 10", n)
	}
	if n := e.Burst(1); n != 0 {
		t.Errorf("Burst(1) on full emitter = %d, want 0", n)
	}
	if e.ActiveCount() != 10 {
		t.Errorf("active = %d, want 10", e.ActiveCount())
	}
}

func TestMaxParticlesLoweredLive(t *testing.T) {
	e := mustEmitter(t, testConfig(10))
	e.Config().MaxParticles = 3
	if n := e.Burst(10); n != 3 {
		t.Errorf("Burst = %d, want 3 after lowering MaxParticles", n)
	}
}

func TestDisabledEmitterKeepsSimulating(t *testing.T) {
	cfg := testConfig(10)
	cfg.SpawnRate = 100
	cfg.Lifetime = Range{1, 1}
	cfg.Enabled = false
	e := mustEmitter(t, cfg)

	e.Update(0.5)
	if e.ActiveCount() != 0 {
		t.Fatalf("disabled emitter spawned %d", e.ActiveCount())
	}

	if n := e.Burst(2); n != 2 {
		t.Fatalf("Burst on disabled emitter = %d, want 2", n)
	}
	e.Update(0.5)
	assertNear(t, "lifetime", firstParticle(t, e).Lifetime, 0.5)
	e.Update(0.5)
	if e.ActiveCount() != 0 {
		t.Errorf("active = %d, want 0", e.ActiveCount())
	}
}

func TestNegativeDtIsZero(t *testing.T) {
	cfg := testConfig(10)
	cfg.SpawnRate = 100
	cfg.VelocityMin = Vec2{10, 10}
	cfg.VelocityMax = Vec2{10, 10}
	e := mustEmitter(t, cfg)
	e.Burst(1)
	before := firstParticle(t, e)

	e.Update(-1)

	after := firstParticle(t, e)
	if e.ActiveCount() != 1 {
		t.Errorf("active = %d, want 1", e.ActiveCount())
	}
	assertNear(t, "lifetime", after.Lifetime, before.Lifetime)
	assertNear(t, "x", after.Position.X, before.Position.X)
}

func TestNonFiniteDtIsZero(t *testing.T) {
	cfg := testConfig(10)
	cfg.SpawnRate = 100
	e := mustEmitter(t, cfg)
	e.Burst(1)
	before := firstParticle(t, e)

	for _, dt := range []float64{math.Inf(1), math.Inf(-1), math.NaN()} {
		e.Update(dt)
	}
	after := firstParticle(t, e)
	if e.ActiveCount() != 1 {
		t.Fatalf("active = %d, want 1", e.ActiveCount())
	}
	assertNear(t, "lifetime", after.Lifetime, before.Lifetime)

	// Rate spawning still works afterwards.
	e.Update(0.05)
	if e.ActiveCount() != 6 {
		t.Errorf("active = %d after finite update, want 6", e.ActiveCount())
	}
}

func TestSpawnPositionShapes(t *testing.T) {
	tests := []struct {
		name  string
		shape SpawnShape
		draws []float64
		wantX float64
		wantY float64
	}{
		{"point", SpawnPoint, []float64{0.5}, 100, 50},
		// r = sqrt(0.25)*20 = 10, angle = 0.5*2π = π.
		{"circle", SpawnCircle, []float64{0.25, 0.5}, 90, 50},
		// x = 0.25*100-50, y = 0.75*40-20.
		{"rectangle", SpawnRectangle, []float64{0.25, 0.75}, 75, 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(1)
			cfg.Position = Vec2{100, 50}
			cfg.Shape = tt.shape
			cfg.SpawnRadius = 20
			cfg.SpawnRect = Vec2{100, 40}
			cfg.Rand = &scriptedRand{floats: append(tt.draws, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5)}
			e := mustEmitter(t, cfg)
			e.Burst(1)

			p := firstParticle(t, e)
			assertNear(t, "x", p.Position.X, tt.wantX)
			assertNear(t, "y", p.Position.Y, tt.wantY)
		})
	}
}

func TestSpawnDrawOrder(t *testing.T) {
	texA, texB := fakeTexture{8, 8}, fakeTexture{16, 16}
	cfg := testConfig(1)
	cfg.VelocityMin = Vec2{-50, -50}
	cfg.VelocityMax = Vec2{50, 50}
	cfg.Lifetime = Range{1, 3}
	cfg.StartSize = Range{10, 20}
	cfg.EndSize = Range{0, 10}
	cfg.Rotation = Range{0, 360}
	cfg.AngularVelocity = Range{-90, 90}
	cfg.Textures = []Texture{texA, texB}
	rng := &scriptedRand{
		floats: []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7},
		ints:   []int{1},
	}
	cfg.Rand = rng
	e := mustEmitter(t, cfg)
	e.Burst(1)

	p := firstParticle(t, e)
	assertNear(t, "vx", p.Velocity.X, -40)
	assertNear(t, "vy", p.Velocity.Y, -30)
	assertNear(t, "lifetime", p.Lifetime, 1.6)
	assertNear(t, "startSize", p.StartSize, 14)
	assertNear(t, "endSize", p.EndSize, 5)
	assertNear(t, "rotation", p.Rotation, 216)
	assertNear(t, "angularVelocity", p.AngularVelocity, 36)
	if p.Texture != Texture(texB) {
		t.Errorf("texture = %v, want second texture", p.Texture)
	}
	if rng.fi != 7 || rng.ii != 1 {
		t.Errorf("draws = %d floats, %d ints; want 7, 1", rng.fi, rng.ii)
	}
}

func TestSpawnWithoutTexturesSkipsTextureDraw(t *testing.T) {
	cfg := testConfig(1)
	rng := &scriptedRand{floats: []float64{0.5}}
	cfg.Rand = rng
	e := mustEmitter(t, cfg)
	e.Burst(1)

	if rng.ii != 0 {
		t.Errorf("IntN called %d times without textures", rng.ii)
	}
	if firstParticle(t, e).Texture != nil {
		t.Error("texture should be nil")
	}
}

func TestModifierOrderMatters(t *testing.T) {
	run := func(mods ...Modifier) float64 {
		e := mustEmitter(t, testConfig(1))
		for _, m := range mods {
			e.AddModifier(m)
		}
		e.Burst(1)
		e.Update(0.5)
		return firstParticle(t, e).Velocity.Y
	}

	dragFirst := run(NewDrag(1), NewGravity(Vec2{0, 10}))
	gravityFirst := run(NewGravity(Vec2{0, 10}), NewDrag(1))

	assertNear(t, "drag then gravity", dragFirst, 5)
	assertNear(t, "gravity then drag", gravityFirst, 2.5)
}

func TestModifierKillReleasesSameUpdate(t *testing.T) {
	e := mustEmitter(t, testConfig(5))
	e.AddModifier(&killAt{x: 0})
	e.Burst(3)

	e.Update(0.1)
	if e.ActiveCount() != 0 {
		t.Errorf("active = %d, want 0", e.ActiveCount())
	}
	if e.pool.Free() != 5 {
		t.Errorf("pool free = %d, want 5", e.pool.Free())
	}
	if e.Stats().Released != 3 {
		t.Errorf("released = %d, want 3", e.Stats().Released)
	}
}

func TestParticlesKeepSpawnOrder(t *testing.T) {
	e := mustEmitter(t, testConfig(5))
	for _, x := range []float64{1, 2, 3} {
		e.Config().Position = Vec2{x, 0}
		e.Burst(1)
	}
	e.AddModifier(&killAt{x: 2})
	e.Update(0.1)

	var xs []float64
	for p := range e.Particles() {
		xs = append(xs, p.Position.X)
	}
	if len(xs) != 2 || xs[0] != 1 || xs[1] != 3 {
		t.Errorf("order = %v, want [1 3]", xs)
	}
}

func TestRemoveModifier(t *testing.T) {
	e := mustEmitter(t, testConfig(1))
	g := NewGravity(Vec2{0, 1})
	d := NewDrag(1)
	e.AddModifier(g)
	e.AddModifier(d)

	if !e.RemoveModifier(g) {
		t.Fatal("RemoveModifier should report true")
	}
	if e.RemoveModifier(g) {
		t.Error("second RemoveModifier should report false")
	}
	if mods := e.Modifiers(); len(mods) != 1 || mods[0] != Modifier(d) {
		t.Errorf("modifiers = %v", mods)
	}
}

func TestClearResetsEmitter(t *testing.T) {
	cfg := testConfig(10)
	cfg.SpawnRate = 8
	e := mustEmitter(t, cfg)
	e.Burst(4)
	e.Update(0.0625) // accumulator holds 0.5

	e.Clear()
	if e.ActiveCount() != 0 || e.pool.Free() != 10 {
		t.Fatalf("after Clear: active %d, free %d", e.ActiveCount(), e.pool.Free())
	}

	e.Update(0.0625)
	if e.ActiveCount() != 0 {
		t.Errorf("accumulator survived Clear: active = %d", e.ActiveCount())
	}
}

func TestLifetimeAndAlphaInvariants(t *testing.T) {
	cfg := DefaultEmitterConfig()
	cfg.MaxParticles = 200
	cfg.SpawnRate = 300
	cfg.Shape = SpawnCircle
	cfg.SpawnRadius = 30
	cfg.Rand = NewRand(99)
	e := mustEmitter(t, cfg)

	last := map[float64]float64{}
	for frame := 0; frame < 240; frame++ {
		e.Update(1.0 / 60)

		if got := e.ActiveCount() + e.pool.Free(); got != e.Capacity() {
			t.Fatalf("frame %d: active+free = %d, want %d", frame, got, e.Capacity())
		}
		seen := map[float64]float64{}
		for p := range e.Particles() {
			if p.Lifetime <= 0 || p.Lifetime > p.TotalLifetime {
				t.Fatalf("frame %d: lifetime %v outside (0, %v]", frame, p.Lifetime, p.TotalLifetime)
			}
			if want := lifeAlpha(p.Lifetime, p.TotalLifetime); p.Color.A != want {
				t.Fatalf("frame %d: alpha %d, want %d", frame, p.Color.A, want)
			}
			// TotalLifetime identifies a particle well enough here.
			if prev, ok := last[p.TotalLifetime]; ok && p.Lifetime > prev {
				t.Fatalf("frame %d: lifetime increased %v -> %v", frame, prev, p.Lifetime)
			}
			seen[p.TotalLifetime] = p.Lifetime
		}
		last = seen
	}
}

func TestDrawEmitsScaledQuads(t *testing.T) {
	tex := fakeTexture{16, 8}
	cfg := testConfig(4)
	cfg.Position = Vec2{30, 40}
	cfg.StartSize = Range{32, 32}
	cfg.EndSize = Range{32, 32}
	cfg.Rotation = Range{45, 45}
	cfg.StartColor = color.NRGBA{10, 20, 30, 255}
	cfg.Textures = []Texture{tex}
	e := mustEmitter(t, cfg)
	e.Burst(2)

	var r recordingRenderer
	e.Draw(&r)
	if len(r.quads) != 2 {
		t.Fatalf("quads = %d, want 2", len(r.quads))
	}
	q := r.quads[0]
	if q.src != tex.Bounds() {
		t.Errorf("src = %v, want full texture", q.src)
	}
	assertNear(t, "scale.X", q.scale.X, 2)
	assertNear(t, "scale.Y", q.scale.Y, 4)
	assertNear(t, "rotation", q.rotation, 45)
	if q.pos != (Vec2{30, 40}) {
		t.Errorf("pos = %v", q.pos)
	}
	if q.tint != (color.NRGBA{10, 20, 30, 255}) {
		t.Errorf("tint = %v", q.tint)
	}
}

func TestDrawSkipsUntexturedParticles(t *testing.T) {
	e := mustEmitter(t, testConfig(4))
	e.Burst(4)
	var r recordingRenderer
	e.Draw(&r)
	if len(r.quads) != 0 {
		t.Errorf("quads = %d, want 0", len(r.quads))
	}
}

func TestStatsLogValue(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, nil))
	l.Info("frame", slog.Any("stats", EmitterStats{Active: 3, Dropped: 2}))

	out := buf.String()
	for _, want := range []string{"stats.active=3", "stats.dropped=2"} {
		if !strings.Contains(out, want) {
			t.Errorf("log %q missing %q", out, want)
		}
	}
}

func TestDebugWarnsOncePerSaturation(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { SetLogger(nil) })

	cfg := testConfig(1)
	cfg.SpawnRate = 100
	cfg.Debug = true
	e := mustEmitter(t, cfg)
	for i := 0; i < 3; i++ {
		e.Update(0.1)
	}

	out := buf.String()
	if n := strings.Count(out, "emitter saturated"); n != 1 {
		t.Errorf("saturation warnings = %d, want 1", n)
	}
	if n := strings.Count(out, "emitter update"); n != 3 {
		t.Errorf("debug lines = %d, want 3", n)
	}
}

func TestZeroAllocsDuringUpdate(t *testing.T) {
	cfg := DefaultEmitterConfig()
	cfg.SpawnRate = 500
	cfg.Textures = []Texture{fakeTexture{8, 8}}
	e := mustEmitter(t, cfg)
	e.AddModifier(NewGravity(Vec2{0, 98}))
	e.AddModifier(NewDrag(0.5))
	e.AddModifier(NewWind(Vec2{10, 0}))
	e.AddModifier(NewNoise(1))
	e.AddModifier(NewColorOverLife(color.NRGBA{255, 255, 255, 255}, color.NRGBA{255, 0, 0, 255}))
	e.AddModifier(NewSizeOverLife())

	// Warmup: fill the pool.
	for i := 0; i < 100; i++ {
		e.Update(1.0 / 60.0)
	}

	allocs := testing.AllocsPerRun(100, func() {
		e.Update(1.0 / 60.0)
	})
	if allocs > 0 {
		t.Errorf("update allocs = %f, want 0", allocs)
	}

	var r countingRenderer
	allocs = testing.AllocsPerRun(100, func() {
		e.Draw(&r)
	})
	if allocs > 0 {
		t.Errorf("draw allocs = %f, want 0", allocs)
	}
}

// --- Benchmarks ---

func BenchmarkEmitterUpdate_1000(b *testing.B) {
	cfg := DefaultEmitterConfig()
	cfg.SpawnRate = 500
	e := mustEmitter(b, cfg)
	e.AddModifier(NewGravity(Vec2{0, 98}))
	for i := 0; i < 200; i++ {
		e.Update(1.0 / 60.0)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for b.Loop() {
		e.Update(1.0 / 60.0)
	}
}

func BenchmarkEmitterUpdate_10000(b *testing.B) {
	cfg := DefaultEmitterConfig()
	cfg.MaxParticles = 10000
	cfg.SpawnRate = 5000
	e := mustEmitter(b, cfg)
	e.AddModifier(NewGravity(Vec2{0, 98}))
	e.AddModifier(NewTurbulentField(1))
	for i := 0; i < 200; i++ {
		e.Update(1.0 / 60.0)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for b.Loop() {
		e.Update(1.0 / 60.0)
	}
}

func BenchmarkEmitterDraw_1000(b *testing.B) {
	cfg := DefaultEmitterConfig()
	cfg.SpawnRate = 5000
	cfg.Textures = []Texture{fakeTexture{8, 8}}
	e := mustEmitter(b, cfg)
	for i := 0; i < 200; i++ {
		e.Update(1.0 / 60.0)
	}
	var r countingRenderer

	b.ReportAllocs()
	b.ResetTimer()
	for b.Loop() {
		e.Draw(&r)
	}
}
