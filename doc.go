// Package ember is a CPU particle effects engine for [Ebitengine], with a
// small rigid-body physics world alongside.
//
// # Quick start
//
// Build an emitter from a config, add modifiers, and tick it from your game
// loop:
//
//	cfg := ember.DefaultEmitterConfig()
//	cfg.Position = ember.Vec2{X: 320, Y: 240}
//	cfg.Textures = []ember.Texture{spark}
//	fx, err := ember.NewParticleEmitter(cfg)
//	if err != nil {
//		return err
//	}
//	fx.AddModifier(ember.NewGravity(ember.Vec2{Y: 300}))
//	fx.AddModifier(ember.NewSizeOverLife())
//
//	func (g *Game) Update() error {
//		g.fx.Update(1.0 / 60)
//		return nil
//	}
//
//	func (g *Game) Draw(screen *ebiten.Image) {
//		g.fx.Draw(ember.NewEbitenRenderer(screen, ember.BlendAdd))
//	}
//
// # Emitters
//
// A [ParticleEmitter] owns a fixed [ParticlePool] sized by
// EmitterConfig.MaxParticles. Spawning and culling never allocate: dead
// particles return their slot to the pool at the end of the update in which
// they die. Each Update runs a spawn phase, where SpawnRate*dt accumulates
// and whole spawns are placed, followed by a simulation phase that ages each
// live particle, applies the built-in kinematics and then every [Modifier] in
// registration order.
//
// Particle alpha always follows the remaining life fraction unless a later
// modifier such as [AlphaFade] or [GradientColor] overrides it.
//
// # Modifiers
//
// Modifiers are small values implementing Apply(p *Particle, dt float64).
// The library covers forces ([Gravity], [Drag], [Wind], [Attractor],
// [Vortex], [Orbit], [Spring] and others), simplex noise fields ([Noise],
// [TurbulentField]), over-life curves ([ColorOverLife], [SizeOverLife],
// [RotationOverLife]) and bounds ([BoundaryBounce]). Modifiers with a clock
// also implement [Stepper] and are stepped once per update.
//
// # Presets
//
// Emitters can be described in YAML and built with [LoadPresets] or the
// embedded [DefaultPresets]. Custom modifier kinds are added with
// [RegisterModifier].
//
// # Physics
//
// [PhysicsWorld] integrates [RigidBody] values under gravity and resolves
// circle and box overlaps with impulses. A [CollisionSink] observes every
// contact, which is a convenient place to trigger particle bursts.
//
// # Rendering
//
// Emitters draw through the [Renderer] interface. [EbitenRenderer] is the
// default backend; package rlrender provides one for raylib.
//
// [Ebitengine]: https://ebitengine.org
package ember
