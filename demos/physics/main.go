// physics drops balls and crates onto a floor. Every hard contact throws a
// small shower of sparks from the contact point, and clicking detonates an
// explosion that flings nearby bodies and the live sparks outward.
package main

import (
	"image/color"
	"log"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"

	"github.com/phanxgames/ember"
	"github.com/phanxgames/ember/ecs"
)

const (
	screenW    = 1280
	screenH    = 720
	shapeCount = 60
	tickDt     = 1.0 / 60

	// Contacts slower than this along the normal make no sparks.
	sparkSpeed = 120.0

	blastRadius = 350.0
	blastForce  = 900.0
)

type game struct {
	world   donburi.World
	physics *ember.PhysicsWorld
	sparks  *ember.ParticleEmitter
	blast   *ember.ExplosionForce
	overlay *ember.Overlay
}

func main() {
	g, err := newGame()
	if err != nil {
		log.Fatal(err)
	}
	ebiten.SetWindowTitle("Ember - Physics")
	ebiten.SetWindowSize(screenW, screenH)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}

func newGame() (*game, error) {
	presets, err := ember.DefaultPresets()
	if err != nil {
		return nil, err
	}
	sparks, err := presets.Emitter("sparks", []ember.Texture{ember.NewSoftDot(16)})
	if err != nil {
		return nil, err
	}

	g := &game{
		world:   donburi.NewWorld(),
		physics: ember.NewPhysicsWorld(),
		sparks:  sparks,
		overlay: ember.NewOverlay(10, 10),
	}
	sparks.AddModifier(ember.NewBoundaryBounce(ember.Rect{Width: screenW, Height: screenH}))

	ecs.NewEmitterEntity(g.world, sparks, ember.BlendAdd)
	g.physics.SetCollisionSink(ecs.NewCollisionSink(g.world))
	ecs.CollisionEventType.Subscribe(g.world, g.onCollision)

	g.addWalls()
	for range shapeCount {
		b := ember.NewRigidBody(1)
		b.Position = ember.Vec2{X: 60 + rand.Float64()*(screenW-120), Y: 40 + rand.Float64()*screenH/2}
		b.Velocity = ember.Vec2{X: (rand.Float64() - 0.5) * 200}
		if rand.IntN(2) == 0 {
			r := 12 + rand.Float64()*18
			b.Collider = ember.CircleCollider{Radius: r}
		} else {
			s := 24 + rand.Float64()*30
			b.Collider = ember.RectCollider{Width: s, Height: s}
		}
		ecs.NewBodyEntity(g.world, g.physics, b)
	}
	return g, nil
}

func (g *game) addWalls() {
	walls := []struct{ x, y, w, h float64 }{
		{screenW / 2, screenH + 20, screenW, 60},
		{-20, screenH / 2, 60, screenH},
		{screenW + 20, screenH / 2, 60, screenH},
	}
	for _, w := range walls {
		b := ember.NewRigidBody(1)
		b.Static = true
		b.Position = ember.Vec2{X: w.x, Y: w.y}
		b.Collider = ember.RectCollider{Width: w.w, Height: w.h}
		ecs.NewBodyEntity(g.world, g.physics, b)
	}
}

func (g *game) onCollision(_ donburi.World, e ecs.CollisionEvent) {
	a := ecs.Body.Get(g.world.Entry(e.A)).Body
	b := ecs.Body.Get(g.world.Entry(e.B)).Body
	// Events are processed after the step, so the pair is already
	// separating at restitution times the impact speed.
	sep := b.Velocity.Sub(a.Velocity).Dot(e.Manifold.Normal)
	if sep < sparkSpeed*g.physics.Restitution {
		return
	}
	g.sparks.Config().Position = e.Point
	g.sparks.Burst(int(sep / 20))
}

func (g *game) Update() error {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		g.explode(ember.Vec2{X: float64(x), Y: float64(y)})
	}

	g.physics.Step(tickDt)
	ecs.CollisionEventType.ProcessEvents(g.world)
	ecs.UpdateEmitters(g.world, tickDt)
	g.overlay.Update(tickDt, g.sparks.Stats())
	return nil
}

// explode pushes bodies away from origin with a linear falloff and re-arms
// the spark blast at the same point.
func (g *game) explode(origin ember.Vec2) {
	for _, b := range g.physics.Bodies() {
		if b.Static {
			continue
		}
		d := b.Position.Sub(origin)
		dist := d.Len()
		if dist > blastRadius || dist < 0.1 {
			continue
		}
		impulse := d.Scale(blastForce * (1 - dist/blastRadius) / dist)
		b.Velocity = b.Velocity.Add(impulse.Scale(b.InvMass()))
	}
	if g.blast == nil {
		g.blast = ember.NewExplosionForce(origin)
		g.blast.Strength = blastForce
		g.blast.Radius = blastRadius
		g.sparks.AddModifier(g.blast)
		return
	}
	g.blast.Trigger(origin)
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(color.NRGBA{15, 15, 23, 255})
	for _, b := range g.physics.Bodies() {
		if b.Static {
			continue
		}
		x, y := float32(b.Position.X), float32(b.Position.Y)
		switch c := b.Collider.(type) {
		case ember.CircleCollider:
			vector.DrawFilledCircle(screen, x, y, float32(c.Radius), color.NRGBA{90, 160, 230, 255}, true)
		case ember.RectCollider:
			w, h := float32(c.Width), float32(c.Height)
			vector.DrawFilledRect(screen, x-w/2, y-h/2, w, h, color.NRGBA{220, 150, 80, 255}, true)
		}
	}
	ecs.DrawEmitters(g.world, ember.NewEbitenRenderer(screen, ember.BlendAdd))
	g.overlay.Draw(screen)
}

func (g *game) Layout(_, _ int) (int, int) {
	return screenW, screenH
}
