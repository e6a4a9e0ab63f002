package ecs

import (
	"image"
	"image/color"
	"testing"

	"github.com/phanxgames/ember"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

type fakeTexture struct{}

func (fakeTexture) Bounds() image.Rectangle { return image.Rect(0, 0, 4, 4) }

type countingRenderer struct{ n int }

func (r *countingRenderer) DrawTexturedQuad(ember.Texture, image.Rectangle, ember.Vec2, color.NRGBA, float64, ember.Vec2) {
	r.n++
}

func newEmitter(t *testing.T) *ember.ParticleEmitter {
	t.Helper()
	cfg := ember.DefaultEmitterConfig()
	cfg.MaxParticles = 8
	cfg.SpawnRate = 0
	cfg.Lifetime = ember.Range{Min: 5, Max: 5}
	cfg.Textures = []ember.Texture{fakeTexture{}}
	cfg.Rand = ember.NewRand(1)
	fx, err := ember.NewParticleEmitter(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return fx
}

func TestUpdateAndDrawEmitters(t *testing.T) {
	world := donburi.NewWorld()
	a, b := newEmitter(t), newEmitter(t)
	NewEmitterEntity(world, a, ember.BlendAdd)
	NewEmitterEntity(world, b, ember.BlendNormal)
	a.Burst(3)
	b.Burst(2)

	UpdateEmitters(world, 0.1)
	if a.ActiveCount() != 3 || b.ActiveCount() != 2 {
		t.Fatalf("active = %d, %d", a.ActiveCount(), b.ActiveCount())
	}

	r := &countingRenderer{}
	DrawEmitters(world, r)
	if r.n != 5 {
		t.Errorf("quads = %d, want 5", r.n)
	}
}

func TestEmitterComponentRoundTrip(t *testing.T) {
	world := donburi.NewWorld()
	fx := newEmitter(t)
	ent := NewEmitterEntity(world, fx, ember.BlendScreen)

	data := Emitter.Get(world.Entry(ent))
	if data.FX != fx || data.Blend != ember.BlendScreen {
		t.Errorf("component = %+v", data)
	}
}

func TestCollisionSinkPublishesEntities(t *testing.T) {
	world := donburi.NewWorld()
	pw := ember.NewPhysicsWorld()
	pw.Gravity = ember.Vec2{}
	pw.SetCollisionSink(NewCollisionSink(world))

	ball := ember.NewRigidBody(1)
	ball.Collider = ember.CircleCollider{Radius: 5}
	floor := ember.NewRigidBody(1)
	floor.Position = ember.Vec2{Y: 8}
	floor.Collider = ember.RectCollider{Width: 20, Height: 10}
	floor.Static = true

	ballEnt := NewBodyEntity(world, pw, ball)
	floorEnt := NewBodyEntity(world, pw, floor)

	var received []CollisionEvent
	CollisionEventType.Subscribe(world, func(w donburi.World, e CollisionEvent) {
		received = append(received, e)
	})

	pw.Step(0)
	if len(received) != 0 {
		t.Fatal("events should be queued until processed")
	}
	CollisionEventType.ProcessEvents(world)

	if len(received) != 1 {
		t.Fatalf("expected 1 event, got %d", len(received))
	}
	e := received[0]
	if e.A != ballEnt || e.B != floorEnt {
		t.Errorf("entities = %v, %v", e.A, e.B)
	}
	if e.Manifold.Normal != (ember.Vec2{Y: 1}) {
		t.Errorf("normal = %v", e.Manifold.Normal)
	}
	if e.Point != (ember.Vec2{Y: 4}) {
		t.Errorf("point = %v, want (0, 4)", e.Point)
	}
}

func TestCollisionSinkForeignBodies(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewCollisionSink(world)

	var got CollisionEvent
	CollisionEventType.Subscribe(world, func(w donburi.World, e CollisionEvent) {
		got = e
	})
	sink(ember.NewRigidBody(1), ember.NewRigidBody(1), ember.Manifold{Penetration: 1})
	events.ProcessAllEvents(world)

	if got.A != donburi.Null || got.B != donburi.Null {
		t.Errorf("entities = %v, %v, want Null", got.A, got.B)
	}
	if got.Manifold.Penetration != 1 {
		t.Errorf("penetration = %v", got.Manifold.Penetration)
	}
}

func TestRemoveBodyEntity(t *testing.T) {
	world := donburi.NewWorld()
	pw := ember.NewPhysicsWorld()
	b := ember.NewRigidBody(1)
	ent := NewBodyEntity(world, pw, b)

	RemoveBodyEntity(world, pw, ent)
	if len(pw.Bodies()) != 0 {
		t.Errorf("bodies = %d, want 0", len(pw.Bodies()))
	}
	if world.Valid(ent) {
		t.Error("entity should be removed")
	}
	RemoveBodyEntity(world, pw, ent)
}
