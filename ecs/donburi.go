// Package ecs provides ECS adapters for ember.
package ecs

import (
	"github.com/phanxgames/ember"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// EmitterData holds a particle emitter owned by an entity.
type EmitterData struct {
	FX    *ember.ParticleEmitter
	Blend ember.BlendMode
}

// BodyData holds a rigid body owned by an entity. The body's UserData is
// set to the entity so collisions can be mapped back.
type BodyData struct {
	Body *ember.RigidBody
}

// CollisionEvent is published for every contact found by a PhysicsWorld
// whose sink was created with NewCollisionSink. Normal points from A to B.
// Point is the midpoint between the two body positions.
type CollisionEvent struct {
	A, B     donburi.Entity
	Manifold ember.Manifold
	Point    ember.Vec2
}

// Emitter is the component type for particle emitters.
var Emitter = donburi.NewComponentType[EmitterData]()

// Body is the component type for rigid bodies.
var Body = donburi.NewComponentType[BodyData]()

// CollisionEventType is the Donburi event type for physics contacts.
// Subscribe to it and call ProcessEvents after stepping the world.
var CollisionEventType = events.NewEventType[CollisionEvent]()

// NewEmitterEntity creates an entity carrying fx.
func NewEmitterEntity(world donburi.World, fx *ember.ParticleEmitter, blend ember.BlendMode) donburi.Entity {
	ent := world.Create(Emitter)
	Emitter.SetValue(world.Entry(ent), EmitterData{FX: fx, Blend: blend})
	return ent
}

// NewBodyEntity creates an entity carrying b and adds b to pw.
func NewBodyEntity(world donburi.World, pw *ember.PhysicsWorld, b *ember.RigidBody) donburi.Entity {
	ent := world.Create(Body)
	Body.SetValue(world.Entry(ent), BodyData{Body: b})
	b.UserData = ent
	pw.AddBody(b)
	return ent
}

// RemoveBodyEntity removes the entity's body from pw and deletes the entity.
func RemoveBodyEntity(world donburi.World, pw *ember.PhysicsWorld, ent donburi.Entity) {
	if !world.Valid(ent) {
		return
	}
	entry := world.Entry(ent)
	if entry.HasComponent(Body) {
		pw.RemoveBody(Body.Get(entry).Body)
	}
	world.Remove(ent)
}

// UpdateEmitters advances every emitter in world by dt seconds.
func UpdateEmitters(world donburi.World, dt float64) {
	Emitter.Each(world, func(entry *donburi.Entry) {
		if fx := Emitter.Get(entry).FX; fx != nil {
			fx.Update(dt)
		}
	})
}

// DrawEmitters draws every emitter in world through r.
func DrawEmitters(world donburi.World, r ember.Renderer) {
	Emitter.Each(world, func(entry *donburi.Entry) {
		if fx := Emitter.Get(entry).FX; fx != nil {
			fx.Draw(r)
		}
	})
}

// NewCollisionSink returns a sink that publishes each contact to
// CollisionEventType. Bodies not created with NewBodyEntity are reported
// with donburi.Null.
func NewCollisionSink(world donburi.World) ember.CollisionSink {
	return func(a, b *ember.RigidBody, m ember.Manifold) {
		CollisionEventType.Publish(world, CollisionEvent{
			A:        entityOf(a),
			B:        entityOf(b),
			Manifold: m,
			Point:    a.Position.Add(b.Position).Scale(0.5),
		})
	}
}

func entityOf(b *ember.RigidBody) donburi.Entity {
	if ent, ok := b.UserData.(donburi.Entity); ok {
		return ent
	}
	return donburi.Null
}
