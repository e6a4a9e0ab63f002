// Package ecs provides [Donburi] adapters for ember emitters and physics.
//
// Emitters and rigid bodies are attached to entities as components, and
// physics contacts are published as typed events:
//
//	world := donburi.NewWorld()
//	pw := ember.NewPhysicsWorld()
//	pw.SetCollisionSink(ecs.NewCollisionSink(world))
//	ecs.CollisionEventType.Subscribe(world, onHit)
//
//	// each tick
//	pw.Step(dt)
//	ecs.UpdateEmitters(world, dt)
//	ecs.CollisionEventType.ProcessEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
