package ember

import (
	"math"
	"slices"
)

// DefaultRestitution is the bounce coefficient used by ResolveCollision.
const DefaultRestitution = 0.5

// RigidBody is a point mass with an optional collider. Static bodies ignore
// forces and integration and are treated as infinitely heavy in collisions.
type RigidBody struct {
	Position     Vec2
	Velocity     Vec2
	Acceleration Vec2
	Static       bool
	Collider     Collider

	// UserData is free for callers, e.g. to map bodies back to entities.
	UserData any

	mass float64
}

// NewRigidBody returns a body of the given mass. Non-positive masses become 1.
func NewRigidBody(mass float64) *RigidBody {
	if mass <= 0 {
		mass = 1
	}
	return &RigidBody{mass: mass}
}

// Mass returns the body's mass.
func (b *RigidBody) Mass() float64 {
	if b.mass <= 0 {
		return 1
	}
	return b.mass
}

// InvMass returns 1/Mass, or 0 for static bodies.
func (b *RigidBody) InvMass() float64 {
	if b.Static {
		return 0
	}
	return 1 / b.Mass()
}

// ApplyForce accumulates force/Mass into Acceleration until the next Integrate.
func (b *RigidBody) ApplyForce(force Vec2) {
	if b.Static {
		return
	}
	b.Acceleration = b.Acceleration.Add(force.Scale(1 / b.Mass()))
}

// Integrate advances the body with semi-implicit Euler and clears the
// accumulated acceleration.
func (b *RigidBody) Integrate(dt float64) {
	if b.Static {
		return
	}
	b.Velocity = b.Velocity.Add(b.Acceleration.Scale(dt))
	b.Position = b.Position.Add(b.Velocity.Scale(dt))
	b.Acceleration = Vec2{}
}

// ResolveCollision separates a and b along m and exchanges an impulse with
// DefaultRestitution.
func ResolveCollision(a, b *RigidBody, m Manifold) {
	resolve(a, b, m, DefaultRestitution)
}

func resolve(a, b *RigidBody, m Manifold, restitution float64) {
	invA, invB := a.InvMass(), b.InvMass()
	invSum := invA + invB
	if invSum == 0 {
		return
	}

	// Split the correction by opposing mass share, with a 1% overshoot so
	// resting contacts separate.
	corr := m.Normal.Scale(m.Penetration / invSum * 1.01)
	a.Position = a.Position.Sub(corr.Scale(invA))
	b.Position = b.Position.Add(corr.Scale(invB))

	rel := b.Velocity.Sub(a.Velocity)
	along := rel.Dot(m.Normal)
	if along > 0 {
		return
	}
	j := -(1 + restitution) * along / invSum
	impulse := m.Normal.Scale(j)
	a.Velocity = a.Velocity.Sub(impulse.Scale(invA))
	b.Velocity = b.Velocity.Add(impulse.Scale(invB))
}

// CollisionSink receives every contact found by PhysicsWorld.Step, before it
// is resolved.
type CollisionSink func(a, b *RigidBody, m Manifold)

// PhysicsWorld steps a set of rigid bodies under uniform gravity with
// all-pairs collision detection.
type PhysicsWorld struct {
	Gravity     Vec2
	Restitution float64

	bodies   []*RigidBody
	sink     CollisionSink
	contacts int
}

// NewPhysicsWorld returns a world with gravity (0, 980) and restitution 0.5.
func NewPhysicsWorld() *PhysicsWorld {
	return &PhysicsWorld{Gravity: Vec2{0, 980}, Restitution: DefaultRestitution}
}

// AddBody adds b unless it is already present.
func (w *PhysicsWorld) AddBody(b *RigidBody) {
	if slices.Contains(w.bodies, b) {
		return
	}
	w.bodies = append(w.bodies, b)
}

// RemoveBody removes b and reports whether it was present.
func (w *PhysicsWorld) RemoveBody(b *RigidBody) bool {
	i := slices.Index(w.bodies, b)
	if i < 0 {
		return false
	}
	w.bodies = slices.Delete(w.bodies, i, i+1)
	return true
}

// Bodies returns the bodies in insertion order. The returned slice MUST NOT
// be mutated.
func (w *PhysicsWorld) Bodies() []*RigidBody {
	return w.bodies
}

// SetCollisionSink installs fn to observe contacts. Nil removes it.
func (w *PhysicsWorld) SetCollisionSink(fn CollisionSink) {
	w.sink = fn
}

// Contacts returns the number of contacts resolved by the last Step.
func (w *PhysicsWorld) Contacts() int {
	return w.contacts
}

// Step applies gravity, integrates every body, then tests each pair once and
// resolves overlaps in insertion order. Negative or non-finite dt is treated
// as zero.
func (w *PhysicsWorld) Step(dt float64) {
	if dt < 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		dt = 0
	}
	for _, b := range w.bodies {
		if !b.Static {
			b.ApplyForce(w.Gravity.Scale(b.Mass()))
		}
		b.Integrate(dt)
	}

	w.contacts = 0
	for i := 0; i < len(w.bodies); i++ {
		a := w.bodies[i]
		if a.Collider == nil {
			continue
		}
		for j := i + 1; j < len(w.bodies); j++ {
			b := w.bodies[j]
			if b.Collider == nil || (a.Static && b.Static) {
				continue
			}
			if !a.Collider.AABB(a.Position).Intersects(b.Collider.AABB(b.Position)) {
				continue
			}
			m, ok := Collide(a, b)
			if !ok {
				continue
			}
			w.contacts++
			if w.sink != nil {
				w.sink(a, b, m)
			}
			resolve(a, b, m, w.Restitution)
		}
	}
}
