package ember

import "math"

// Collider is a shape attached to a RigidBody. Shapes are centered on the
// body position.
type Collider interface {
	// AABB returns the shape's bounding box with its body at pos.
	AABB(pos Vec2) Rect
}

// CircleCollider is a circle of Radius.
type CircleCollider struct {
	Radius float64
}

// AABB implements Collider.
func (c CircleCollider) AABB(pos Vec2) Rect {
	return Rect{X: pos.X - c.Radius, Y: pos.Y - c.Radius, Width: 2 * c.Radius, Height: 2 * c.Radius}
}

// RectCollider is an axis-aligned box of Width by Height.
type RectCollider struct {
	Width, Height float64
}

// AABB implements Collider.
func (r RectCollider) AABB(pos Vec2) Rect {
	return Rect{X: pos.X - r.Width/2, Y: pos.Y - r.Height/2, Width: r.Width, Height: r.Height}
}

// Manifold describes an overlap between two bodies. Normal is a unit vector
// pointing from the first body toward the second; Penetration is the overlap
// depth along it.
type Manifold struct {
	Normal      Vec2
	Penetration float64
}

// Collide tests a against b and reports the contact when their colliders
// overlap. Bodies without a collider, or with a collider type other than
// CircleCollider and RectCollider, never collide. Touching shapes do not
// count as overlapping.
func Collide(a, b *RigidBody) (Manifold, bool) {
	if a.Collider == nil || b.Collider == nil {
		return Manifold{}, false
	}
	switch ca := a.Collider.(type) {
	case CircleCollider:
		switch cb := b.Collider.(type) {
		case CircleCollider:
			return circleCircle(a.Position, ca.Radius, b.Position, cb.Radius)
		case RectCollider:
			return circleRect(a.Position, ca.Radius, b.Position, cb)
		}
	case RectCollider:
		switch cb := b.Collider.(type) {
		case RectCollider:
			return rectRect(a.Position, ca, b.Position, cb)
		case CircleCollider:
			m, ok := circleRect(b.Position, cb.Radius, a.Position, ca)
			m.Normal = m.Normal.Scale(-1)
			return m, ok
		}
	}
	return Manifold{}, false
}

func circleCircle(pa Vec2, ra float64, pb Vec2, rb float64) (Manifold, bool) {
	diff := pb.Sub(pa)
	dist := diff.Len()
	pen := ra + rb - dist
	if pen <= 0 {
		return Manifold{}, false
	}
	n := Vec2{1, 0}
	if dist > 0 {
		n = diff.Scale(1 / dist)
	}
	return Manifold{Normal: n, Penetration: pen}, true
}

func rectRect(pa Vec2, ra RectCollider, pb Vec2, rb RectCollider) (Manifold, bool) {
	dx := pb.X - pa.X
	dy := pb.Y - pa.Y
	overlapX := (ra.Width+rb.Width)/2 - math.Abs(dx)
	overlapY := (ra.Height+rb.Height)/2 - math.Abs(dy)
	if overlapX <= 0 || overlapY <= 0 {
		return Manifold{}, false
	}
	if overlapX < overlapY {
		return Manifold{Normal: Vec2{sign(dx), 0}, Penetration: overlapX}, true
	}
	return Manifold{Normal: Vec2{0, sign(dy)}, Penetration: overlapY}, true
}

// circleRect returns the contact with the normal pointing from the circle
// at c toward the rect at pr.
func circleRect(c Vec2, radius float64, pr Vec2, r RectCollider) (Manifold, bool) {
	hw, hh := r.Width/2, r.Height/2
	local := c.Sub(pr)

	if math.Abs(local.X) <= hw && math.Abs(local.Y) <= hh {
		// Center inside the box or on its edge: exit through the nearest edge.
		ex := hw - math.Abs(local.X)
		ey := hh - math.Abs(local.Y)
		if ex < ey {
			return Manifold{Normal: Vec2{-sign(local.X), 0}, Penetration: radius + ex}, true
		}
		return Manifold{Normal: Vec2{0, -sign(local.Y)}, Penetration: radius + ey}, true
	}

	closest := Vec2{
		X: math.Max(-hw, math.Min(hw, local.X)),
		Y: math.Max(-hh, math.Min(hh, local.Y)),
	}
	d := closest.Sub(local)
	dist := d.Len()
	if dist >= radius || dist == 0 {
		return Manifold{}, false
	}
	return Manifold{Normal: d.Scale(1 / dist), Penetration: radius - dist}, true
}

// sign returns -1 for negative v and 1 otherwise.
func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
