package ember

import (
	"image/color"
	"math"
)

// Particle holds per-particle simulation state. Records live inside a
// ParticlePool and are reset in place on acquisition; they are never
// allocated individually while an emitter runs.
type Particle struct {
	Position Vec2
	Velocity Vec2

	Lifetime      float64 // remaining lifetime in seconds
	TotalLifetime float64 // lifetime at spawn, for computing progress

	// Color is the tint. Alpha is rewritten from the remaining life fraction
	// on every built-in update.
	Color color.NRGBA

	Size      float64 // current edge length in world units
	StartSize float64
	EndSize   float64

	Rotation        float64 // degrees
	AngularVelocity float64 // degrees per second

	// Texture is drawn for this particle. Nil means the particle is
	// simulated but never drawn.
	Texture Texture

	active bool
}

// Alive reports whether the particle is active and has lifetime left.
func (p *Particle) Alive() bool {
	return p.active && p.Lifetime > 0
}

// Kill ends the particle's life. The owning emitter releases it at the end
// of the current update.
func (p *Particle) Kill() {
	p.Lifetime = 0
}

// Progress returns 1 - Lifetime/TotalLifetime clamped to [0, 1]: 0 at birth
// and 1 at death.
func (p *Particle) Progress() float64 {
	if p.TotalLifetime <= 0 {
		return 1
	}
	return clamp01(1 - p.Lifetime/p.TotalLifetime)
}

// reset re-initializes the record with fresh spawn parameters.
func (p *Particle) reset(pos, vel Vec2, lifetime float64, c color.NRGBA, tex Texture, startSize, endSize, rotation, angVel float64) {
	p.Position = pos
	p.Velocity = vel
	p.Lifetime = lifetime
	p.TotalLifetime = lifetime
	p.Color = c
	p.Color.A = 255
	p.Texture = tex
	p.Size = startSize
	p.StartSize = startSize
	p.EndSize = endSize
	p.Rotation = rotation
	p.AngularVelocity = angVel
	p.active = true
}

// basicUpdate applies the built-in kinematics after lifetime has been
// decremented: movement, spin, size interpolation and the life-coupled alpha.
func (p *Particle) basicUpdate(dt float64) {
	p.Position.X += p.Velocity.X * dt
	p.Position.Y += p.Velocity.Y * dt
	p.Rotation += p.AngularVelocity * dt

	p.Size = lerp(p.StartSize, p.EndSize, p.Progress())
	p.Color.A = lifeAlpha(p.Lifetime, p.TotalLifetime)
}

// lifeAlpha returns round(255 * lifetime/total) clamped to [0, 255].
func lifeAlpha(lifetime, total float64) uint8 {
	if total <= 0 {
		return 0
	}
	return uint8(math.Round(255 * clamp01(lifetime/total)))
}
