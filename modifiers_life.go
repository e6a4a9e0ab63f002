package ember

import (
	"image/color"
	"math"
)

// ColorOverLife blends the tint's RGB from Start to End over the particle's
// life. Alpha is left to the built-in life fade.
type ColorOverLife struct {
	Start color.NRGBA `yaml:"start"`
	End   color.NRGBA `yaml:"end"`
	Curve `yaml:",inline"`
}

// NewColorOverLife returns a linear blend from start to end.
func NewColorOverLife(start, end color.NRGBA) *ColorOverLife {
	return &ColorOverLife{Start: start, End: end}
}

// Apply implements Modifier.
func (m *ColorOverLife) Apply(p *Particle, _ float64) {
	if !p.Alive() {
		return
	}
	t := m.At(p.Progress())
	p.Color.R = lerpByte(m.Start.R, m.End.R, t)
	p.Color.G = lerpByte(m.Start.G, m.End.G, t)
	p.Color.B = lerpByte(m.Start.B, m.End.B, t)
}

// GradientStop is a color at a life position in [0, 1].
type GradientStop struct {
	Position float64     `yaml:"position"`
	Color    color.NRGBA `yaml:"color"`
}

// GradientColor sets the whole tint, alpha included, from a multi-stop
// gradient sampled at life progress. Stops must be sorted by Position; fewer
// than two stops disables the modifier.
type GradientColor struct {
	Stops []GradientStop `yaml:"stops"`
}

// NewGradientColor returns a gradient over stops.
func NewGradientColor(stops ...GradientStop) *GradientColor {
	return &GradientColor{Stops: stops}
}

// Apply implements Modifier.
func (m *GradientColor) Apply(p *Particle, _ float64) {
	if !p.Alive() || len(m.Stops) < 2 {
		return
	}
	t := p.Progress()
	lower, upper := m.Stops[0], m.Stops[len(m.Stops)-1]
	for i := 0; i < len(m.Stops)-1; i++ {
		if t >= m.Stops[i].Position && t <= m.Stops[i+1].Position {
			lower, upper = m.Stops[i], m.Stops[i+1]
			break
		}
	}
	var local float64
	if span := upper.Position - lower.Position; span > 0 {
		local = clamp01((t - lower.Position) / span)
	}
	p.Color = color.NRGBA{
		R: lerpByte(lower.Color.R, upper.Color.R, local),
		G: lerpByte(lower.Color.G, upper.Color.G, local),
		B: lerpByte(lower.Color.B, upper.Color.B, local),
		A: lerpByte(lower.Color.A, upper.Color.A, local),
	}
}

// SizeOverLife sets Size to StartSize times a multiplier blended from
// StartMultiplier to EndMultiplier. It overrides the built-in size lerp.
type SizeOverLife struct {
	StartMultiplier float64 `yaml:"startMultiplier"`
	EndMultiplier   float64 `yaml:"endMultiplier"`
	Curve           `yaml:",inline"`
}

// NewSizeOverLife returns a smoothstepped shrink from full size to nothing.
func NewSizeOverLife() *SizeOverLife {
	return &SizeOverLife{StartMultiplier: 1, Curve: Curve{Smooth: true}}
}

// Apply implements Modifier.
func (m *SizeOverLife) Apply(p *Particle, _ float64) {
	if !p.Alive() {
		return
	}
	t := m.At(p.Progress())
	p.Size = p.StartSize * lerp(m.StartMultiplier, m.EndMultiplier, t)
}

// RotationOverLife sets Rotation directly, blending from Start to End degrees.
// Any angular velocity is overridden.
type RotationOverLife struct {
	Start float64 `yaml:"start"`
	End   float64 `yaml:"end"`
	Curve `yaml:",inline"`
}

// NewRotationOverLife returns a smoothstepped full turn, 0 to 360 degrees.
func NewRotationOverLife() *RotationOverLife {
	return &RotationOverLife{End: 360, Curve: Curve{Smooth: true}}
}

// Apply implements Modifier.
func (m *RotationOverLife) Apply(p *Particle, _ float64) {
	if !p.Alive() {
		return
	}
	p.Rotation = lerp(m.Start, m.End, m.At(p.Progress()))
}

// AngularVelocityOverLife sets AngularVelocity, blending from Start to End
// degrees per second.
type AngularVelocityOverLife struct {
	Start float64 `yaml:"start"`
	End   float64 `yaml:"end"`
	Curve `yaml:",inline"`
}

// NewAngularVelocityOverLife returns a linear blend from start to end.
func NewAngularVelocityOverLife(start, end float64) *AngularVelocityOverLife {
	return &AngularVelocityOverLife{Start: start, End: end}
}

// Apply implements Modifier.
func (m *AngularVelocityOverLife) Apply(p *Particle, _ float64) {
	if !p.Alive() {
		return
	}
	p.AngularVelocity = lerp(m.Start, m.End, m.At(p.Progress()))
}

// AlphaFade replaces the built-in linear fade with a fade in over the first
// FadeIn fraction of life and a fade out over the last FadeOut fraction,
// holding MaxAlpha in between.
type AlphaFade struct {
	FadeIn   float64 `yaml:"fadeIn"`
	FadeOut  float64 `yaml:"fadeOut"`
	MaxAlpha uint8   `yaml:"maxAlpha"`
}

// NewAlphaFade returns a fade with the given in and out fractions at full opacity.
func NewAlphaFade(in, out float64) *AlphaFade {
	return &AlphaFade{FadeIn: in, FadeOut: out, MaxAlpha: 255}
}

// Apply implements Modifier.
func (m *AlphaFade) Apply(p *Particle, _ float64) {
	if !p.Alive() {
		return
	}
	t := p.Progress()
	f := 1.0
	if m.FadeIn > 0 && t < m.FadeIn {
		f = t / m.FadeIn
	}
	if m.FadeOut > 0 && 1-t < m.FadeOut {
		f = math.Min(f, (1-t)/m.FadeOut)
	}
	p.Color.A = uint8(math.Round(float64(m.MaxAlpha) * clamp01(f)))
}

// lerpByte blends two channel values and rounds. Eased t outside [0, 1]
// saturates at the nearer endpoint instead of wrapping.
func lerpByte(a, b uint8, t float64) uint8 {
	lo, hi := float64(min(a, b)), float64(max(a, b))
	v := float64(a) + (float64(b)-float64(a))*t
	return uint8(math.Round(math.Max(lo, math.Min(hi, v))))
}
