package ember

import "math"

// minDist is the distance below which directional forces are skipped.
const minDist = 1e-4

// Gravity adds a constant acceleration.
type Gravity struct {
	Acceleration Vec2 `yaml:"acceleration"`
}

// NewGravity returns a Gravity pulling with acceleration g.
func NewGravity(g Vec2) *Gravity { return &Gravity{Acceleration: g} }

// Apply implements Modifier.
func (m *Gravity) Apply(p *Particle, dt float64) {
	if !p.Alive() {
		return
	}
	p.Velocity.X += m.Acceleration.X * dt
	p.Velocity.Y += m.Acceleration.Y * dt
}

// Drag removes velocity linearly: v -= v * Coefficient * dt.
type Drag struct {
	Coefficient float64 `yaml:"coefficient"`
}

// NewDrag returns a Drag with coefficient c.
func NewDrag(c float64) *Drag { return &Drag{Coefficient: c} }

// Apply implements Modifier.
func (m *Drag) Apply(p *Particle, dt float64) {
	if !p.Alive() {
		return
	}
	k := m.Coefficient * dt
	p.Velocity.X -= p.Velocity.X * k
	p.Velocity.Y -= p.Velocity.Y * k
}

// VelocityDamping scales velocity by Factor^dt, so Factor is the fraction of
// velocity kept after one second.
type VelocityDamping struct {
	Factor float64 `yaml:"factor"`
}

// NewVelocityDamping returns a VelocityDamping keeping factor of the
// velocity per second.
func NewVelocityDamping(factor float64) *VelocityDamping {
	return &VelocityDamping{Factor: factor}
}

// Apply implements Modifier.
func (m *VelocityDamping) Apply(p *Particle, dt float64) {
	if !p.Alive() {
		return
	}
	d := math.Pow(m.Factor, dt)
	p.Velocity.X *= d
	p.Velocity.Y *= d
}

// Wind pushes particles with a base vector plus a sinusoidal gust along X.
// The gust clock advances once per emitter update.
type Wind struct {
	Base          Vec2    `yaml:"base"`
	GustStrength  float64 `yaml:"gustStrength"`
	GustFrequency float64 `yaml:"gustFrequency"` // Hz

	time float64
	gust float64
}

// NewWind returns a Wind blowing base with no gusts at 0.5 Hz.
func NewWind(base Vec2) *Wind {
	return &Wind{Base: base, GustFrequency: 0.5}
}

// Step advances the gust clock.
func (m *Wind) Step(dt float64) {
	m.time += dt
	m.gust = math.Sin(m.time*m.GustFrequency*2*math.Pi) * m.GustStrength
}

// Apply implements Modifier.
func (m *Wind) Apply(p *Particle, dt float64) {
	if !p.Alive() {
		return
	}
	p.Velocity.X += (m.Base.X + m.gust) * dt
	p.Velocity.Y += m.Base.Y * dt
}

// Attractor pulls particles toward each of Points with a force that falls
// off linearly to zero at Radius.
type Attractor struct {
	Points   []Vec2  `yaml:"points"`
	Strength float64 `yaml:"strength"`
	Radius   float64 `yaml:"radius"`
}

// NewAttractor returns an Attractor with strength 100 and radius 300.
func NewAttractor(points ...Vec2) *Attractor {
	return &Attractor{Points: points, Strength: 100, Radius: 300}
}

// Apply implements Modifier.
func (m *Attractor) Apply(p *Particle, dt float64) {
	if !p.Alive() {
		return
	}
	r2 := m.Radius * m.Radius
	for _, pt := range m.Points {
		dir := pt.Sub(p.Position)
		d2 := dir.LenSq()
		if d2 < minDist || d2 > r2 {
			continue
		}
		d := math.Sqrt(d2)
		f := m.Strength * (1 - d/m.Radius) * dt / d
		p.Velocity.X += dir.X * f
		p.Velocity.Y += dir.Y * f
	}
}

// inverseSquare pulls p toward center by strength/dist², skipping particles
// closer than minD or farther than maxD.
func inverseSquare(p *Particle, center Vec2, strength, minD, maxD, dt float64) {
	dir := center.Sub(p.Position)
	d2 := dir.LenSq()
	if d2 < minD*minD || d2 > maxD*maxD || d2 == 0 {
		return
	}
	d := math.Sqrt(d2)
	f := strength / d2 * dt / d
	p.Velocity.X += dir.X * f
	p.Velocity.Y += dir.Y * f
}

// MagneticField applies an inverse-square force toward Center. A negative
// Strength repels.
type MagneticField struct {
	Center      Vec2    `yaml:"center"`
	Strength    float64 `yaml:"strength"`
	MinDistance float64 `yaml:"minDistance"`
	MaxDistance float64 `yaml:"maxDistance"`
}

// NewMagneticField returns a field at center with strength 1000 acting
// between 10 and 400 units.
func NewMagneticField(center Vec2) *MagneticField {
	return &MagneticField{Center: center, Strength: 1000, MinDistance: 10, MaxDistance: 400}
}

// Apply implements Modifier.
func (m *MagneticField) Apply(p *Particle, dt float64) {
	if !p.Alive() {
		return
	}
	inverseSquare(p, m.Center, m.Strength, m.MinDistance, m.MaxDistance, dt)
}

// GravitationalWell is an attracting inverse-square well.
type GravitationalWell struct {
	Center      Vec2    `yaml:"center"`
	Gravity     float64 `yaml:"gravity"`
	MinDistance float64 `yaml:"minDistance"`
	MaxDistance float64 `yaml:"maxDistance"`
}

// NewGravitationalWell returns a well at center with gravity 5000 acting
// between 10 and 800 units.
func NewGravitationalWell(center Vec2) *GravitationalWell {
	return &GravitationalWell{Center: center, Gravity: 5000, MinDistance: 10, MaxDistance: 800}
}

// Apply implements Modifier.
func (m *GravitationalWell) Apply(p *Particle, dt float64) {
	if !p.Alive() {
		return
	}
	inverseSquare(p, m.Center, m.Gravity, m.MinDistance, m.MaxDistance, dt)
}

// radial returns the unit offset from center to p, its tangent (-y, x) and
// the distance. ok is false inside minDist or beyond maxD.
func radial(p *Particle, center Vec2, maxD float64) (offset, tangent Vec2, dist float64, ok bool) {
	off := p.Position.Sub(center)
	dist = off.Len()
	if dist < minDist || dist > maxD {
		return Vec2{}, Vec2{}, dist, false
	}
	offset = off.Scale(1 / dist)
	return offset, offset.Perp(), dist, true
}

// Vortex swirls particles around Center with a tangential force fading to
// zero at Radius, plus an optional constant InwardForce.
type Vortex struct {
	Center          Vec2    `yaml:"center"`
	AngularStrength float64 `yaml:"angularStrength"`
	InwardForce     float64 `yaml:"inwardForce"`
	Radius          float64 `yaml:"radius"`
}

// NewVortex returns a Vortex at center with strength 180 and radius 500.
func NewVortex(center Vec2) *Vortex {
	return &Vortex{Center: center, AngularStrength: 180, Radius: 500}
}

// Apply implements Modifier.
func (m *Vortex) Apply(p *Particle, dt float64) {
	if !p.Alive() {
		return
	}
	offset, tangent, d, ok := radial(p, m.Center, m.Radius)
	if !ok {
		return
	}
	f := m.AngularStrength * (1 - d/m.Radius) * dt
	p.Velocity.X += tangent.X * f
	p.Velocity.Y += tangent.Y * f
	if m.InwardForce != 0 {
		p.Velocity.X -= offset.X * m.InwardForce * dt
		p.Velocity.Y -= offset.Y * m.InwardForce * dt
	}
}

// Orbit accelerates particles tangentially in proportion to their distance,
// approximating rigid rotation at AngularVelocity degrees per second.
// RadiusCorrection pulls inward (positive) or pushes outward (negative).
type Orbit struct {
	Center           Vec2    `yaml:"center"`
	AngularVelocity  float64 `yaml:"angularVelocity"`
	RadiusCorrection float64 `yaml:"radiusCorrection"`
	MaxDistance      float64 `yaml:"maxDistance"`
}

// NewOrbit returns an Orbit at center turning 90°/s out to 500 units.
func NewOrbit(center Vec2) *Orbit {
	return &Orbit{Center: center, AngularVelocity: 90, MaxDistance: 500}
}

// Apply implements Modifier.
func (m *Orbit) Apply(p *Particle, dt float64) {
	if !p.Alive() {
		return
	}
	offset, tangent, d, ok := radial(p, m.Center, m.MaxDistance)
	if !ok {
		return
	}
	f := m.AngularVelocity * math.Pi / 180 * d * dt
	p.Velocity.X += tangent.X * f
	p.Velocity.Y += tangent.Y * f
	if math.Abs(m.RadiusCorrection) > 0.01 {
		p.Velocity.X -= offset.X * m.RadiusCorrection * dt
		p.Velocity.Y -= offset.Y * m.RadiusCorrection * dt
	}
}

// SpiralForce combines an outward radial and a tangential push, both fading
// linearly to zero at Radius.
type SpiralForce struct {
	Origin             Vec2    `yaml:"origin"`
	RadialStrength     float64 `yaml:"radialStrength"`
	TangentialStrength float64 `yaml:"tangentialStrength"`
	Radius             float64 `yaml:"radius"`
}

// NewSpiralForce returns a SpiralForce at origin with radial 200,
// tangential 100 and radius 400.
func NewSpiralForce(origin Vec2) *SpiralForce {
	return &SpiralForce{Origin: origin, RadialStrength: 200, TangentialStrength: 100, Radius: 400}
}

// Apply implements Modifier.
func (m *SpiralForce) Apply(p *Particle, dt float64) {
	if !p.Alive() {
		return
	}
	offset, tangent, d, ok := radial(p, m.Origin, m.Radius)
	if !ok {
		return
	}
	falloff := (1 - d/m.Radius) * dt
	p.Velocity.X += (offset.X*m.RadialStrength + tangent.X*m.TangentialStrength) * falloff
	p.Velocity.Y += (offset.Y*m.RadialStrength + tangent.Y*m.TangentialStrength) * falloff
}

// Spring pulls particles toward RestLength from Anchor with Hooke's law and
// then damps velocity by 1 - Damping*dt.
type Spring struct {
	Anchor     Vec2    `yaml:"anchor"`
	Stiffness  float64 `yaml:"stiffness"`
	Damping    float64 `yaml:"damping"`
	RestLength float64 `yaml:"restLength"`
}

// NewSpring returns a Spring at anchor with stiffness 10, damping 0.9 and
// rest length 50.
func NewSpring(anchor Vec2) *Spring {
	return &Spring{Anchor: anchor, Stiffness: 10, Damping: 0.9, RestLength: 50}
}

// Apply implements Modifier.
func (m *Spring) Apply(p *Particle, dt float64) {
	if !p.Alive() {
		return
	}
	dir := m.Anchor.Sub(p.Position)
	d := dir.Len()
	if d < minDist {
		return
	}
	f := (d - m.RestLength) * m.Stiffness * dt / d
	p.Velocity.X += dir.X * f
	p.Velocity.Y += dir.Y * f
	k := 1 - m.Damping*dt
	p.Velocity.X *= k
	p.Velocity.Y *= k
}

// ExplosionForce pushes particles away from Origin with a force fading to
// zero at Radius. With OneShot set it acts on every particle in range during
// a single update and then stays inert until Trigger is called.
type ExplosionForce struct {
	Origin   Vec2    `yaml:"origin"`
	Strength float64 `yaml:"strength"`
	Radius   float64 `yaml:"radius"`
	OneShot  bool    `yaml:"oneShot"`

	applied bool // pushed at least one particle this update
	fired   bool
}

// NewExplosionForce returns a one-shot explosion at origin with strength 800
// and radius 300.
func NewExplosionForce(origin Vec2) *ExplosionForce {
	return &ExplosionForce{Origin: origin, Strength: 800, Radius: 300, OneShot: true}
}

// Step latches a one-shot explosion after the update in which it fired.
func (m *ExplosionForce) Step(float64) {
	if m.applied {
		m.fired = true
	}
}

// Fired reports whether a one-shot explosion has been spent.
func (m *ExplosionForce) Fired() bool { return m.fired }

// Trigger re-arms the explosion, optionally at a new origin.
func (m *ExplosionForce) Trigger(origin Vec2) {
	m.Origin = origin
	m.applied = false
	m.fired = false
}

// Apply implements Modifier.
func (m *ExplosionForce) Apply(p *Particle, dt float64) {
	if !p.Alive() || (m.OneShot && m.fired) {
		return
	}
	offset, _, d, ok := radial(p, m.Origin, m.Radius)
	if !ok {
		return
	}
	f := m.Strength * (1 - d/m.Radius) * dt
	p.Velocity.X += offset.X * f
	p.Velocity.Y += offset.Y * f
	m.applied = true
}

// Oscillation adds sin(age*Frequency*2π)*Amplitude*dt along Axis to the
// position, or to the velocity when AffectVelocity is set.
type Oscillation struct {
	Axis           Vec2    `yaml:"axis"`
	Amplitude      float64 `yaml:"amplitude"`
	Frequency      float64 `yaml:"frequency"` // Hz
	AffectVelocity bool    `yaml:"affectVelocity"`
}

// NewOscillation returns a vertical position oscillation of amplitude 20 at 2 Hz.
func NewOscillation() *Oscillation {
	return &Oscillation{Axis: Vec2{0, 1}, Amplitude: 20, Frequency: 2}
}

// Apply implements Modifier.
func (m *Oscillation) Apply(p *Particle, dt float64) {
	if !p.Alive() {
		return
	}
	age := p.TotalLifetime - p.Lifetime
	o := math.Sin(age*m.Frequency*2*math.Pi) * m.Amplitude * dt
	if m.AffectVelocity {
		p.Velocity.X += m.Axis.X * o
		p.Velocity.Y += m.Axis.Y * o
		return
	}
	p.Position.X += m.Axis.X * o
	p.Position.Y += m.Axis.Y * o
}

// SineWaveMotion displaces position by sin(age*Frequency + Phase) *
// Amplitude * dt along Axis. Frequency is in radians per second.
type SineWaveMotion struct {
	Axis      Vec2    `yaml:"axis"`
	Amplitude float64 `yaml:"amplitude"`
	Frequency float64 `yaml:"frequency"`
	Phase     float64 `yaml:"phase"`
}

// NewSineWaveMotion returns a vertical wave with amplitude 10 at 3 rad/s.
func NewSineWaveMotion() *SineWaveMotion {
	return &SineWaveMotion{Axis: Vec2{0, 1}, Amplitude: 10, Frequency: 3}
}

// Apply implements Modifier.
func (m *SineWaveMotion) Apply(p *Particle, dt float64) {
	if !p.Alive() {
		return
	}
	age := p.TotalLifetime - p.Lifetime
	w := math.Sin(age*m.Frequency+m.Phase) * m.Amplitude * dt
	p.Position.X += m.Axis.X * w
	p.Position.Y += m.Axis.Y * w
}
