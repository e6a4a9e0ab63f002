package ember

// BoundaryBounce keeps particles inside Bounds, inset by the particle size,
// reflecting the crossing velocity component scaled by BounceFactor.
type BoundaryBounce struct {
	Bounds       Rect    `yaml:"bounds"`
	BounceFactor float64 `yaml:"bounceFactor"`
}

// NewBoundaryBounce returns a bounce inside bounds keeping 80% of the speed.
func NewBoundaryBounce(bounds Rect) *BoundaryBounce {
	return &BoundaryBounce{Bounds: bounds, BounceFactor: 0.8}
}

// Apply implements Modifier.
func (m *BoundaryBounce) Apply(p *Particle, _ float64) {
	if !p.Alive() {
		return
	}
	b := m.Bounds
	inner := Rect{X: b.X + p.Size, Y: b.Y + p.Size, Width: b.Width - 2*p.Size, Height: b.Height - 2*p.Size}
	if inner.Contains(p.Position.X, p.Position.Y) {
		return
	}
	switch {
	case p.Position.X-p.Size < b.Left():
		p.Position.X = b.Left() + p.Size
		p.Velocity.X = -p.Velocity.X * m.BounceFactor
	case p.Position.X+p.Size > b.Right():
		p.Position.X = b.Right() - p.Size
		p.Velocity.X = -p.Velocity.X * m.BounceFactor
	}
	switch {
	case p.Position.Y-p.Size < b.Top():
		p.Position.Y = b.Top() + p.Size
		p.Velocity.Y = -p.Velocity.Y * m.BounceFactor
	case p.Position.Y+p.Size > b.Bottom():
		p.Position.Y = b.Bottom() - p.Size
		p.Velocity.Y = -p.Velocity.Y * m.BounceFactor
	}
}

// Noise perturbs velocity with simplex noise sampled along each axis against
// a clock that advances by dt*TimeScale per emitter update.
type Noise struct {
	Strength  float64 `yaml:"strength"`
	Frequency float64 `yaml:"frequency"`
	TimeScale float64 `yaml:"timeScale"`
	Seed      int64   `yaml:"seed"`

	// Source overrides the simplex field built from Seed.
	Source NoiseSource `yaml:"-"`

	elapsed float64
}

// NewNoise returns a Noise with strength 30, frequency 0.5 and time scale 1.
func NewNoise(seed int64) *Noise {
	return &Noise{Strength: 30, Frequency: 0.5, TimeScale: 1, Seed: seed}
}

func (m *Noise) source() NoiseSource {
	if m.Source == nil {
		m.Source = NewSimplexNoise(m.Seed)
	}
	return m.Source
}

// Step advances the noise clock.
func (m *Noise) Step(dt float64) {
	m.elapsed += dt * m.TimeScale
}

// Apply implements Modifier.
func (m *Noise) Apply(p *Particle, dt float64) {
	if !p.Alive() {
		return
	}
	n := m.source()
	nx := n.Noise2(p.Position.X*m.Frequency, m.elapsed)
	ny := n.Noise2(p.Position.Y*m.Frequency, m.elapsed+100)
	p.Velocity.X += nx * m.Strength * dt
	p.Velocity.Y += ny * m.Strength * dt
}

// TurbulentField pushes particles along a 2D simplex flow field sampled at
// their position. The field drifts along one noise axis at TimeScale units
// per second; a zero TimeScale gives a static field.
type TurbulentField struct {
	Strength  float64 `yaml:"strength"`
	Frequency float64 `yaml:"frequency"`
	TimeScale float64 `yaml:"timeScale"`
	Seed      int64   `yaml:"seed"`

	// Source overrides the simplex field built from Seed.
	Source NoiseSource `yaml:"-"`

	time float64
}

// NewTurbulentField returns a field with strength 50, frequency 0.05 and
// time scale 0.5.
func NewTurbulentField(seed int64) *TurbulentField {
	return &TurbulentField{Strength: 50, Frequency: 0.05, TimeScale: 0.5, Seed: seed}
}

func (m *TurbulentField) source() NoiseSource {
	if m.Source == nil {
		m.Source = NewSimplexNoise(m.Seed)
	}
	return m.Source
}

// Step advances the field's drift.
func (m *TurbulentField) Step(dt float64) {
	m.time += dt * m.TimeScale
}

// Apply implements Modifier.
func (m *TurbulentField) Apply(p *Particle, dt float64) {
	if !p.Alive() {
		return
	}
	n := m.source()
	x := p.Position.X * m.Frequency
	y := p.Position.Y * m.Frequency
	nx := n.Noise2(x, y+m.time)
	ny := n.Noise2(y+100, x+m.time)
	p.Velocity.X += nx * m.Strength * dt
	p.Velocity.Y += ny * m.Strength * dt
}
