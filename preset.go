package ember

import (
	_ "embed"
	"errors"
	"fmt"
	"image/color"
	"maps"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed presets.yaml
var defaultPresetsYAML []byte

var (
	// ErrUnknownModifier is returned when a preset names a modifier kind
	// that has not been registered.
	ErrUnknownModifier = errors.New("ember: unknown modifier kind")
	// ErrUnknownPreset is returned when a preset name is not in the set.
	ErrUnknownPreset = errors.New("ember: unknown preset")
	// ErrUnknownEasing is returned when a preset names an easing that
	// Easing does not know.
	ErrUnknownEasing = errors.New("ember: unknown easing")
)

// Preset is the YAML form of an emitter configuration plus its modifier
// pipeline.
type Preset struct {
	Position        Vec2        `yaml:"position"`
	MaxParticles    int         `yaml:"maxParticles"`
	SpawnRate       float64     `yaml:"spawnRate"`
	Shape           string      `yaml:"shape"`
	SpawnRadius     float64     `yaml:"spawnRadius"`
	SpawnRect       Vec2        `yaml:"spawnRect"`
	VelocityMin     Vec2        `yaml:"velocityMin"`
	VelocityMax     Vec2        `yaml:"velocityMax"`
	Lifetime        Range       `yaml:"lifetime"`
	StartSize       Range       `yaml:"startSize"`
	EndSize         Range       `yaml:"endSize"`
	Rotation        Range       `yaml:"rotation"`
	AngularVelocity Range       `yaml:"angularVelocity"`
	StartColor      color.NRGBA `yaml:"startColor"`
	Blend           string      `yaml:"blend"`
	Disabled        bool        `yaml:"disabled"`
	Seed            *uint64     `yaml:"seed"`
	Debug           bool        `yaml:"debug"`

	Modifiers []ModifierSpec `yaml:"modifiers"`
}

// ModifierSpec names a registered modifier kind. Params are decoded over the
// kind's defaults, so only the fields that differ need to be given.
type ModifierSpec struct {
	Kind   string    `yaml:"kind"`
	Ease   string    `yaml:"ease"`
	Params yaml.Node `yaml:"params"`
}

// PresetSet maps preset names to presets.
type PresetSet map[string]Preset

type presetFile struct {
	Presets PresetSet `yaml:"presets"`
}

// LoadPresets parses a presets document and checks that every modifier kind
// and easing it names is known.
func LoadPresets(data []byte) (PresetSet, error) {
	var f presetFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("ember: parse presets: %w", err)
	}
	for _, name := range slices.Sorted(maps.Keys(f.Presets)) {
		p := f.Presets[name]
		if _, err := parseShape(p.Shape); err != nil {
			return nil, fmt.Errorf("ember: preset %q: %w", name, err)
		}
		if _, err := parseBlend(p.Blend); err != nil {
			return nil, fmt.Errorf("ember: preset %q: %w", name, err)
		}
		if _, err := p.buildModifiers(); err != nil {
			return nil, fmt.Errorf("ember: preset %q: %w", name, err)
		}
	}
	if f.Presets == nil {
		f.Presets = PresetSet{}
	}
	return f.Presets, nil
}

var defaultPresets = sync.OnceValues(func() (PresetSet, error) {
	return LoadPresets(defaultPresetsYAML)
})

// DefaultPresets returns the built-in presets. The set is shared; callers
// that want to edit a preset should copy it out first.
func DefaultPresets() (PresetSet, error) {
	return defaultPresets()
}

// Names returns the preset names in sorted order.
func (s PresetSet) Names() []string {
	return slices.Sorted(maps.Keys(s))
}

// Emitter builds a new emitter from the named preset.
func (s PresetSet) Emitter(name string, textures []Texture) (*ParticleEmitter, error) {
	p, ok := s[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return p.Build(textures)
}

// Config converts the preset to an EmitterConfig drawing from textures.
func (p Preset) Config(textures []Texture) (EmitterConfig, error) {
	shape, err := parseShape(p.Shape)
	if err != nil {
		return EmitterConfig{}, err
	}
	cfg := EmitterConfig{
		Position:        p.Position,
		MaxParticles:    p.MaxParticles,
		SpawnRate:       p.SpawnRate,
		Shape:           shape,
		SpawnRadius:     p.SpawnRadius,
		SpawnRect:       p.SpawnRect,
		VelocityMin:     p.VelocityMin,
		VelocityMax:     p.VelocityMax,
		Lifetime:        p.Lifetime,
		StartSize:       p.StartSize,
		EndSize:         p.EndSize,
		Rotation:        p.Rotation,
		AngularVelocity: p.AngularVelocity,
		StartColor:      p.StartColor,
		Textures:        textures,
		Enabled:         !p.Disabled,
		Debug:           p.Debug,
	}
	if p.Seed != nil {
		cfg.Rand = NewRand(*p.Seed)
	}
	return cfg, nil
}

// Build creates an emitter with fresh modifier instances. Emitters built
// from the same preset share no state.
func (p Preset) Build(textures []Texture) (*ParticleEmitter, error) {
	cfg, err := p.Config(textures)
	if err != nil {
		return nil, err
	}
	mods, err := p.buildModifiers()
	if err != nil {
		return nil, err
	}
	e, err := NewParticleEmitter(cfg)
	if err != nil {
		return nil, err
	}
	for _, m := range mods {
		e.AddModifier(m)
	}
	return e, nil
}

// BlendMode returns the preset's blend mode, BlendNormal when unset.
func (p Preset) BlendMode() BlendMode {
	b, _ := parseBlend(p.Blend)
	return b
}

func (p Preset) buildModifiers() ([]Modifier, error) {
	mods := make([]Modifier, 0, len(p.Modifiers))
	for i := range p.Modifiers {
		m, err := p.Modifiers[i].Build()
		if err != nil {
			return nil, err
		}
		mods = append(mods, m)
	}
	return mods, nil
}

// Build instantiates the modifier from the registry and decodes Params over
// its defaults.
func (s *ModifierSpec) Build() (Modifier, error) {
	m, err := NewModifier(s.Kind)
	if err != nil {
		return nil, err
	}
	if !s.Params.IsZero() {
		if err := s.Params.Decode(m); err != nil {
			return nil, fmt.Errorf("ember: %s params: %w", s.Kind, err)
		}
	}
	if s.Ease != "" {
		fn, ok := Easing(s.Ease)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownEasing, s.Ease)
		}
		e, ok := m.(easer)
		if !ok {
			return nil, fmt.Errorf("ember: %s does not take an easing", s.Kind)
		}
		e.setEase(fn)
	}
	return m, nil
}

func parseShape(s string) (SpawnShape, error) {
	switch s {
	case "", "point":
		return SpawnPoint, nil
	case "circle":
		return SpawnCircle, nil
	case "rectangle", "rect":
		return SpawnRectangle, nil
	}
	return SpawnPoint, fmt.Errorf("ember: unknown spawn shape %q", s)
}

func parseBlend(s string) (BlendMode, error) {
	switch s {
	case "", "normal":
		return BlendNormal, nil
	case "add":
		return BlendAdd, nil
	case "multiply":
		return BlendMultiply, nil
	case "screen":
		return BlendScreen, nil
	}
	return BlendNormal, fmt.Errorf("ember: unknown blend mode %q", s)
}

var (
	registryMu sync.RWMutex
	registry   = map[string]func() Modifier{
		"gravity":                 func() Modifier { return NewGravity(Vec2{0, 980}) },
		"drag":                    func() Modifier { return NewDrag(1) },
		"velocityDamping":         func() Modifier { return NewVelocityDamping(0.9) },
		"wind":                    func() Modifier { return NewWind(Vec2{50, 0}) },
		"attractor":               func() Modifier { return NewAttractor() },
		"magneticField":           func() Modifier { return NewMagneticField(Vec2{}) },
		"gravitationalWell":       func() Modifier { return NewGravitationalWell(Vec2{}) },
		"vortex":                  func() Modifier { return NewVortex(Vec2{}) },
		"orbit":                   func() Modifier { return NewOrbit(Vec2{}) },
		"spiralForce":             func() Modifier { return NewSpiralForce(Vec2{}) },
		"spring":                  func() Modifier { return NewSpring(Vec2{}) },
		"explosionForce":          func() Modifier { return NewExplosionForce(Vec2{}) },
		"oscillation":             func() Modifier { return NewOscillation() },
		"sineWaveMotion":          func() Modifier { return NewSineWaveMotion() },
		"boundaryBounce":          func() Modifier { return NewBoundaryBounce(Rect{}) },
		"noise":                   func() Modifier { return NewNoise(0) },
		"turbulentField":          func() Modifier { return NewTurbulentField(0) },
		"colorOverLife":           func() Modifier { return NewColorOverLife(color.NRGBA{}, color.NRGBA{}) },
		"gradientColor":           func() Modifier { return NewGradientColor() },
		"sizeOverLife":            func() Modifier { return NewSizeOverLife() },
		"rotationOverLife":        func() Modifier { return NewRotationOverLife() },
		"angularVelocityOverLife": func() Modifier { return NewAngularVelocityOverLife(0, 0) },
		"alphaFade":               func() Modifier { return NewAlphaFade(0.1, 0.3) },
	}
)

// RegisterModifier makes a modifier kind available to presets. factory must
// return a new instance with its defaults applied on every call; params are
// decoded into it with yaml.v3, so it should be a pointer to a struct.
// Registering an existing kind replaces it.
func RegisterModifier(kind string, factory func() Modifier) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[kind] = factory
}

// NewModifier returns a fresh modifier of a registered kind.
func NewModifier(kind string) (Modifier, error) {
	registryMu.RLock()
	factory, ok := registry[kind]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownModifier, kind)
	}
	return factory(), nil
}

// ModifierKinds returns every registered kind in sorted order.
func ModifierKinds() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return slices.Sorted(maps.Keys(registry))
}
