package ember

import "github.com/tanema/gween/ease"

// Modifier transforms one particle per call. An emitter applies its
// modifiers to every live particle each update, in registration order, after
// the built-in kinematics, so later modifiers observe the writes of earlier
// ones within the same frame.
//
// A Modifier may hold its own configuration and small state, but never a
// reference to a particular particle between calls.
type Modifier interface {
	Apply(p *Particle, dt float64)
}

// Stepper is implemented by modifiers with a clock or per-frame latch. The
// emitter calls Step once per update, before any Apply of that frame.
type Stepper interface {
	Step(dt float64)
}

// Curve shapes the life progress used by the over-life modifiers. The zero
// value is linear. Smooth selects smoothstep; Ease, when set, takes
// precedence and is evaluated as Ease(t, 0, 1, 1).
type Curve struct {
	Smooth bool           `yaml:"smooth"`
	Ease   ease.TweenFunc `yaml:"-"`
}

// At maps the linear progress t in [0, 1] through the curve.
func (c Curve) At(t float64) float64 {
	switch {
	case c.Ease != nil:
		return float64(c.Ease(float32(t), 0, 1, 1))
	case c.Smooth:
		return smoothstep(t)
	default:
		return t
	}
}

// setEase lets the preset loader attach an easing by name.
func (c *Curve) setEase(fn ease.TweenFunc) { c.Ease = fn }

// easer is implemented by modifiers that embed a Curve.
type easer interface {
	setEase(fn ease.TweenFunc)
}

// easings maps preset names to gween easing functions.
var easings = map[string]ease.TweenFunc{
	"linear":     ease.Linear,
	"inQuad":     ease.InQuad,
	"outQuad":    ease.OutQuad,
	"inOutQuad":  ease.InOutQuad,
	"inCubic":    ease.InCubic,
	"outCubic":   ease.OutCubic,
	"inOutCubic": ease.InOutCubic,
	"inSine":     ease.InSine,
	"outSine":    ease.OutSine,
	"inOutSine":  ease.InOutSine,
	"inExpo":     ease.InExpo,
	"outExpo":    ease.OutExpo,
	"inCirc":     ease.InCirc,
	"outCirc":    ease.OutCirc,
	"outBack":    ease.OutBack,
	"outBounce":  ease.OutBounce,
	"outElastic": ease.OutElastic,
}

// Easing returns the gween easing registered under name.
func Easing(name string) (ease.TweenFunc, bool) {
	fn, ok := easings[name]
	return fn, ok
}
