package ember

import (
	"image/color"
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 emitter config fields simultaneously. Create
// one via the constructors (TweenEmitterPosition, TweenSpawnRate,
// TweenStartColor) and call Update(dt) each frame; values are written into
// the emitter's live config.
//
// There is no global animation manager. Callers drive Update themselves.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	set    [4]func(float32)
	Done   bool
}

// Update advances all tweens by dt seconds and writes the values.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		g.set[i](val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// TweenEmitterPosition moves the emitter origin to (toX, toY) over duration
// seconds using fn.
func TweenEmitterPosition(e *ParticleEmitter, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	cfg := e.Config()
	g := &TweenGroup{count: 2}
	g.tweens[0] = gween.New(float32(cfg.Position.X), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(cfg.Position.Y), float32(toY), duration, fn)
	g.set[0] = func(v float32) { cfg.Position.X = float64(v) }
	g.set[1] = func(v float32) { cfg.Position.Y = float64(v) }
	return g
}

// TweenSpawnRate ramps the spawn rate to the target over duration seconds.
func TweenSpawnRate(e *ParticleEmitter, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	cfg := e.Config()
	g := &TweenGroup{count: 1}
	g.tweens[0] = gween.New(float32(cfg.SpawnRate), float32(to), duration, fn)
	g.set[0] = func(v float32) { cfg.SpawnRate = math.Max(0, float64(v)) }
	return g
}

// TweenStartColor blends the RGB of the tint given to new particles toward
// to. Alpha is not animated since particle alpha follows lifetime.
func TweenStartColor(e *ParticleEmitter, to color.NRGBA, duration float32, fn ease.TweenFunc) *TweenGroup {
	cfg := e.Config()
	from := cfg.StartColor
	g := &TweenGroup{count: 3}
	g.tweens[0] = gween.New(float32(from.R), float32(to.R), duration, fn)
	g.tweens[1] = gween.New(float32(from.G), float32(to.G), duration, fn)
	g.tweens[2] = gween.New(float32(from.B), float32(to.B), duration, fn)
	g.set[0] = func(v float32) { cfg.StartColor.R = channel(v) }
	g.set[1] = func(v float32) { cfg.StartColor.G = channel(v) }
	g.set[2] = func(v float32) { cfg.StartColor.B = channel(v) }
	return g
}

// channel rounds a tweened value into a color channel.
func channel(v float32) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(255, float64(v)))))
}
