// particles10k keeps 10,000 particles alive at once: half in a pooled
// emitter driven by a turbulent field and bouncing off the window edges,
// half in the lightweight ParticleSystem. A stress test for the update and
// draw paths. Press S to pause the system half.
package main

import (
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/ember"
)

const (
	screenW = 1280
	screenH = 720
	count   = 10_000
	tickDt  = 1.0 / 60
)

type game struct {
	fx      *ember.ParticleEmitter
	system  *ember.ParticleSystem
	paused  bool
	add     *ember.EbitenRenderer
	normal  *ember.EbitenRenderer
	overlay *ember.Overlay
}

func main() {
	dot := ember.NewSoftDot(16)

	cfg := ember.DefaultEmitterConfig()
	cfg.Position = ember.Vec2{X: screenW / 4, Y: screenH / 2}
	cfg.MaxParticles = count / 2
	cfg.SpawnRate = 2000
	cfg.Shape = ember.SpawnCircle
	cfg.SpawnRadius = 40
	cfg.Lifetime = ember.Range{Min: 2, Max: 3}
	cfg.VelocityMin = ember.Vec2{X: -120, Y: -120}
	cfg.VelocityMax = ember.Vec2{X: 120, Y: 120}
	cfg.StartSize = ember.Range{Min: 4, Max: 10}
	cfg.EndSize = ember.Range{Min: 2, Max: 4}
	cfg.StartColor = color.NRGBA{255, 170, 90, 255}
	cfg.Textures = []ember.Texture{dot}
	fx, err := ember.NewParticleEmitter(cfg)
	if err != nil {
		log.Fatal(err)
	}
	fx.AddModifier(ember.NewTurbulentField(1))
	fx.AddModifier(ember.NewBoundaryBounce(ember.Rect{Width: screenW, Height: screenH}))

	scfg := ember.DefaultSystemConfig(dot)
	scfg.Position = ember.Vec2{X: screenW * 3 / 4, Y: screenH / 2}
	scfg.MaxParticles = count / 2
	scfg.SpawnRate = 2000
	scfg.Lifetime = ember.Range{Min: 2, Max: 3}
	scfg.VelocityMin = ember.Vec2{X: -150, Y: -150}
	scfg.VelocityMax = ember.Vec2{X: 150, Y: 150}
	scfg.Size = ember.Range{Min: 4, Max: 8}
	system, err := ember.NewParticleSystem(scfg)
	if err != nil {
		log.Fatal(err)
	}

	g := &game{
		fx:      fx,
		system:  system,
		add:     ember.NewEbitenRenderer(nil, ember.BlendAdd),
		normal:  ember.NewEbitenRenderer(nil, ember.BlendNormal),
		overlay: ember.NewOverlay(10, 10),
	}
	ebiten.SetWindowTitle("Ember - 10k Particles")
	ebiten.SetWindowSize(screenW, screenH)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.paused = !g.paused
	}
	g.fx.Update(tickDt)
	if !g.paused {
		g.system.Update(tickDt)
	}
	g.overlay.Update(tickDt, g.fx.Stats())
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(color.NRGBA{15, 15, 23, 255})
	g.add.Target = screen
	g.normal.Target = screen
	g.fx.Draw(g.add)
	g.system.Draw(g.normal)
	g.overlay.Draw(screen)
}

func (g *game) Layout(_, _ int) (int, int) {
	return screenW, screenH
}
