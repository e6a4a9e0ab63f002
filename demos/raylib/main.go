// raylib shows the fire and smoke presets drawn through raylib instead of
// Ebitengine. Click to fire a burst of sparks.
package main

import (
	"log"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/phanxgames/ember"
	"github.com/phanxgames/ember/rlrender"
)

const (
	screenW = 800
	screenH = 600
)

type layer struct {
	fx *ember.ParticleEmitter
	r  *rlrender.Renderer
}

func main() {
	rl.InitWindow(screenW, screenH, "Ember - raylib")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	dot := rlrender.NewSoftDot(32)
	defer dot.Unload()
	textures := []ember.Texture{dot}

	presets, err := ember.DefaultPresets()
	if err != nil {
		log.Fatal(err)
	}
	var layers []layer
	for _, name := range []string{"smoke", "fire", "sparks"} {
		fx, err := presets.Emitter(name, textures)
		if err != nil {
			log.Fatal(err)
		}
		fx.Config().Position = ember.Vec2{X: screenW / 2, Y: screenH - 120}
		layers = append(layers, layer{fx: fx, r: rlrender.New(presets[name].BlendMode())})
	}
	sparks := layers[len(layers)-1].fx

	for !rl.WindowShouldClose() {
		dt := float64(rl.GetFrameTime())
		if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
			m := rl.GetMousePosition()
			sparks.Config().Position = ember.Vec2{X: float64(m.X), Y: float64(m.Y)}
			sparks.Burst(150)
		}
		for _, l := range layers {
			l.fx.Update(dt)
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(10, 10, 18, 255))
		for _, l := range layers {
			l.r.Begin()
			l.fx.Draw(l.r)
			l.r.End()
		}
		rl.DrawFPS(10, 10)
		rl.EndDrawing()
	}
}
