package ember

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Overlay is a small debug panel showing emitter counters alongside FPS and
// TPS. The text is redrawn at most every Interval seconds.
type Overlay struct {
	Interval float64
	X, Y     int

	img     *ebiten.Image
	elapsed float64
	stats   EmitterStats
	dirty   bool
}

// NewOverlay returns an overlay drawn at (x, y) refreshing twice a second.
func NewOverlay(x, y int) *Overlay {
	return &Overlay{Interval: 0.5, X: x, Y: y, dirty: true}
}

// Update records stats and advances the refresh timer.
func (o *Overlay) Update(dt float64, stats EmitterStats) {
	o.stats = stats
	o.elapsed += dt
	if o.elapsed >= o.Interval {
		o.elapsed = 0
		o.dirty = true
	}
}

// Draw renders the panel onto screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if o.img == nil {
		// 140x80 fits six lines of the debug font.
		o.img = ebiten.NewImage(140, 80)
	}
	if o.dirty {
		o.dirty = false
		o.img.Clear()
		o.img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(o.img, overlayText(o.stats, ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(float64(o.X), float64(o.Y))
	screen.DrawImage(o.img, &op)
}

// DrawOverlay prints stats at the top-left of screen without caching.
func DrawOverlay(screen *ebiten.Image, stats EmitterStats) {
	ebitenutil.DebugPrint(screen, overlayText(stats, ebiten.ActualFPS(), ebiten.ActualTPS()))
}

func overlayText(s EmitterStats, fps, tps float64) string {
	return fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nactive: %d\nfree: %d\nspawned: %d\ndropped: %d",
		fps, tps, s.Active, s.Free, s.Spawned, s.Dropped)
}
