package ember

import (
	"fmt"
	"image"
	"image/color"
	_ "image/png" // register PNG decoding for LoadTexture
	"io"
	"math"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
)

// Texture is anything with pixel dimensions that a Renderer can draw.
// *ebiten.Image satisfies it directly.
type Texture interface {
	Bounds() image.Rectangle
}

// Renderer is the drawing collaborator consumed by emitters and particle
// systems. A quad is the src region of tex, scaled by scale, rotated by
// rotation degrees around its center, and centered on pos.
type Renderer interface {
	DrawTexturedQuad(tex Texture, src image.Rectangle, pos Vec2, tint color.NRGBA, rotation float64, scale Vec2)
}

// EbitenRenderer draws quads onto an ebiten image. Textures that are not
// *ebiten.Image are skipped.
type EbitenRenderer struct {
	Target *ebiten.Image
	Blend  BlendMode

	op ebiten.DrawImageOptions
}

// NewEbitenRenderer returns a renderer that draws onto target.
func NewEbitenRenderer(target *ebiten.Image, blend BlendMode) *EbitenRenderer {
	return &EbitenRenderer{Target: target, Blend: blend}
}

// DrawTexturedQuad implements Renderer.
func (r *EbitenRenderer) DrawTexturedQuad(tex Texture, src image.Rectangle, pos Vec2, tint color.NRGBA, rotation float64, scale Vec2) {
	img, ok := tex.(*ebiten.Image)
	if !ok || img == nil || r.Target == nil {
		return
	}
	if src.Empty() {
		return
	}
	sub := img
	if src != img.Bounds() {
		sub = img.SubImage(src).(*ebiten.Image)
	}

	w := float64(src.Dx())
	h := float64(src.Dy())

	op := &r.op
	op.GeoM.Reset()
	// Scale and rotate around the quad center, then move the center to pos.
	op.GeoM.Translate(-w/2, -h/2)
	op.GeoM.Scale(scale.X, scale.Y)
	op.GeoM.Rotate(rotation * math.Pi / 180)
	op.GeoM.Translate(pos.X, pos.Y)

	// Premultiplied color scale.
	a := float32(tint.A) / 255
	op.ColorScale.Reset()
	op.ColorScale.Scale(float32(tint.R)/255*a, float32(tint.G)/255*a, float32(tint.B)/255*a, a)

	op.Blend = r.Blend.EbitenBlend()

	r.Target.DrawImage(sub, op)
}

// LoadTexture decodes an image (PNG by default; register other decoders by
// importing them) and uploads it as an ebiten image.
func LoadTexture(rd io.Reader) (*ebiten.Image, error) {
	img, _, err := image.Decode(rd)
	if err != nil {
		return nil, fmt.Errorf("ember: decode texture: %w", err)
	}
	return ebiten.NewImageFromImage(img), nil
}

// LoadTextureFile opens path and decodes it with LoadTexture.
func LoadTextureFile(path string) (*ebiten.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ember: open texture: %w", err)
	}
	defer f.Close()

	img, err := LoadTexture(f)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, path)
	}
	return img, nil
}

// fullTextureQuad returns the source region and per-axis scale that draw the
// whole of tex at size x size world units. ok is false for empty textures.
func fullTextureQuad(tex Texture, size float64) (src image.Rectangle, scale Vec2, ok bool) {
	src = tex.Bounds()
	w, h := src.Dx(), src.Dy()
	if w <= 0 || h <= 0 {
		return src, Vec2{}, false
	}
	return src, Vec2{size / float64(w), size / float64(h)}, true
}

// NewSoftDot returns a size x size white disc whose alpha falls off toward
// the edge. It is a convenient default particle texture.
func NewSoftDot(size int) *ebiten.Image {
	if size < 1 {
		size = 1
	}
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	r := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) + 0.5 - r
			dy := float64(y) + 0.5 - r
			a := 1 - math.Sqrt(dx*dx+dy*dy)/r
			if a <= 0 {
				continue
			}
			img.SetNRGBA(x, y, color.NRGBA{255, 255, 255, uint8(255 * smoothstep(a))})
		}
	}
	return ebiten.NewImageFromImage(img)
}
