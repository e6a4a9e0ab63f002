// Package rlrender draws ember emitters with raylib.
//
// Call Begin and End around emitter draws inside rl.BeginDrawing:
//
//	r := rlrender.New(ember.BlendAdd)
//	r.Begin()
//	fx.Draw(r)
//	r.End()
package rlrender

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/phanxgames/ember"
)

// ErrLoadTexture is returned when raylib could not load a texture file.
var ErrLoadTexture = errors.New("rlrender: load texture")

// Texture wraps a raylib texture so it satisfies ember.Texture.
type Texture struct {
	rl.Texture2D
}

// Bounds implements ember.Texture.
func (t *Texture) Bounds() image.Rectangle {
	return image.Rect(0, 0, int(t.Width), int(t.Height))
}

// Unload frees the GPU texture.
func (t *Texture) Unload() {
	if t.ID != 0 {
		rl.UnloadTexture(t.Texture2D)
		t.ID = 0
	}
}

// LoadTexture loads an image file into GPU memory. The window must be open.
func LoadTexture(path string) (*Texture, error) {
	tex := rl.LoadTexture(path)
	if tex.ID == 0 {
		return nil, fmt.Errorf("%w: %s", ErrLoadTexture, path)
	}
	return &Texture{Texture2D: tex}, nil
}

// NewSoftDot generates a size x size radial white-to-clear texture. The
// window must be open.
func NewSoftDot(size int) *Texture {
	img := rl.GenImageGradientRadial(size, size, 0, rl.White, rl.Blank)
	defer rl.UnloadImage(img)
	return &Texture{Texture2D: rl.LoadTextureFromImage(img)}
}

// Renderer implements ember.Renderer with rl.DrawTexturePro. Textures that
// are not *Texture are skipped.
type Renderer struct {
	Blend ember.BlendMode
}

// New returns a renderer using blend.
func New(blend ember.BlendMode) *Renderer {
	return &Renderer{Blend: blend}
}

// Begin sets the raylib blend mode for the following draws.
func (r *Renderer) Begin() {
	rl.BeginBlendMode(blendMode(r.Blend))
}

// End restores the default blend mode.
func (r *Renderer) End() {
	rl.EndBlendMode()
}

// DrawTexturedQuad implements ember.Renderer.
func (r *Renderer) DrawTexturedQuad(tex ember.Texture, src image.Rectangle, pos ember.Vec2, tint color.NRGBA, rotation float64, scale ember.Vec2) {
	t, ok := tex.(*Texture)
	if !ok || t == nil || t.ID == 0 || src.Empty() {
		return
	}
	srcRec, dstRec, origin := quad(src, pos, scale)
	// raylib tints with straight alpha.
	rl.DrawTexturePro(t.Texture2D, srcRec, dstRec, origin, float32(rotation), rl.Color{R: tint.R, G: tint.G, B: tint.B, A: tint.A})
}

// quad converts a centered, scaled ember quad into DrawTexturePro terms. The
// origin is the destination center so rotation happens around it.
func quad(src image.Rectangle, pos, scale ember.Vec2) (srcRec, dstRec rl.Rectangle, origin rl.Vector2) {
	w := float32(float64(src.Dx()) * scale.X)
	h := float32(float64(src.Dy()) * scale.Y)
	srcRec = rl.NewRectangle(float32(src.Min.X), float32(src.Min.Y), float32(src.Dx()), float32(src.Dy()))
	dstRec = rl.NewRectangle(float32(pos.X), float32(pos.Y), w, h)
	origin = rl.NewVector2(w/2, h/2)
	return srcRec, dstRec, origin
}

// blendMode maps ember blend modes onto raylib's. Screen has no raylib
// equivalent and falls back to additive color blending.
func blendMode(b ember.BlendMode) rl.BlendMode {
	switch b {
	case ember.BlendAdd:
		return rl.BlendAdditive
	case ember.BlendMultiply:
		return rl.BlendMultiplied
	case ember.BlendScreen:
		return rl.BlendAddColors
	default:
		return rl.BlendAlpha
	}
}
