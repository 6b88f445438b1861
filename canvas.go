package faceloop

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Canvas is a persistent fixed-size offscreen image implementing Surface and
// FadeSurface. Frames are painted into it on tick and it is blitted to the
// screen every draw, so the last frame stays visible between ticks.
type Canvas struct {
	image      *ebiten.Image
	w, h       int
	clearColor Color

	// textures caches the GPU copy of each decoded source image.
	textures map[image.Image]*ebiten.Image
}

// NewCanvas creates a canvas of the given size. clear is the background
// painted by Clear.
func NewCanvas(w, h int, clear Color) *Canvas {
	return &Canvas{
		image:      ebiten.NewImage(w, h),
		w:          w,
		h:          h,
		clearColor: clear,
		textures:   make(map[image.Image]*ebiten.Image),
	}
}

// Image returns the underlying *ebiten.Image for direct manipulation.
func (c *Canvas) Image() *ebiten.Image {
	return c.image
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int {
	return c.w
}

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int {
	return c.h
}

// Clear fills the canvas with its clear color.
func (c *Canvas) Clear() {
	if c.clearColor.A == 0 {
		c.image.Clear()
		return
	}
	c.image.Fill(c.clearColor.toRGBA())
}

// DrawImage draws img scaled into the w x h rectangle at (x, y).
func (c *Canvas) DrawImage(img image.Image, x, y, w, h float64) {
	c.DrawImageAlpha(img, x, y, w, h, 1)
}

// DrawImageAlpha draws img like DrawImage with its opacity multiplied by
// alpha.
func (c *Canvas) DrawImageAlpha(img image.Image, x, y, w, h, alpha float64) {
	tex := c.texture(img)
	b := tex.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}

	var op ebiten.DrawImageOptions
	op.GeoM.Scale(w/float64(b.Dx()), h/float64(b.Dy()))
	op.GeoM.Translate(x, y)
	op.Filter = ebiten.FilterLinear
	if alpha < 1 {
		op.ColorScale.ScaleAlpha(float32(alpha))
	}
	c.image.DrawImage(tex, &op)
}

// StrokeRect outlines a rectangle with the given style.
func (c *Canvas) StrokeRect(x, y, w, h float64, style BoxStyle) {
	vector.StrokeRect(c.image, float32(x), float32(y), float32(w), float32(h),
		float32(style.Width), style.Color.toRGBA(), true)
}

// texture returns img as an *ebiten.Image, uploading it once.
func (c *Canvas) texture(img image.Image) *ebiten.Image {
	if e, ok := img.(*ebiten.Image); ok {
		return e
	}
	if tex, ok := c.textures[img]; ok {
		return tex
	}
	tex := ebiten.NewImageFromImage(img)
	c.textures[img] = tex
	return tex
}

// Dispose deallocates the canvas and every cached texture. The Canvas should
// not be used after calling Dispose.
func (c *Canvas) Dispose() {
	for img, tex := range c.textures {
		tex.Deallocate()
		delete(c.textures, img)
	}
	if c.image != nil {
		c.image.Deallocate()
		c.image = nil
	}
}
