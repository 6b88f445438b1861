package faceloop

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// RasterSurface is a software Surface backed by an *image.RGBA. It needs no
// graphics context, which makes it the surface for headless rendering.
type RasterSurface struct {
	img        *image.RGBA
	clearColor Color

	// Interpolator resamples scaled images. Defaults to draw.BiLinear.
	Interpolator draw.Interpolator
}

// NewRasterSurface creates a w x h surface cleared to clear.
func NewRasterSurface(w, h int, clear Color) *RasterSurface {
	s := &RasterSurface{
		img:          image.NewRGBA(image.Rect(0, 0, w, h)),
		clearColor:   clear,
		Interpolator: draw.BiLinear,
	}
	s.Clear()
	return s
}

// Image returns the backing image. It is overwritten by later draws.
func (s *RasterSurface) Image() *image.RGBA {
	return s.img
}

// Clear fills the surface with its clear color.
func (s *RasterSurface) Clear() {
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(s.clearColor.toRGBA()), image.Point{}, draw.Src)
}

// DrawImage draws img scaled into the w x h rectangle at (x, y).
func (s *RasterSurface) DrawImage(img image.Image, x, y, w, h float64) {
	s.DrawImageAlpha(img, x, y, w, h, 1)
}

// DrawImageAlpha draws img like DrawImage with its opacity multiplied by
// alpha.
func (s *RasterSurface) DrawImageAlpha(img image.Image, x, y, w, h, alpha float64) {
	sr := img.Bounds()
	if sr.Dx() == 0 || sr.Dy() == 0 || alpha <= 0 {
		return
	}
	sx := w / float64(sr.Dx())
	sy := h / float64(sr.Dy())
	// Source pixel (px, py) maps to (x + (px-minX)*sx, y + (py-minY)*sy).
	s2d := f64.Aff3{
		sx, 0, x - float64(sr.Min.X)*sx,
		0, sy, y - float64(sr.Min.Y)*sy,
	}

	var opts *draw.Options
	if alpha < 1 {
		opts = &draw.Options{SrcMask: image.NewUniform(color.Alpha{A: uint8(math.Round(clamp01(alpha) * 255))})}
	}
	interp := s.Interpolator
	if interp == nil {
		interp = draw.BiLinear
	}
	interp.Transform(s.img, s2d, img, sr, draw.Over, opts)
}

// StrokeRect outlines a rectangle with the given style. The stroke is
// centered on the rectangle edge like a canvas stroke.
func (s *RasterSurface) StrokeRect(x, y, w, h float64, style BoxStyle) {
	lw := style.Width
	if lw <= 0 {
		lw = 1
	}
	half := lw / 2
	src := image.NewUniform(style.Color.toRGBA())
	edges := []Rect{
		{X: x - half, Y: y - half, Width: w + lw, Height: lw},     // top
		{X: x - half, Y: y + h - half, Width: w + lw, Height: lw}, // bottom
		{X: x - half, Y: y - half, Width: lw, Height: h + lw},     // left
		{X: x + w - half, Y: y - half, Width: lw, Height: h + lw}, // right
	}
	for _, e := range edges {
		r := image.Rect(
			int(math.Round(e.X)), int(math.Round(e.Y)),
			int(math.Round(e.X+e.Width)), int(math.Round(e.Y+e.Height)),
		).Intersect(s.img.Bounds())
		if r.Empty() {
			continue
		}
		draw.Draw(s.img, r, src, image.Point{}, draw.Over)
	}
}
