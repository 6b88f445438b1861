package faceloop

import "image"

// Surface is a fixed-size 2D drawing target.
type Surface interface {
	// Clear erases the whole surface.
	Clear()
	// DrawImage draws img scaled into the w x h rectangle at (x, y).
	DrawImage(img image.Image, x, y, w, h float64)
	// StrokeRect outlines the rectangle at (x, y) with style.
	StrokeRect(x, y, w, h float64, style BoxStyle)
}

// FadeSurface is a Surface that can draw translucent images. Crossfades are
// only shown on surfaces implementing it.
type FadeSurface interface {
	Surface
	DrawImageAlpha(img image.Image, x, y, w, h, alpha float64)
}

// Placement is an item together with the transform it was drawn with.
type Placement struct {
	Item      *Item
	Transform Transform
}

// Renderer aligns items on a canvas and paints them onto a Surface.
type Renderer struct {
	CanvasWidth, CanvasHeight float64
	Focal                     FocalPoint
	Anchor                    AnchorMode

	// Overlay, when non-nil, strokes the face box in this style.
	Overlay *BoxStyle
}

// NewRenderer builds a Renderer from cfg.
func NewRenderer(cfg Config) *Renderer {
	return &Renderer{
		CanvasWidth:  float64(cfg.CanvasWidth),
		CanvasHeight: float64(cfg.CanvasHeight),
		Focal:        cfg.Focal,
		Anchor:       cfg.Anchor,
		Overlay:      cfg.Overlay,
	}
}

// Place computes the transform aligning the item's anchor with the focal point.
// it must be ready.
func (r *Renderer) Place(it *Item) Placement {
	w, h := it.NaturalSize()
	anchor := ResolveAnchor(&it.Record, r.Anchor)
	t := ComputeTransform(w, h, it.Record.FaceBox.NormWidth, anchor, r.Focal, r.CanvasWidth, r.CanvasHeight)
	return Placement{Item: it, Transform: t}
}

// Render clears s and draws it aligned. Returns the placement used.
func (r *Renderer) Render(s Surface, it *Item) Placement {
	pl := r.Place(it)
	s.Clear()
	r.draw(s, pl, 1)
	return pl
}

// RenderFade clears s and draws prev fading out under cur fading in, with
// alpha the opacity of cur. Surfaces without alpha support get cur only.
func (r *Renderer) RenderFade(s Surface, prev, cur Placement, alpha float64) {
	s.Clear()
	if _, ok := s.(FadeSurface); !ok || prev.Item == nil || alpha >= 1 {
		r.draw(s, cur, 1)
		return
	}
	r.draw(s, prev, 1-alpha)
	r.draw(s, cur, alpha)
}

func (r *Renderer) draw(s Surface, pl Placement, alpha float64) {
	img := pl.Item.Image()
	w, h := pl.Item.NaturalSize()
	t := pl.Transform
	dw, dh := w*t.Scale, h*t.Scale

	if fs, ok := s.(FadeSurface); ok && alpha < 1 {
		fs.DrawImageAlpha(img, t.OffsetX, t.OffsetY, dw, dh, alpha)
	} else {
		s.DrawImage(img, t.OffsetX, t.OffsetY, dw, dh)
	}

	if r.Overlay != nil {
		box := t.ApplyRect(FaceRect(pl.Item.Record.FaceBox, w, h))
		s.StrokeRect(box.X, box.Y, box.Width, box.Height, *r.Overlay)
	}
}
