package faceloop

import (
	"time"

	"github.com/tanema/gween/ease"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs when the color is handed to a surface.
type Color struct {
	R, G, B, A float64
}

var (
	// ColorWhite is opaque white.
	ColorWhite = Color{1, 1, 1, 1}
	// ColorRed is the default face box overlay color.
	ColorRed = Color{1, 0, 0, 1}
	// ColorTransparent clears to nothing.
	ColorTransparent = Color{}
)

// Vec2 is a 2D vector used for anchors, offsets and sizes.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// BoxStyle is the line style used to stroke the debug face box.
type BoxStyle struct {
	Width float64
	Color Color
}

// DefaultBoxStyle is a 4px red outline.
var DefaultBoxStyle = BoxStyle{Width: 4, Color: ColorRed}

const (
	// DefaultCanvasWidth and DefaultCanvasHeight are the canvas size in pixels.
	DefaultCanvasWidth  = 500
	DefaultCanvasHeight = 500

	// DefaultInterval is the time each frame stays on screen.
	DefaultInterval = 100 * time.Millisecond
)

// Config controls how a Slideshow aligns and paces its frames.
type Config struct {
	// CanvasWidth and CanvasHeight are the fixed canvas size in pixels.
	CanvasWidth, CanvasHeight int

	// Interval is the period of the frame tick.
	Interval time.Duration

	// Focal is the canvas point every anchor is aligned to.
	Focal FocalPoint

	// Anchor selects which feature of each face is aligned.
	Anchor AnchorMode

	// Overlay, when non-nil, strokes the face box of every frame.
	Overlay *BoxStyle

	// Fade is the crossfade duration between frames. Zero cuts hard.
	Fade time.Duration

	// FadeEase shapes the crossfade. Nil means ease.Linear.
	FadeEase ease.TweenFunc

	// ClearColor fills the canvas before each frame. The zero value clears
	// to transparent.
	ClearColor Color
}

// DefaultConfig returns a 500x500 canvas ticking every 100ms with the face
// box center pinned to the middle of the canvas and no rescaling.
func DefaultConfig() Config {
	return Config{
		CanvasWidth:  DefaultCanvasWidth,
		CanvasHeight: DefaultCanvasHeight,
		Interval:     DefaultInterval,
		Focal:        FocalPoint{NormX: 0.5, NormY: 0.5},
		Anchor:       FaceBoxCenter(),
	}
}

// toRGBA converts a Color to a premultiplied colorRGBA.
func (c Color) toRGBA() colorRGBA {
	return colorRGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

// colorRGBA implements the color.Color interface for fills and strokes.
type colorRGBA struct {
	R, G, B, A uint8
}

func (c colorRGBA) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	a = uint32(c.A) * 0x101
	return
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
