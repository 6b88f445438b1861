package faceloop

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Crossfade tweens the opacity of the incoming frame from 0 to 1. Call Update
// each host frame; once Done, the outgoing frame is no longer drawn.
//
// There is no global animation manager; the Slideshow owns at most one
// Crossfade at a time.
type Crossfade struct {
	tween *gween.Tween
	Alpha float64
	Done  bool
}

// NewCrossfade creates a fade lasting duration seconds. A nil fn uses
// ease.Linear. A non-positive duration is done immediately.
func NewCrossfade(duration float32, fn ease.TweenFunc) *Crossfade {
	if duration <= 0 {
		return &Crossfade{Alpha: 1, Done: true}
	}
	if fn == nil {
		fn = ease.Linear
	}
	return &Crossfade{tween: gween.New(0, 1, duration, fn)}
}

// Update advances the fade by dt seconds and returns the current alpha.
func (f *Crossfade) Update(dt float32) float64 {
	if f.Done {
		return f.Alpha
	}
	val, finished := f.tween.Update(dt)
	f.Alpha = clamp01(float64(val))
	if finished {
		f.Alpha = 1
		f.Done = true
	}
	return f.Alpha
}
