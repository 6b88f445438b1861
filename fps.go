package faceloop

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// hudText formats the heads-up display lines for the slideshow state.
func hudText(s *Slideshow, fps, tps float64) string {
	st := s.items.Stats()
	state := "playing"
	switch {
	case !s.Mounted():
		state = "unmounted"
	case s.Paused():
		state = "paused"
	}
	return fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nframe: %d (%s)\nready: %d/%d failed: %d",
		fps, tps, s.Frame(), state, st.Ready, st.Total, st.Failed)
}

// drawHUD prints the current FPS, TPS and playback counters in the top-left
// corner of screen.
func drawHUD(screen *ebiten.Image, s *Slideshow) {
	ebitenutil.DebugPrintAt(screen, hudText(s, ebiten.ActualFPS(), ebiten.ActualTPS()), 4, 4)
}
