package faceloop

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// KeyMap binds keys to slideshow actions.
type KeyMap map[ebiten.Key]Action

// DefaultKeyMap binds D to the face box overlay, Space to pause, S to a
// screenshot and R to remount.
var DefaultKeyMap = KeyMap{
	ebiten.KeyD:     ActionToggleOverlay,
	ebiten.KeySpace: ActionTogglePause,
	ebiten.KeyS:     ActionScreenshot,
	ebiten.KeyR:     ActionRemount,
}

// appendPressed appends the actions whose keys were pressed this frame.
func (km KeyMap) appendPressed(dst []Action) []Action {
	for _, k := range inpututil.AppendJustPressedKeys(nil) {
		if a, ok := km[k]; ok {
			dst = append(dst, a)
		}
	}
	return dst
}
