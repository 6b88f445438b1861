package faceloop

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title         string
	Width, Height int

	// Background fills the window around the canvas.
	Background Color

	// ShowFPS draws the FPS/TPS and playback counters.
	ShowFPS bool

	// Keys binds keys to actions. Nil uses DefaultKeyMap.
	Keys KeyMap

	// ExitWhenScriptDone closes the window once an attached TestRunner
	// finishes.
	ExitWhenScriptDone bool
}

// Game adapts a Slideshow and its Canvas to ebiten.Game. The canvas is drawn
// centered in the window.
type Game struct {
	show   *Slideshow
	canvas *Canvas
	cfg    RunConfig

	actions []Action
}

// NewGame creates the ebiten.Game for show painting onto canvas.
func NewGame(show *Slideshow, canvas *Canvas, cfg RunConfig) *Game {
	if cfg.Keys == nil {
		cfg.Keys = DefaultKeyMap
	}
	if cfg.Width <= 0 {
		cfg.Width = canvas.Width()
	}
	if cfg.Height <= 0 {
		cfg.Height = canvas.Height()
	}
	return &Game{show: show, canvas: canvas, cfg: cfg}
}

// Update polls input and advances the slideshow by one tick of the host loop.
func (g *Game) Update() error {
	g.actions = g.cfg.Keys.appendPressed(g.actions[:0])
	for _, a := range g.actions {
		g.show.HandleAction(a)
	}

	g.show.Update(time.Second / time.Duration(ebiten.TPS()))

	if g.cfg.ExitWhenScriptDone && g.show.testRunner != nil && g.show.testRunner.Done() &&
		len(g.show.screenshotQueue) == 0 {
		return ebiten.Termination
	}
	return nil
}

// Draw blits the canvas to the screen, then the HUD, then flushes queued
// screenshots.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.cfg.Background.A > 0 {
		screen.Fill(g.cfg.Background.toRGBA())
	}

	var op ebiten.DrawImageOptions
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	op.GeoM.Translate(float64(sw-g.canvas.Width())/2, float64(sh-g.canvas.Height())/2)
	screen.DrawImage(g.canvas.Image(), &op)

	if g.cfg.ShowFPS {
		drawHUD(screen, g.show)
	}
	g.show.flushScreenshots(screen)
}

// Layout returns the configured window size.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// Run opens a window, mounts show and blocks until the window closes. The
// slideshow is unmounted before Run returns.
func Run(show *Slideshow, canvas *Canvas, cfg RunConfig) error {
	g := NewGame(show, canvas, cfg)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(g.cfg.Width, g.cfg.Height)

	show.Mount()
	defer show.Unmount()
	return ebiten.RunGame(g)
}
