package faceloop

import "time"

// Clock is a Scheduler advanced by the host loop.
type Clock interface {
	Scheduler
	Advance(dt time.Duration)
}

// Action is a user command understood by a Slideshow.
type Action uint8

const (
	ActionToggleOverlay Action = iota // show or hide the face box outline
	ActionTogglePause                 // stop or resume frame ticks
	ActionScreenshot                  // capture the next drawn frame
	ActionRemount                     // tear down and remount, restarting at frame 0
)

// Slideshow is the view that owns playback: it mounts a Player on a Clock,
// renders the selected items onto a Surface and keeps the crossfade, debug
// and screenshot state. All methods must be called from the host loop.
type Slideshow struct {
	cfg      Config
	items    *Preloader
	renderer *Renderer
	surface  Surface
	clock    Clock

	player  *Player
	sub     Subscription
	mounted bool
	paused  bool

	current  Placement
	previous Placement
	fade     *Crossfade

	overlayStyle BoxStyle
	debug        bool

	// ScreenshotDir is the directory screenshots are written to.
	ScreenshotDir   string
	screenshotQueue []string

	injectQueue []Action
	testRunner  *TestRunner
}

// NewSlideshow wires a slideshow over preloaded items. It is not mounted;
// call Mount to start ticking.
func NewSlideshow(items *Preloader, surface Surface, clock Clock, cfg Config) *Slideshow {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	style := DefaultBoxStyle
	if cfg.Overlay != nil {
		style = *cfg.Overlay
	}
	return &Slideshow{
		cfg:           cfg,
		items:         items,
		renderer:      NewRenderer(cfg),
		surface:       surface,
		clock:         clock,
		overlayStyle:  style,
		ScreenshotDir: "screenshots",
	}
}

// Config returns the configuration the slideshow was built with.
func (s *Slideshow) Config() Config {
	return s.cfg
}

// Items returns the preloader feeding the slideshow.
func (s *Slideshow) Items() *Preloader {
	return s.items
}

// Mount starts ticking with a fresh frame counter. Mounting twice is a no-op.
func (s *Slideshow) Mount() {
	if s.mounted {
		return
	}
	s.player = NewPlayer(s.items, s.drawItem)
	s.sub = s.clock.Schedule(s.tick, s.cfg.Interval)
	s.mounted = true
}

// Unmount cancels the tick subscription and discards the frame counter. No
// tick fires after Unmount returns.
func (s *Slideshow) Unmount() {
	if !s.mounted {
		return
	}
	s.clock.Cancel(s.sub)
	s.sub = 0
	s.player = nil
	s.mounted = false
	s.fade = nil
	s.current = Placement{}
	s.previous = Placement{}
}

// Mounted reports whether the slideshow is ticking.
func (s *Slideshow) Mounted() bool {
	return s.mounted
}

// Paused reports whether ticks are suspended.
func (s *Slideshow) Paused() bool {
	return s.paused
}

// Frame returns the frame counter, or 0 when unmounted.
func (s *Slideshow) Frame() uint64 {
	if s.player == nil {
		return 0
	}
	return s.player.Frame()
}

// Current returns the placement drawn by the latest tick.
func (s *Slideshow) Current() Placement {
	return s.current
}

// Update advances the slideshow by one host frame of length dt.
func (s *Slideshow) Update(dt time.Duration) {
	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.processInjected()

	if s.fade != nil {
		alpha := s.fade.Update(float32(dt.Seconds()))
		s.renderer.RenderFade(s.surface, s.previous, s.current, alpha)
		if s.fade.Done {
			s.fade = nil
			s.previous = Placement{}
		}
	}

	if !s.paused {
		s.clock.Advance(dt)
	}
}

// HandleAction applies a user command.
func (s *Slideshow) HandleAction(a Action) {
	switch a {
	case ActionToggleOverlay:
		if s.renderer.Overlay == nil {
			style := s.overlayStyle
			s.renderer.Overlay = &style
		} else {
			s.renderer.Overlay = nil
		}
		if s.current.Item != nil && s.fade == nil {
			s.surface.Clear()
			s.renderer.draw(s.surface, s.current, 1)
		}
	case ActionTogglePause:
		s.paused = !s.paused
	case ActionScreenshot:
		s.Screenshot("manual")
	case ActionRemount:
		s.Unmount()
		s.Mount()
	}
}

func (s *Slideshow) tick() {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.player.Tick()

	if s.debug {
		s.debugLog(s.tickStats(time.Since(t0)))
	}
}

// drawItem paints the item selected by the player.
func (s *Slideshow) drawItem(it *Item) {
	if s.cfg.Fade > 0 && s.current.Item != nil && s.current.Item != it {
		s.previous = s.current
		s.current = s.renderer.Place(it)
		s.fade = NewCrossfade(float32(s.cfg.Fade.Seconds()), s.cfg.FadeEase)
		s.renderer.RenderFade(s.surface, s.previous, s.current, 0)
		return
	}
	s.fade = nil
	s.current = s.renderer.Render(s.surface, it)
}
