package faceloop

import (
	"time"

	"github.com/rs/zerolog/log"
)

// tickStats holds per-tick selection and timing metrics.
// Only populated when the slideshow is in debug mode.
type tickStats struct {
	frame     uint64
	ready     int
	total     int
	index     int
	src       string
	transform Transform
	tickTime  time.Duration
}

// SetDebugMode enables or disables debug mode. When enabled, every tick logs
// the selected item, its placement and the preload counters at debug level.
func (s *Slideshow) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// DebugMode reports whether debug mode is enabled.
func (s *Slideshow) DebugMode() bool {
	return s.debug
}

func (s *Slideshow) tickStats(elapsed time.Duration) tickStats {
	st := s.items.Stats()
	stats := tickStats{
		// The counter already advanced; report the frame that was drawn.
		frame:    s.player.Frame() - 1,
		ready:    st.Ready,
		total:    st.Total,
		index:    s.player.LastIndex(),
		tickTime: elapsed,
	}
	if stats.index >= 0 && s.current.Item != nil {
		stats.src = s.current.Item.Record.Src
		stats.transform = s.current.Transform
	}
	return stats
}

// debugLog writes tick stats through the global logger.
func (s *Slideshow) debugLog(stats tickStats) {
	if !s.debug {
		return
	}
	if stats.index < 0 {
		log.Debug().
			Uint64("frame", stats.frame).
			Int("ready", stats.ready).
			Int("total", stats.total).
			Msg("tick skipped: no ready items")
		return
	}
	log.Debug().
		Uint64("frame", stats.frame).
		Int("ready", stats.ready).
		Int("total", stats.total).
		Int("index", stats.index).
		Str("src", stats.src).
		Float64("scale", stats.transform.Scale).
		Float64("offset_x", stats.transform.OffsetX).
		Float64("offset_y", stats.transform.OffsetY).
		Dur("tick", stats.tickTime).
		Msg("tick")
}
