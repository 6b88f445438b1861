package faceloop

import (
	"testing"
	"time"
)

func TestTickStatsReportsDrawnFrame(t *testing.T) {
	p := newTestPreloader(2, 10, 10, 1)
	show, _ := newTestSlideshow(p, &recordingSurface{}, nil)
	show.SetDebugMode(true)
	if !show.DebugMode() {
		t.Fatal("debug mode not enabled")
	}
	show.Mount()
	show.Update(100 * time.Millisecond)

	st := show.tickStats(time.Millisecond)
	if st.frame != 0 || st.index != 0 || st.ready != 1 || st.total != 2 {
		t.Errorf("stats = %+v", st)
	}
	if st.src != "img1.jpg" {
		t.Errorf("src = %q, want img1.jpg", st.src)
	}
}

func TestTickStatsSkippedTick(t *testing.T) {
	p := newTestPreloader(2, 10, 10)
	show, _ := newTestSlideshow(p, &recordingSurface{}, nil)
	show.SetDebugMode(true)
	show.Mount()
	show.Update(100 * time.Millisecond)

	st := show.tickStats(0)
	if st.index != -1 || st.src != "" || st.ready != 0 {
		t.Errorf("stats = %+v, want a skipped tick", st)
	}
	if show.Frame() != 1 {
		t.Errorf("Frame = %d, want 1", show.Frame())
	}
}
