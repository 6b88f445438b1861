package faceloop

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestCrossfadeReachesOpaque(t *testing.T) {
	f := NewCrossfade(1.0, ease.Linear)

	// Exact halves avoid float32 accumulation drift.
	if a := f.Update(0.5); math.Abs(a-0.5) > 0.01 {
		t.Errorf("alpha = %f, want ~0.5", a)
	}
	if f.Done {
		t.Fatal("done too early")
	}
	if a := f.Update(0.5); a != 1 {
		t.Errorf("alpha = %f, want 1", a)
	}
	if !f.Done {
		t.Fatal("expected Done after full duration")
	}
	if a := f.Update(1); a != 1 {
		t.Errorf("alpha after done = %f, want 1", a)
	}
}

func TestCrossfadeDefaults(t *testing.T) {
	f := NewCrossfade(0, nil)
	if !f.Done || f.Alpha != 1 {
		t.Errorf("zero-length fade: done=%v alpha=%f", f.Done, f.Alpha)
	}

	f = NewCrossfade(0.5, nil)
	if a := f.Update(0.25); math.Abs(a-0.5) > 0.01 {
		t.Errorf("nil ease should be linear, alpha = %f", a)
	}
}

func TestCrossfadeOvershootIsClamped(t *testing.T) {
	f := NewCrossfade(1.0, ease.OutBack)
	for i := 0; i < 4; i++ {
		a := f.Update(0.25)
		if a < 0 || a > 1 {
			t.Errorf("alpha %f escaped [0,1]", a)
		}
	}
}
