package faceloop

import (
	"math"
	"testing"
)

func TestComputeTransformNoRescale(t *testing.T) {
	focal := FocalPoint{NormX: 0.5, NormY: 0.5}
	tr := ComputeTransform(800, 600, 0.25, Vec2{X: 0.5, Y: 0.5}, focal, 500, 500)
	if tr.Scale != 1 {
		t.Errorf("Scale = %v, want 1", tr.Scale)
	}
	// Anchor sits at (400, 300) in the image; target is (250, 250).
	if !approxEqual(tr.OffsetX, -150) || !approxEqual(tr.OffsetY, -50) {
		t.Errorf("offset = (%v, %v), want (-150, -50)", tr.OffsetX, tr.OffsetY)
	}
}

func TestComputeTransformRescale(t *testing.T) {
	focal := FocalPoint{NormX: 0.5, NormY: 0.4, NormWidth: 0.3}
	// Face box is 0.25 * 1200 = 300px wide; target is 0.3 * 500 = 150px.
	tr := ComputeTransform(1200, 900, 0.25, Vec2{X: 0.5, Y: 0.5}, focal, 500, 500)
	if !approxEqual(tr.Scale, 0.5) {
		t.Errorf("Scale = %v, want 0.5", tr.Scale)
	}
	if !approxEqual(tr.OffsetX, 250-300) || !approxEqual(tr.OffsetY, 200-225) {
		t.Errorf("offset = (%v, %v), want (-50, -25)", tr.OffsetX, tr.OffsetY)
	}
}

// Anchors of differently sized and cropped images all land on the focal
// pixel, and rescaled face boxes all share the target width.
func TestComputeTransformAlignmentInvariant(t *testing.T) {
	const canvasW, canvasH = 500.0, 400.0
	focal := FocalPoint{NormX: 0.45, NormY: 0.6, NormWidth: 0.35}
	cases := []struct {
		w, h float64
		box  FaceBox
	}{
		{640, 480, FaceBox{NormX: 0.2, NormY: 0.3, NormWidth: 0.4, NormHeight: 0.1}},
		{1920, 1080, FaceBox{NormX: 0.6, NormY: 0.05, NormWidth: 0.1, NormHeight: 0.3}},
		{300, 900, FaceBox{NormX: 0, NormY: 0.5, NormWidth: 0.9, NormHeight: 0.4}},
		{4000, 3000, FaceBox{NormX: 0.45, NormY: 0.45, NormWidth: 0.05, NormHeight: 0.07}},
	}
	modes := []struct {
		name string
		mode AnchorMode
	}{
		{"face", FaceBoxCenter()},
		{"lips", Lips()},
	}
	for _, m := range modes {
		for _, c := range cases {
			box := c.box
			r := Record{Src: "x", FaceBox: &box, Landmarks: &Landmarks{Norm: map[LandmarkGroup][]Point{
				TopLip:    {{box.NormX + box.NormWidth*0.3, box.NormY + box.NormHeight*0.7}, {box.NormX + box.NormWidth*0.7, box.NormY + box.NormHeight*0.7}},
				BottomLip: {{box.NormX + box.NormWidth*0.5, box.NormY + box.NormHeight*0.8}},
			}}}
			anchor := ResolveAnchor(&r, m.mode)
			tr := ComputeTransform(c.w, c.h, box.NormWidth, anchor, focal, canvasW, canvasH)

			x, y := tr.Apply(anchor.X*c.w, anchor.Y*c.h)
			if math.Abs(x-focal.NormX*canvasW) > 1e-6 || math.Abs(y-focal.NormY*canvasH) > 1e-6 {
				t.Errorf("%s %vx%v: anchor landed on (%v, %v), want (%v, %v)",
					m.name, c.w, c.h, x, y, focal.NormX*canvasW, focal.NormY*canvasH)
			}

			face := tr.ApplyRect(FaceRect(&box, c.w, c.h))
			if math.Abs(face.Width-focal.NormWidth*canvasW) > 1e-6 {
				t.Errorf("%s %vx%v: face width = %v, want %v", m.name, c.w, c.h, face.Width, focal.NormWidth*canvasW)
			}
		}
	}
}

func TestTransformInvertRoundTrip(t *testing.T) {
	tr := Transform{Scale: 0.75, OffsetX: -40, OffsetY: 12.5}
	x, y := tr.Apply(123, 456)
	bx, by := tr.Invert(x, y)
	if math.Abs(bx-123) > 1e-9 || math.Abs(by-456) > 1e-9 {
		t.Errorf("round trip = (%v, %v), want (123, 456)", bx, by)
	}
}

func TestTransformMatrix(t *testing.T) {
	tr := Transform{Scale: 2, OffsetX: 3, OffsetY: 4}
	want := [6]float64{2, 0, 0, 2, 3, 4}
	if got := tr.Matrix(); got != want {
		t.Errorf("Matrix = %v, want %v", got, want)
	}
}

func TestInvertAffineSingular(t *testing.T) {
	if got := invertAffine([6]float64{0, 0, 0, 0, 5, 5}); got != identityTransform {
		t.Errorf("invertAffine(singular) = %v, want identity", got)
	}
}

func TestFaceRect(t *testing.T) {
	box := FaceBox{X: 999, Y: 999, NormX: 0.2, NormY: 0.3, NormWidth: 0.4, NormHeight: 0.1}
	got := FaceRect(&box, 1000, 500)
	want := Rect{X: 200, Y: 150, Width: 400, Height: 50}
	if !approxEqual(got.X, want.X) || !approxEqual(got.Y, want.Y) ||
		!approxEqual(got.Width, want.Width) || !approxEqual(got.Height, want.Height) {
		t.Errorf("FaceRect = %+v, want %+v", got, want)
	}
}
