package faceloop

// FocalPoint is the canvas-normalized point every anchor is aligned to.
// NormWidth, when non-zero, is the on-canvas width (as a fraction of the
// canvas width) that every face box is rescaled to.
type FocalPoint struct {
	NormX, NormY float64
	NormWidth    float64
}

// Rescales reports whether frames are uniformly rescaled.
func (f FocalPoint) Rescales() bool {
	return f.NormWidth != 0
}

// Transform places an image on the canvas: image pixel (x, y) lands on canvas
// pixel (x*Scale+OffsetX, y*Scale+OffsetY).
type Transform struct {
	Scale            float64
	OffsetX, OffsetY float64
}

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// ComputeTransform returns the placement that maps anchor (normalized to the
// image's natural size) onto the focal point of a canvasW x canvasH canvas.
// faceNormWidth is only consulted when the focal point rescales. Zero sizes
// are not guarded against.
func ComputeTransform(naturalW, naturalH, faceNormWidth float64, anchor Vec2, focal FocalPoint, canvasW, canvasH float64) Transform {
	scale := 1.0
	if focal.Rescales() {
		scale = (focal.NormWidth * canvasW) / (naturalW * faceNormWidth)
	}

	scaledX := anchor.X * naturalW * scale
	scaledY := anchor.Y * naturalH * scale

	targetX := focal.NormX * canvasW
	targetY := focal.NormY * canvasH

	return Transform{
		Scale:   scale,
		OffsetX: targetX - scaledX,
		OffsetY: targetY - scaledY,
	}
}

// Matrix returns the transform as an affine matrix [a, b, c, d, tx, ty].
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func (t Transform) Matrix() [6]float64 {
	return [6]float64{t.Scale, 0, 0, t.Scale, t.OffsetX, t.OffsetY}
}

// Apply maps an image pixel to a canvas pixel.
func (t Transform) Apply(x, y float64) (float64, float64) {
	return transformPoint(t.Matrix(), x, y)
}

// Invert maps a canvas pixel back to an image pixel.
func (t Transform) Invert(x, y float64) (float64, float64) {
	return transformPoint(invertAffine(t.Matrix()), x, y)
}

// ApplyRect maps an image-space rectangle onto the canvas.
func (t Transform) ApplyRect(r Rect) Rect {
	x, y := t.Apply(r.X, r.Y)
	return Rect{X: x, Y: y, Width: r.Width * t.Scale, Height: r.Height * t.Scale}
}

// FaceRect returns the face box in image pixels derived from its normalized
// form, so raw values that disagree with the normalized box are ignored.
func FaceRect(b *FaceBox, naturalW, naturalH float64) Rect {
	return Rect{
		X:      naturalW * b.NormX,
		Y:      naturalH * b.NormY,
		Width:  naturalW * b.NormWidth,
		Height: naturalH * b.NormHeight,
	}
}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular (determinant ~ 0).
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}
