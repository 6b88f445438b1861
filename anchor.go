package faceloop

import (
	"fmt"
	"math"
	"strings"
)

// AnchorKind distinguishes the two anchor strategies.
type AnchorKind uint8

const (
	AnchorFaceBoxCenter   AnchorKind = iota // center of the normalized face box
	AnchorLandmarkAverage                   // mean of the pooled landmark points
)

// AnchorMode selects which point of a face is aligned to the focal point.
// Build one with FaceBoxCenter or LandmarkAverage.
type AnchorMode struct {
	kind   AnchorKind
	groups []LandmarkGroup
}

// FaceBoxCenter anchors on the center of each record's face box.
func FaceBoxCenter() AnchorMode {
	return AnchorMode{kind: AnchorFaceBoxCenter}
}

// LandmarkAverage anchors on the mean of every normalized point in the given
// groups. With no groups it behaves like FaceBoxCenter.
func LandmarkAverage(groups ...LandmarkGroup) AnchorMode {
	if len(groups) == 0 {
		return FaceBoxCenter()
	}
	return AnchorMode{kind: AnchorLandmarkAverage, groups: append([]LandmarkGroup(nil), groups...)}
}

// Lips anchors on the average of the top and bottom lip outlines.
func Lips() AnchorMode {
	return LandmarkAverage(TopLip, BottomLip)
}

// Kind returns the anchor strategy.
func (m AnchorMode) Kind() AnchorKind { return m.kind }

// Groups returns a copy of the averaged landmark groups.
func (m AnchorMode) Groups() []LandmarkGroup {
	return append([]LandmarkGroup(nil), m.groups...)
}

func (m AnchorMode) String() string {
	if m.kind == AnchorFaceBoxCenter {
		return "face"
	}
	names := make([]string, len(m.groups))
	for i, g := range m.groups {
		names[i] = string(g)
	}
	return strings.Join(names, ",")
}

// ParseAnchorMode parses "face", "lips", or a comma separated list of
// landmark group names.
func ParseAnchorMode(s string) (AnchorMode, error) {
	switch strings.TrimSpace(s) {
	case "", "face", "facebox":
		return FaceBoxCenter(), nil
	case "lips", "mouth":
		return Lips(), nil
	}
	var groups []LandmarkGroup
	for _, part := range strings.Split(s, ",") {
		g := LandmarkGroup(strings.TrimSpace(part))
		if !g.Valid() {
			return AnchorMode{}, fmt.Errorf("parse anchor mode: unknown landmark group %q", g)
		}
		groups = append(groups, g)
	}
	return LandmarkAverage(groups...), nil
}

// Supports returns nil when r carries everything ResolveAnchor needs under m.
func (m AnchorMode) Supports(r *Record) error {
	if m.kind == AnchorFaceBoxCenter {
		return nil
	}
	for _, g := range m.groups {
		if !r.Landmarks.Has(g) {
			return fmt.Errorf("record %q: %w %s", r.Src, ErrMissingLandmarks, g)
		}
	}
	return nil
}

// ResolveAnchor returns the normalized point of r that must land on the focal
// point. In landmark mode a missing or empty group yields NaN coordinates;
// filter records with AnchorMode.Supports beforehand.
func ResolveAnchor(r *Record, m AnchorMode) Vec2 {
	if m.kind == AnchorFaceBoxCenter {
		return r.FaceBox.Center()
	}

	if r.Landmarks == nil {
		return Vec2{X: math.NaN(), Y: math.NaN()}
	}
	var sumX, sumY float64
	n := 0
	for _, g := range m.groups {
		pts := r.Landmarks.Norm[g]
		if len(pts) == 0 {
			return Vec2{X: math.NaN(), Y: math.NaN()}
		}
		for _, p := range pts {
			sumX += p.X()
			sumY += p.Y()
			n++
		}
	}
	return Vec2{X: sumX / float64(n), Y: sumY / float64(n)}
}
