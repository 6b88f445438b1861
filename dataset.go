package faceloop

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/klauspost/compress/gzip"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	// ErrEmptyDataset is returned when a dataset document holds no records.
	ErrEmptyDataset = errors.New("dataset has no records")
	// ErrMissingLandmarks is returned when a record lacks a landmark group
	// that the anchor mode averages.
	ErrMissingLandmarks = errors.New("missing landmark group")
	// ErrInvalidLandmarks is returned when a record's landmark sets are
	// inconsistent or out of range.
	ErrInvalidLandmarks = errors.New("invalid landmarks")
)

// LandmarkGroup names one facial feature outline.
type LandmarkGroup string

const (
	Chin         LandmarkGroup = "chin"
	LeftEyebrow  LandmarkGroup = "left_eyebrow"
	RightEyebrow LandmarkGroup = "right_eyebrow"
	NoseBridge   LandmarkGroup = "nose_bridge"
	NoseTip      LandmarkGroup = "nose_tip"
	LeftEye      LandmarkGroup = "left_eye"
	RightEye     LandmarkGroup = "right_eye"
	TopLip       LandmarkGroup = "top_lip"
	BottomLip    LandmarkGroup = "bottom_lip"
)

// LandmarkGroups lists every known group in a fixed order.
var LandmarkGroups = []LandmarkGroup{
	Chin, LeftEyebrow, RightEyebrow, NoseBridge, NoseTip,
	LeftEye, RightEye, TopLip, BottomLip,
}

// Valid reports whether g is one of the known groups.
func (g LandmarkGroup) Valid() bool {
	for _, known := range LandmarkGroups {
		if g == known {
			return true
		}
	}
	return false
}

// Point is a 2D coordinate stored as a two element JSON array.
type Point [2]float64

// X returns the horizontal coordinate.
func (p Point) X() float64 { return p[0] }

// Y returns the vertical coordinate.
func (p Point) Y() float64 { return p[1] }

// FaceBox bounds the primary face of an image, in pixels and normalized to the
// image's own dimensions.
type FaceBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	NormX      float64 `json:"norm_x" validate:"gte=0,lte=1"`
	NormY      float64 `json:"norm_y" validate:"gte=0,lte=1"`
	NormWidth  float64 `json:"norm_width" validate:"gt=0,lte=1"`
	NormHeight float64 `json:"norm_height" validate:"gt=0,lte=1"`
}

// Center returns the normalized center of the box.
func (b FaceBox) Center() Vec2 {
	return Vec2{X: b.NormX + b.NormWidth/2, Y: b.NormY + b.NormHeight/2}
}

// Landmarks holds the same facial outlines in raw pixels (Values) and
// normalized to the image size (Norm).
type Landmarks struct {
	Values map[LandmarkGroup][]Point `json:"values"`
	Norm   map[LandmarkGroup][]Point `json:"norm"`
}

// Has reports whether the normalized set carries a non-empty group g.
func (l *Landmarks) Has(g LandmarkGroup) bool {
	return l != nil && len(l.Norm[g]) > 0
}

// Record is one photograph of the dataset. Records are read-only once loaded.
type Record struct {
	Src         string     `json:"src" validate:"required"`
	AvgColor    string     `json:"avg_color" validate:"omitempty,hexcolor"`
	Description string     `json:"description"`
	FaceBox     *FaceBox   `json:"face_box" validate:"required"`
	Landmarks   *Landmarks `json:"landmarks,omitempty"`
}

// Rejection describes a record dropped during validation.
type Rejection struct {
	Index int
	Src   string
	Err   error
}

// Dataset is the ordered, validated collection of records.
type Dataset struct {
	Records  []Record
	Rejected []Rejection
}

// document is the top-level JSON structure of a dataset file.
type document struct {
	Iterable []Record `json:"iterable"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// LoadDataset reads a dataset document from disk. Paths ending in ".gz" are
// decompressed first.
func LoadDataset(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open dataset %s: %w", path, err)
		}
		defer zr.Close()
		r = zr
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}
	return ParseDataset(data)
}

// ParseDataset decodes a dataset document. Records failing validation are
// moved to Rejected instead of failing the whole document; an error is
// returned only for undecodable input or when no record exists at all.
func ParseDataset(data []byte) (*Dataset, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}
	if len(doc.Iterable) == 0 {
		return nil, fmt.Errorf("parse dataset: %w", ErrEmptyDataset)
	}

	ds := &Dataset{Records: make([]Record, 0, len(doc.Iterable))}
	for i, rec := range doc.Iterable {
		if err := ValidateRecord(&rec); err != nil {
			ds.Rejected = append(ds.Rejected, Rejection{Index: i, Src: rec.Src, Err: err})
			continue
		}
		ds.Records = append(ds.Records, rec)
	}
	return ds, nil
}

// ValidateRecord checks the face box ranges and landmark consistency of r.
func ValidateRecord(r *Record) error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("record %q: %w", r.Src, err)
	}
	if r.Landmarks != nil {
		if err := validateLandmarks(r.Landmarks); err != nil {
			return fmt.Errorf("record %q: %w", r.Src, err)
		}
	}
	return nil
}

// validateLandmarks enforces that every normalized coordinate lies in [0, 1]
// and that each raw group has a normalized twin with the same point count.
func validateLandmarks(l *Landmarks) error {
	for g, pts := range l.Norm {
		if !g.Valid() {
			return fmt.Errorf("%w: unknown group %q", ErrInvalidLandmarks, g)
		}
		for _, p := range pts {
			if p.X() < 0 || p.X() > 1 || p.Y() < 0 || p.Y() > 1 {
				return fmt.Errorf("%w: %s point (%g, %g) outside [0,1]", ErrInvalidLandmarks, g, p.X(), p.Y())
			}
		}
	}
	for g, pts := range l.Values {
		if !g.Valid() {
			return fmt.Errorf("%w: unknown group %q", ErrInvalidLandmarks, g)
		}
		norm, ok := l.Norm[g]
		if !ok {
			return fmt.Errorf("%w: %s has raw points but no normalized points", ErrInvalidLandmarks, g)
		}
		if len(norm) != len(pts) {
			return fmt.Errorf("%w: %s has %d raw and %d normalized points", ErrInvalidLandmarks, g, len(pts), len(norm))
		}
	}
	return nil
}

// Usable returns the records able to resolve an anchor under mode, in
// dataset order.
func (d *Dataset) Usable(mode AnchorMode) []Record {
	out := make([]Record, 0, len(d.Records))
	for i := range d.Records {
		if mode.Supports(&d.Records[i]) == nil {
			out = append(out, d.Records[i])
		}
	}
	return out
}
