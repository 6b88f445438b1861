package faceloop

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
)

const sampleDataset = `{
	"iterable": [
		{
			"src": "https://images.example.com/a.jpeg",
			"avg_color": "#A1B2C3",
			"description": "Smiling woman",
			"face_box": {"x": 100, "y": 200, "width": 400, "height": 100,
				"norm_x": 0.2, "norm_y": 0.3, "norm_width": 0.4, "norm_height": 0.1}
		},
		{
			"src": "b.jpeg",
			"avg_color": "#000000",
			"description": "Man with hat",
			"face_box": {"x": 0, "y": 0, "width": 10, "height": 10,
				"norm_x": 0.1, "norm_y": 0.1, "norm_width": 0.5, "norm_height": 0.5},
			"landmarks": {
				"norm": {
					"top_lip": [[0.4, 0.6], [0.5, 0.62]],
					"bottom_lip": [[0.42, 0.65]]
				},
				"values": {
					"top_lip": [[400, 600], [500, 620]],
					"bottom_lip": [[420, 650]]
				}
			}
		}
	]
}`

func TestParseDataset(t *testing.T) {
	ds, err := ParseDataset([]byte(sampleDataset))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ds.Records) != 2 {
		t.Fatalf("records = %d, want 2", len(ds.Records))
	}
	if len(ds.Rejected) != 0 {
		t.Fatalf("rejected = %v, want none", ds.Rejected)
	}

	a := ds.Records[0]
	if a.Src != "https://images.example.com/a.jpeg" {
		t.Errorf("Src = %q", a.Src)
	}
	if a.Description != "Smiling woman" || a.AvgColor != "#A1B2C3" {
		t.Errorf("unexpected metadata: %+v", a)
	}
	if a.FaceBox.NormX != 0.2 || a.FaceBox.NormHeight != 0.1 || a.FaceBox.Width != 400 {
		t.Errorf("face box = %+v", *a.FaceBox)
	}
	if a.Landmarks != nil {
		t.Error("record without landmarks should have nil Landmarks")
	}

	b := ds.Records[1]
	if !b.Landmarks.Has(TopLip) || !b.Landmarks.Has(BottomLip) {
		t.Fatal("expected lip landmarks")
	}
	if b.Landmarks.Has(Chin) {
		t.Error("Has(chin) = true for a record without chin points")
	}
	if got := b.Landmarks.Values[TopLip][1]; got.X() != 500 || got.Y() != 620 {
		t.Errorf("raw top_lip[1] = %v", got)
	}
}

func TestParseDataset_Invalid(t *testing.T) {
	if _, err := ParseDataset([]byte(`not json`)); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestParseDataset_Empty(t *testing.T) {
	_, err := ParseDataset([]byte(`{"iterable": []}`))
	if !errors.Is(err, ErrEmptyDataset) {
		t.Errorf("err = %v, want ErrEmptyDataset", err)
	}
}

func TestParseDataset_RejectsMalformedRecords(t *testing.T) {
	data := []byte(`{"iterable": [
		{"src": "ok.jpg", "face_box": {"norm_x": 0.1, "norm_y": 0.1, "norm_width": 0.2, "norm_height": 0.2}},
		{"src": "", "face_box": {"norm_x": 0.1, "norm_y": 0.1, "norm_width": 0.2, "norm_height": 0.2}},
		{"src": "nobox.jpg"},
		{"src": "wide.jpg", "face_box": {"norm_x": 0.1, "norm_y": 0.1, "norm_width": 1.5, "norm_height": 0.2}},
		{"src": "zero.jpg", "face_box": {"norm_x": 0.1, "norm_y": 0.1, "norm_width": 0, "norm_height": 0.2}},
		{"src": "color.jpg", "avg_color": "blue", "face_box": {"norm_x": 0.1, "norm_y": 0.1, "norm_width": 0.2, "norm_height": 0.2}},
		{"src": "lm.jpg", "face_box": {"norm_x": 0.1, "norm_y": 0.1, "norm_width": 0.2, "norm_height": 0.2},
			"landmarks": {"norm": {"top_lip": [[1.2, 0.5]]}, "values": {"top_lip": [[12, 5]]}}}
	]}`)
	ds, err := ParseDataset(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ds.Records) != 1 || ds.Records[0].Src != "ok.jpg" {
		t.Fatalf("records = %+v, want only ok.jpg", ds.Records)
	}
	if len(ds.Rejected) != 6 {
		t.Fatalf("rejected = %d, want 6", len(ds.Rejected))
	}
	wantIdx := []int{1, 2, 3, 4, 5, 6}
	for i, rej := range ds.Rejected {
		if rej.Index != wantIdx[i] {
			t.Errorf("rejected[%d].Index = %d, want %d", i, rej.Index, wantIdx[i])
		}
		if rej.Err == nil {
			t.Errorf("rejected[%d] has no error", i)
		}
	}
	if !errors.Is(ds.Rejected[5].Err, ErrInvalidLandmarks) {
		t.Errorf("landmark rejection err = %v, want ErrInvalidLandmarks", ds.Rejected[5].Err)
	}
}

func TestValidateLandmarks(t *testing.T) {
	tests := []struct {
		name string
		lm   Landmarks
		ok   bool
	}{
		{
			name: "consistent",
			lm: Landmarks{
				Norm:   map[LandmarkGroup][]Point{TopLip: {{0.1, 0.2}}, Chin: {{0, 1}}},
				Values: map[LandmarkGroup][]Point{TopLip: {{10, 20}}},
			},
			ok: true,
		},
		{
			name: "unknown group",
			lm:   Landmarks{Norm: map[LandmarkGroup][]Point{"forehead": {{0.1, 0.2}}}},
		},
		{
			name: "raw without normalized",
			lm: Landmarks{
				Norm:   map[LandmarkGroup][]Point{},
				Values: map[LandmarkGroup][]Point{NoseTip: {{10, 20}}},
			},
		},
		{
			name: "count mismatch",
			lm: Landmarks{
				Norm:   map[LandmarkGroup][]Point{LeftEye: {{0.1, 0.2}}},
				Values: map[LandmarkGroup][]Point{LeftEye: {{10, 20}, {11, 21}}},
			},
		},
		{
			name: "negative coordinate",
			lm:   Landmarks{Norm: map[LandmarkGroup][]Point{RightEye: {{-0.1, 0.2}}}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateLandmarks(&tt.lm)
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidLandmarks) {
				t.Errorf("err = %v, want ErrInvalidLandmarks", err)
			}
		})
	}
}

func TestLandmarkGroupValid(t *testing.T) {
	for _, g := range LandmarkGroups {
		if !g.Valid() {
			t.Errorf("%s should be valid", g)
		}
	}
	if LandmarkGroup("top_lips").Valid() {
		t.Error("top_lips should be invalid")
	}
	if len(LandmarkGroups) != 9 {
		t.Errorf("groups = %d, want 9", len(LandmarkGroups))
	}
}

func TestDatasetUsable(t *testing.T) {
	ds, err := ParseDataset([]byte(sampleDataset))
	if err != nil {
		t.Fatal(err)
	}
	if got := ds.Usable(FaceBoxCenter()); len(got) != 2 {
		t.Errorf("face mode usable = %d, want 2", len(got))
	}
	got := ds.Usable(Lips())
	if len(got) != 1 || got[0].Src != "b.jpeg" {
		t.Errorf("lips mode usable = %+v, want only b.jpeg", got)
	}
	if got := ds.Usable(LandmarkAverage(Chin)); len(got) != 0 {
		t.Errorf("chin mode usable = %d, want 0", len(got))
	}
}

func TestLoadDataset(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "iterable.json")
	if err := os.WriteFile(path, []byte(sampleDataset), 0o644); err != nil {
		t.Fatal(err)
	}
	ds, err := LoadDataset(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ds.Records) != 2 {
		t.Errorf("records = %d, want 2", len(ds.Records))
	}
}

func TestLoadDataset_Gzip(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write([]byte(sampleDataset)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "iterable.json.gz")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	ds, err := LoadDataset(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ds.Records) != 2 {
		t.Errorf("records = %d, want 2", len(ds.Records))
	}
}

func TestLoadDataset_Missing(t *testing.T) {
	_, err := LoadDataset(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want os.ErrNotExist", err)
	}
}
