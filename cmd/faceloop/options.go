package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/phanxgames/faceloop"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/pflag"
)

const (
	datasetEnv   = "FACELOOP_DATASET"
	assetRootEnv = "FACELOOP_ASSET_ROOT"
)

// Options holds the flags shared by play, render and inspect.
type Options struct {
	Dataset      string
	AssetRoot    string
	Anchor       string
	Focal        string
	FeatureWidth float64
	Interval     time.Duration
	Size         string
	DebugBox     bool
}

func (o *Options) bindDataset(fs *pflag.FlagSet) {
	fs.StringVarP(&o.Dataset, "dataset", "d", "", "Dataset JSON file (.json or .json.gz), defaults to $"+datasetEnv)
	fs.StringVar(&o.AssetRoot, "assets", "", "Directory relative image paths resolve against, defaults to $"+assetRootEnv+" or the dataset's directory")
	fs.StringVarP(&o.Anchor, "anchor", "a", "face", "Anchor: face, lips, or a comma list of landmark groups")
}

func (o *Options) bindLayout(fs *pflag.FlagSet) {
	fs.StringVar(&o.Focal, "focal", "0.5,0.5", "Focal point as normalized x,y")
	fs.Float64Var(&o.FeatureWidth, "feature-width", 0, "Rescale every face box to this fraction of the canvas width (0 disables)")
	fs.DurationVar(&o.Interval, "interval", faceloop.DefaultInterval, "Time between frames")
	fs.StringVar(&o.Size, "size", "500x500", "Canvas size as WxH")
	fs.BoolVar(&o.DebugBox, "debug-box", false, "Outline the face box on every frame")
}

// resolvePaths fills Dataset and AssetRoot from the environment when unset.
func (o *Options) resolvePaths() error {
	if o.Dataset == "" {
		o.Dataset = os.Getenv(datasetEnv)
	}
	if o.Dataset == "" {
		return fmt.Errorf("no dataset: pass --dataset or set %s", datasetEnv)
	}
	if o.AssetRoot == "" {
		o.AssetRoot = os.Getenv(assetRootEnv)
	}
	if o.AssetRoot == "" {
		o.AssetRoot = filepath.Dir(o.Dataset)
	}
	return nil
}

// config turns the layout flags into a faceloop.Config.
func (o *Options) config() (faceloop.Config, error) {
	cfg := faceloop.DefaultConfig()

	mode, err := faceloop.ParseAnchorMode(o.Anchor)
	if err != nil {
		return cfg, err
	}
	cfg.Anchor = mode

	if o.Focal != "" {
		x, y, err := parsePair(o.Focal, ",")
		if err != nil {
			return cfg, fmt.Errorf("--focal: %w", err)
		}
		cfg.Focal.NormX, cfg.Focal.NormY = x, y
	}
	if o.FeatureWidth < 0 || o.FeatureWidth > 1 {
		return cfg, fmt.Errorf("--feature-width: %v outside [0,1]", o.FeatureWidth)
	}
	cfg.Focal.NormWidth = o.FeatureWidth

	if o.Size != "" {
		w, h, err := parseSize(o.Size)
		if err != nil {
			return cfg, fmt.Errorf("--size: %w", err)
		}
		cfg.CanvasWidth, cfg.CanvasHeight = w, h
	}
	if o.Interval > 0 {
		cfg.Interval = o.Interval
	}
	if o.DebugBox {
		style := faceloop.DefaultBoxStyle
		cfg.Overlay = &style
	}
	return cfg, nil
}

func parsePair(s, sep string) (float64, float64, error) {
	a, b, ok := strings.Cut(s, sep)
	if !ok {
		return 0, 0, fmt.Errorf("%q: want two values separated by %q", s, sep)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(a), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(b), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%q: %w", s, err)
	}
	return x, y, nil
}

func parseSize(s string) (int, int, error) {
	w, h, err := parsePair(strings.ToLower(s), "x")
	if err != nil {
		return 0, 0, err
	}
	if w < 1 || h < 1 || w != float64(int(w)) || h != float64(int(h)) {
		return 0, 0, fmt.Errorf("%q: want positive integer dimensions", s)
	}
	return int(w), int(h), nil
}

// loadRecords reads the dataset and returns the records the anchor mode can
// align. Rejected and unsupported records are logged and dropped.
func loadRecords(o *Options, mode faceloop.AnchorMode) ([]faceloop.Record, error) {
	ds, err := faceloop.LoadDataset(o.Dataset)
	if err != nil {
		return nil, err
	}
	for _, rej := range ds.Rejected {
		log.Warn().Int("index", rej.Index).Str("src", rej.Src).Err(rej.Err).Msg("record rejected")
	}
	records := ds.Usable(mode)
	if skipped := len(ds.Records) - len(records); skipped > 0 {
		log.Warn().Int("skipped", skipped).Str("anchor", mode.String()).Msg("records missing anchor landmarks")
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: %w", o.Dataset, faceloop.ErrEmptyDataset)
	}
	log.Info().Int("records", len(records)).Str("dataset", o.Dataset).Msg("dataset loaded")
	return records, nil
}

// preload starts loading every record. When bar is non-nil it is advanced as
// loads settle. Failures are logged at debug level only.
func preload(ctx context.Context, root string, records []faceloop.Record, bar *progressbar.ProgressBar) *faceloop.Preloader {
	return faceloop.Preload(ctx, faceloop.NewLoader(root), records, func(it *faceloop.Item, err error) {
		if err != nil {
			log.Debug().Err(err).Int("index", it.Index()).Msg("image load failed")
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	})
}

func newBar(total int, desc string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription(desc),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
	)
}
