package main

import (
	"fmt"
	"image"
	"image/gif"
	"image/color/palette"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/phanxgames/faceloop"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/image/draw"
)

type renderOptions struct {
	Options
	Frames int
	Out    string
	Wait   bool
}

var renderOpts renderOptions

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render frames headlessly to an animated GIF or a PNG sequence",
	Long: `Render frames headlessly to an animated GIF or a PNG sequence.

An --out ending in .gif writes one animated GIF; anything else is a directory
that receives frame_0000.png, frame_0001.png, ...`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRender(cmd, &renderOpts)
	},
}

func init() {
	fs := renderCmd.Flags()
	renderOpts.bindDataset(fs)
	renderOpts.bindLayout(fs)
	fs.IntVarP(&renderOpts.Frames, "frames", "n", 0, "Number of frames to render (default: one per record)")
	fs.StringVarP(&renderOpts.Out, "out", "o", "", "Output .gif file or directory")
	fs.BoolVar(&renderOpts.Wait, "wait", true, "Wait for every image to load before rendering")
	renderCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, o *renderOptions) error {
	if err := o.resolvePaths(); err != nil {
		return err
	}
	cfg, err := o.config()
	if err != nil {
		return err
	}
	records, err := loadRecords(&o.Options, cfg.Anchor)
	if err != nil {
		return err
	}
	frames := o.Frames
	if frames <= 0 {
		frames = len(records)
	}

	ctx := cmd.Context()
	var items *faceloop.Preloader
	if o.Wait {
		bar := newBar(len(records), "Loading")
		items = preload(ctx, o.AssetRoot, records, bar)
		if err := items.Wait(ctx); err != nil {
			return err
		}
		_ = bar.Finish()
		fmt.Fprintln(os.Stderr)
	} else {
		items = preload(ctx, o.AssetRoot, records, nil)
	}

	surface := faceloop.NewRasterSurface(cfg.CanvasWidth, cfg.CanvasHeight, cfg.ClearColor)
	show := faceloop.NewSlideshow(items, surface, &faceloop.FrameScheduler{}, cfg)

	var sink frameSink
	if strings.EqualFold(filepath.Ext(o.Out), ".gif") {
		sink = &gifSink{path: o.Out, delay: gifDelay(cfg.Interval)}
	} else {
		if err := os.MkdirAll(o.Out, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
		sink = pngSink{dir: o.Out}
	}

	bar := newBar(frames, "Rendering")
	err = renderFrames(show, surface, frames, func(i int, img image.Image) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		_ = bar.Add(1)
		return sink.Add(i, img)
	})
	_ = bar.Finish()
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return err
	}
	if err := sink.Close(); err != nil {
		return err
	}
	log.Info().Int("frames", frames).Str("out", o.Out).Msg("rendered")
	return nil
}

// renderFrames mounts show and advances it one interval per frame, handing
// the surface contents to emit after every step.
func renderFrames(show *faceloop.Slideshow, surface *faceloop.RasterSurface, n int, emit func(int, image.Image) error) error {
	interval := show.Config().Interval
	show.Mount()
	defer show.Unmount()

	for i := 0; i < n; i++ {
		show.Update(interval)
		if err := emit(i, surface.Image()); err != nil {
			return err
		}
	}
	return nil
}

// frameSink receives rendered frames in order.
type frameSink interface {
	Add(i int, img image.Image) error
	Close() error
}

type pngSink struct {
	dir string
}

func (s pngSink) Add(i int, img image.Image) error {
	return faceloop.SavePNG(filepath.Join(s.dir, fmt.Sprintf("frame_%04d.png", i)), img)
}

func (pngSink) Close() error { return nil }

// gifSink quantizes every frame to the Plan 9 palette and writes the
// animation on Close.
type gifSink struct {
	path  string
	delay int
	anim  gif.GIF
}

func (s *gifSink) Add(_ int, img image.Image) error {
	s.anim.Image = append(s.anim.Image, paletted(img))
	s.anim.Delay = append(s.anim.Delay, s.delay)
	return nil
}

func (s *gifSink) Close() error {
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("create %s: %w", s.path, err)
	}
	if err := gif.EncodeAll(f, &s.anim); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", s.path, err)
	}
	return f.Close()
}

func paletted(img image.Image) *image.Paletted {
	b := img.Bounds()
	dst := image.NewPaletted(b, palette.Plan9)
	draw.FloydSteinberg.Draw(dst, b, img, b.Min)
	return dst
}

// gifDelay converts an interval to GIF delay units (hundredths of a second),
// never less than 1.
func gifDelay(d time.Duration) int {
	return max(int(d/(10*time.Millisecond)), 1)
}
