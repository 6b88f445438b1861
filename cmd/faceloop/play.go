package main

import (
	"fmt"
	"os"
	"time"

	"github.com/phanxgames/faceloop"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type playOptions struct {
	Options
	Fade   time.Duration
	FPS    bool
	Script string
	Debug  bool
}

var playOpts playOptions

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open a window and play the aligned slideshow",
	Long: `Open a window and play the aligned slideshow.

Keys: D toggles the face box, Space pauses, S saves a screenshot, R restarts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd, &playOpts)
	},
}

func init() {
	fs := playCmd.Flags()
	playOpts.bindDataset(fs)
	playOpts.bindLayout(fs)
	fs.DurationVar(&playOpts.Fade, "fade", 0, "Crossfade duration between frames (0 disables)")
	fs.BoolVar(&playOpts.FPS, "fps", false, "Show FPS and playback counters")
	fs.StringVar(&playOpts.Script, "script", "", "JSON test script to drive the slideshow; the window closes when it finishes")
	fs.BoolVar(&playOpts.Debug, "debug", false, "Log every tick at debug level")
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, o *playOptions) error {
	if err := o.resolvePaths(); err != nil {
		return err
	}
	cfg, err := o.config()
	if err != nil {
		return err
	}
	cfg.Fade = o.Fade

	var runner *faceloop.TestRunner
	if o.Script != "" {
		data, err := os.ReadFile(o.Script)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		if runner, err = faceloop.LoadTestScript(data); err != nil {
			return err
		}
	}

	records, err := loadRecords(&o.Options, cfg.Anchor)
	if err != nil {
		return err
	}
	items := preload(cmd.Context(), o.AssetRoot, records, nil)

	canvas := faceloop.NewCanvas(cfg.CanvasWidth, cfg.CanvasHeight, cfg.ClearColor)
	defer canvas.Dispose()

	show := faceloop.NewSlideshow(items, canvas, &faceloop.FrameScheduler{}, cfg)
	show.SetDebugMode(o.Debug)
	if runner != nil {
		show.SetTestRunner(runner)
	}

	log.Info().
		Str("anchor", cfg.Anchor.String()).
		Dur("interval", cfg.Interval).
		Int("width", cfg.CanvasWidth).
		Int("height", cfg.CanvasHeight).
		Msg("playing")

	return faceloop.Run(show, canvas, faceloop.RunConfig{
		Title:              "faceloop",
		ShowFPS:            o.FPS,
		ExitWhenScriptDone: runner != nil,
	})
}
