// Package faceloop plays a face-aligned image slideshow on [Ebitengine].
//
// Every photograph of a dataset is drawn so that one facial feature lands on
// the same pixel of a fixed-size canvas, optionally rescaled so the face keeps
// the same apparent width. Frames advance at a fixed cadence, producing the
// effect of many faces morphing into one another.
//
// # Quick start
//
//	ds, err := faceloop.LoadDataset("iterable.json")
//	// ...
//	cfg := faceloop.DefaultConfig()
//	cfg.Anchor = faceloop.Lips()
//	items := faceloop.Preload(ctx, faceloop.NewLoader("."), ds.Usable(cfg.Anchor), nil)
//
//	canvas := faceloop.NewCanvas(cfg.CanvasWidth, cfg.CanvasHeight, faceloop.ColorTransparent)
//	show := faceloop.NewSlideshow(items, canvas, &faceloop.FrameScheduler{}, cfg)
//	err = faceloop.Run(show, canvas, faceloop.RunConfig{Title: "faceloop"})
//
// # Alignment
//
// [ResolveAnchor] turns a [Record] and an [AnchorMode] into a point
// normalized to the image size: the face box center ([FaceBoxCenter]) or the
// mean of the pooled points of some landmark groups ([LandmarkAverage],
// [Lips]). [ComputeTransform] then derives the uniform scale and the draw
// offset that put that point on the [FocalPoint] of the canvas.
//
// # Playback
//
// [Preload] issues every image load at once; items become ready as their
// loads finish and failed loads are never shown. A [Player] owns the frame
// counter: on each tick of its [Scheduler] it draws ready item
// frame % readyCount. Because the ready set can grow between ticks, the
// item shown for a counter value is not stable while loading is in progress.
//
// A [Slideshow] mounts the player on a [Clock] and paints onto any
// [Surface]: a [Canvas] in a window, or a [RasterSurface] for headless
// rendering.
//
// [Ebitengine]: https://ebitengine.org
package faceloop
