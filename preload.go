package faceloop

import (
	"context"
	"image"
	"sync"
	"sync/atomic"
)

// Loader fetches and decodes the image referenced by a record's Src.
type Loader interface {
	Load(ctx context.Context, src string) (image.Image, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context, src string) (image.Image, error)

// Load calls f(ctx, src).
func (f LoaderFunc) Load(ctx context.Context, src string) (image.Image, error) {
	return f(ctx, src)
}

// Item pairs a record with its image handle. An item becomes ready at most
// once and never reverts.
type Item struct {
	Record Record

	index int
	img   atomic.Pointer[image.Image]
}

// Index returns the item's position in the preloaded list.
func (it *Item) Index() int { return it.index }

// Ready reports whether the image finished loading.
func (it *Item) Ready() bool { return it.img.Load() != nil }

// Image returns the loaded image, or nil while the item is not ready.
func (it *Item) Image() image.Image {
	p := it.img.Load()
	if p == nil {
		return nil
	}
	return *p
}

// NaturalSize returns the loaded image's pixel dimensions.
func (it *Item) NaturalSize() (w, h float64) {
	img := it.Image()
	if img == nil {
		return 0, 0
	}
	b := img.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

// markReady publishes img. Later calls are ignored so readiness is monotonic.
func (it *Item) markReady(img image.Image) bool {
	return it.img.CompareAndSwap(nil, &img)
}

// PreloadStats counts items by load state.
type PreloadStats struct {
	Total, Ready, Failed, Pending int
}

// Preloader owns the items of a slideshow and the loads that fill them.
type Preloader struct {
	items    []*Item
	onSettle func(*Item, error)

	wg      sync.WaitGroup
	done    chan struct{}
	ready   atomic.Int64
	failed  atomic.Int64
	settled atomic.Int64
}

// Preload wraps every record in an Item and immediately issues one load per
// item, all at once. A failed load leaves its item permanently not ready;
// there is no retry. onSettle, if non-nil, is called from the loading
// goroutine after each load completes, with a nil error on success.
func Preload(ctx context.Context, loader Loader, records []Record, onSettle func(*Item, error)) *Preloader {
	p := &Preloader{
		items:    make([]*Item, len(records)),
		onSettle: onSettle,
		done:     make(chan struct{}),
	}
	for i := range records {
		p.items[i] = &Item{Record: records[i], index: i}
	}

	p.wg.Add(len(p.items))
	for _, it := range p.items {
		go p.load(ctx, loader, it)
	}
	go func() {
		p.wg.Wait()
		close(p.done)
	}()
	return p
}

func (p *Preloader) load(ctx context.Context, loader Loader, it *Item) {
	defer p.wg.Done()

	img, err := loader.Load(ctx, it.Record.Src)
	if err == nil && img == nil {
		err = errNilImage
	}
	if err == nil {
		it.markReady(img)
		p.ready.Add(1)
	} else {
		p.failed.Add(1)
	}
	p.settled.Add(1)

	if p.onSettle != nil {
		p.onSettle(it, err)
	}
}

// Items returns every item in dataset order. The slice MUST NOT be mutated.
func (p *Preloader) Items() []*Item {
	return p.items
}

// AppendReady appends the currently ready items to dst in dataset order.
func (p *Preloader) AppendReady(dst []*Item) []*Item {
	for _, it := range p.items {
		if it.Ready() {
			dst = append(dst, it)
		}
	}
	return dst
}

// Stats returns a snapshot of the load counters.
func (p *Preloader) Stats() PreloadStats {
	total := len(p.items)
	return PreloadStats{
		Total:   total,
		Ready:   int(p.ready.Load()),
		Failed:  int(p.failed.Load()),
		Pending: total - int(p.settled.Load()),
	}
}

// Done is closed once every load has settled.
func (p *Preloader) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until every load settled or ctx is done.
func (p *Preloader) Wait(ctx context.Context) error {
	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
