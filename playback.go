package faceloop

// Player advances the frame counter once per tick and hands the selected
// item to its draw function. The ready subset is recomputed on every tick,
// so when more items finish loading the modulo base grows and the item shown
// for a given counter value can change; previously shown items may reappear
// out of sequence.
type Player struct {
	items *Preloader
	draw  func(*Item)

	frame    uint64
	readyBuf []*Item

	lastIndex int
}

// NewPlayer returns a player with a zero frame counter.
func NewPlayer(items *Preloader, draw func(*Item)) *Player {
	return &Player{items: items, draw: draw, lastIndex: -1}
}

// Frame returns the current counter value.
func (p *Player) Frame() uint64 {
	return p.frame
}

// LastIndex returns the position within the ready subset selected by the
// most recent tick, or -1 when that tick drew nothing.
func (p *Player) LastIndex() int {
	return p.lastIndex
}

// Tick selects the item for the current counter, draws it, and advances the
// counter. With no ready items nothing is drawn, but the counter still
// advances.
func (p *Player) Tick() {
	p.readyBuf = p.items.AppendReady(p.readyBuf[:0])
	item, idx := selectReady(p.readyBuf, p.frame)
	p.lastIndex = idx
	if item != nil {
		p.draw(item)
	}
	p.frame++
}

// selectReady returns ready[frame % len(ready)] and its index, or nil and -1
// for an empty set.
func selectReady(ready []*Item, frame uint64) (*Item, int) {
	if len(ready) == 0 {
		return nil, -1
	}
	idx := int(frame % uint64(len(ready)))
	return ready[idx], idx
}
