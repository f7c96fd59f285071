package retained

import "sync"

// widgetSlices hands out empty widget slices. Input dispatch builds a focus
// order or a hit chain on every event, and these are reused between events.
type widgetSlices struct {
	pool   sync.Pool
	maxCap int
}

func newWidgetSlices(size, maxCap int) *widgetSlices {
	p := &widgetSlices{maxCap: maxCap}
	p.pool.New = func() any { return make([]*Widget, 0, size) }
	return p
}

func (p *widgetSlices) get() []*Widget {
	return p.pool.Get().([]*Widget)[:0]
}

// put returns s to the pool; s must not be used afterwards. Oversized
// slices are dropped.
func (p *widgetSlices) put(s []*Widget) {
	if s == nil || cap(s) > p.maxCap {
		return
	}
	clear(s[:cap(s)])
	p.pool.Put(s[:0])
}

var (
	focusOrders = newWidgetSlices(16, 256)
	hitChains   = newWidgetSlices(8, 64)
)
