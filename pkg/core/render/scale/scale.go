// Package scale fits a fixed-size design into a container of arbitrary
// width.
//
// One uniform factor, containerWidth / designWidth, is applied to both
// axes so the rendered page keeps the design's aspect ratio at every size.
// A [Controller] tracks a live container: resize events are coalesced over
// a short debounce window and subscribers hear about each distinct surface
// once.
package scale

import (
	"math"
	"sync"
	"time"

	"github.com/certifyme/certrender/pkg/core/render/visual"
)

// DefaultDebounce is the window resize events are coalesced over.
const DefaultDebounce = 50 * time.Millisecond

// Surface is the rendered size of a design in a container.
type Surface struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Scale  float64 `json:"scale"`
}

// Fit computes the surface for a container width. It reports false for
// widths that are not positive and finite, or for an invalid design.
func Fit(width float64, design visual.Size) (Surface, bool) {
	if !validWidth(width) || !design.Valid() {
		return Surface{}, false
	}
	s := width / design.Width
	return Surface{Width: width, Height: design.Height * s, Scale: s}, true
}

func validWidth(w float64) bool {
	return w > 0 && !math.IsNaN(w) && !math.IsInf(w, 0)
}

// =============================================================================
// Controller
// =============================================================================

// Option configures a Controller.
type Option func(*Controller)

// WithDebounce sets the coalescing window. Zero recomputes on every event.
func WithDebounce(d time.Duration) Option {
	return func(c *Controller) {
		if d >= 0 {
			c.debounce = d
		}
	}
}

type subscriber struct {
	mu   sync.Mutex
	dead bool
	fn   func(Surface)
}

// Controller tracks the surface of one design in one container. It is
// safe for concurrent use.
type Controller struct {
	design   visual.Size
	debounce time.Duration

	mu      sync.Mutex
	surface Surface
	pending float64
	timer   *time.Timer
	subs    map[int]*subscriber
	nextID  int
	closed  bool
}

// New creates a controller for design. An invalid design falls back to
// [visual.DefaultSize].
func New(design visual.Size, opts ...Option) *Controller {
	if !design.Valid() {
		design = visual.DefaultSize
	}
	c := &Controller{
		design:   design,
		debounce: DefaultDebounce,
		subs:     make(map[int]*subscriber),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Design returns the design size.
func (c *Controller) Design() visual.Size { return c.design }

// Surface returns the current surface; the zero Surface before the first
// recomputation.
func (c *Controller) Surface() Surface {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.surface
}

// Observe records a resize event. Events inside the debounce window are
// coalesced and only the last width is applied. Invalid widths and events
// after Close are ignored.
func (c *Controller) Observe(width float64) {
	if !validWidth(width) {
		return
	}
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if c.debounce == 0 {
		c.mu.Unlock()
		c.Apply(width)
		return
	}
	c.pending = width
	if c.timer == nil {
		c.timer = time.AfterFunc(c.debounce, c.flush)
	} else {
		c.timer.Reset(c.debounce)
	}
	c.mu.Unlock()
}

func (c *Controller) flush() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	width := c.pending
	c.mu.Unlock()
	c.Apply(width)
}

// Apply recomputes the surface for width immediately and notifies
// subscribers when it changed. It returns the resulting surface and false
// when the width was ignored.
func (c *Controller) Apply(width float64) (Surface, bool) {
	s, ok := Fit(width, c.design)
	if !ok {
		return Surface{}, false
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return Surface{}, false
	}
	if s == c.surface {
		c.mu.Unlock()
		return s, true
	}
	c.surface = s
	subs := make([]*subscriber, 0, len(c.subs))
	for _, sub := range c.subs {
		subs = append(subs, sub)
	}
	c.mu.Unlock()

	for _, sub := range subs {
		sub.mu.Lock()
		if !sub.dead {
			sub.fn(s)
		}
		sub.mu.Unlock()
	}
	return s, true
}

// Subscribe registers fn for surface changes. After the returned cancel
// returns, fn is not called again. cancel must not be called from inside
// fn.
func (c *Controller) Subscribe(fn func(Surface)) (cancel func()) {
	sub := &subscriber{fn: fn}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return func() {}
	}
	id := c.nextID
	c.nextID++
	c.subs[id] = sub
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subs, id)
			c.mu.Unlock()

			sub.mu.Lock()
			sub.dead = true
			sub.mu.Unlock()
		})
	}
}

// Close stops the debounce timer and drops every subscriber. Later events
// are no-ops. Close is idempotent.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
	}
	subs := c.subs
	c.subs = map[int]*subscriber{}
	c.mu.Unlock()

	for _, sub := range subs {
		sub.mu.Lock()
		sub.dead = true
		sub.mu.Unlock()
	}
}
