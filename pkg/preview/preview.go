// Package preview mounts a certificate as a live render target.
//
// A [Target] owns the scaling controller and watches the asset loader, so
// the artifact it exposes follows both container resizes and images that
// arrive after the first render. Closing the target detaches it from both;
// loads that settle afterwards never reach it.
//
//	tgt := preview.Mount(ctx, tmpl, rec, preview.Options{Width: 600})
//	defer tgt.Close()
//	for art := range tgt.Updates() {
//	    show(art.SVG())
//	}
package preview

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/certifyme/certrender/pkg/certificate"
	"github.com/certifyme/certrender/pkg/core/asset"
	"github.com/certifyme/certrender/pkg/core/merge"
	"github.com/certifyme/certrender/pkg/core/render"
	"github.com/certifyme/certrender/pkg/core/render/scale"
	"github.com/certifyme/certrender/pkg/core/render/sink"
	"github.com/certifyme/certrender/pkg/core/render/visual"
)

// Options configures a mounted target.
type Options struct {
	// Width is the initial container width. Zero uses the design width.
	Width      float64
	Fullscreen bool
	Origin     string
	Resolver   asset.Resolver
	Today      time.Time

	// Debounce is the resize coalescing window. Zero uses
	// scale.DefaultDebounce; a negative value applies every resize at once.
	Debounce time.Duration

	// Loader is shared with other targets and left open on Close. When nil
	// the target creates its own loader over Fetcher.
	Loader  *asset.Loader
	Fetcher asset.Fetcher

	Logger *log.Logger
}

// Artifact is one rendered state of a target.
type Artifact struct {
	Revision int
	Tree     *visual.Tree
	Surface  scale.Surface
}

// SVG serializes the artifact at its surface width.
func (a Artifact) SVG() []byte {
	if a.Tree == nil {
		return nil
	}
	return sink.RenderSVG(a.Tree, sink.WithWidth(a.Surface.Width))
}

// Target is a mounted certificate. It is safe for concurrent use.
type Target struct {
	tmpl   *certificate.Template
	rec    merge.Record
	opts   render.Options
	logger *log.Logger

	ctrl       *scale.Controller
	loader     *asset.Loader
	ownsLoader bool
	urls       map[string]bool

	unwatch     func()
	unsubscribe func()
	done        chan struct{}

	mu      sync.Mutex
	art     Artifact
	closed  bool
	updates chan Artifact
}

// Mount renders t with r and keeps the result current until Close or until
// ctx is done.
func Mount(ctx context.Context, t *certificate.Template, r *certificate.DynamicRecord, opts Options) *Target {
	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	loader, owns := opts.Loader, false
	if loader == nil {
		f := opts.Fetcher
		if f == nil {
			f = asset.NewHTTPFetcher(asset.DefaultTimeout, nil)
		}
		loader, owns = asset.NewLoader(f), true
	}

	ro := render.Options{
		Fullscreen: opts.Fullscreen,
		Origin:     opts.Origin,
		Images:     loader,
		Resolver:   opts.Resolver,
		Today:      opts.Today,
		Context:    ctx,
	}
	rec := render.Record(t, r, ro)

	var scaleOpts []scale.Option
	switch {
	case opts.Debounce < 0:
		scaleOpts = append(scaleOpts, scale.WithDebounce(0))
	case opts.Debounce > 0:
		scaleOpts = append(scaleOpts, scale.WithDebounce(opts.Debounce))
	}
	ctrl := scale.New(render.Design(t), scaleOpts...)
	width := opts.Width
	if _, ok := ctrl.Apply(width); !ok {
		ctrl.Apply(ctrl.Design().Width)
	}

	tgt := &Target{
		tmpl:       t,
		rec:        rec,
		opts:       ro,
		logger:     logger,
		ctrl:       ctrl,
		loader:     loader,
		ownsLoader: owns,
		urls:       make(map[string]bool),
		done:       make(chan struct{}),
		updates:    make(chan Artifact, 1),
	}

	urls := render.AssetURLs(t, rec)
	for _, u := range urls {
		tgt.urls[u] = true
	}
	tgt.unwatch = loader.Watch(tgt.assetSettled)
	tgt.unsubscribe = ctrl.Subscribe(tgt.resized)
	loader.Request(urls...)
	tgt.refresh("mount")

	go func() {
		select {
		case <-ctx.Done():
			tgt.Close()
		case <-tgt.done:
		}
	}()
	return tgt
}

// Artifact returns the latest rendered state.
func (t *Target) Artifact() Artifact {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.art
}

// Record returns the canonical record the target renders.
func (t *Target) Record() merge.Record {
	return t.rec
}

// Updates delivers each new artifact. A slow reader only sees the latest
// one. The channel is closed by Close.
func (t *Target) Updates() <-chan Artifact {
	return t.updates
}

// Resize reports a new container width. Bursts are debounced; invalid
// widths and calls after Close are ignored.
func (t *Target) Resize(width float64) {
	t.ctrl.Observe(width)
}

// Close detaches the target from the controller and the loader. It is
// idempotent.
func (t *Target) Close() {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.closed = true
	close(t.updates)
	close(t.done)
	t.mu.Unlock()

	t.unsubscribe()
	t.unwatch()
	t.ctrl.Close()
	if t.ownsLoader {
		t.loader.Close()
	}
}

func (t *Target) assetSettled(url string, state asset.State) {
	if !t.urls[url] {
		return
	}
	t.logger.Debug("asset settled", "url", url, "state", state)
	t.refresh("asset")
}

func (t *Target) resized(s scale.Surface) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed || t.art.Tree == nil {
		return
	}
	t.logger.Debug("surface changed", "width", s.Width, "scale", s.Scale)
	t.publish(Artifact{Tree: t.art.Tree, Surface: s})
}

func (t *Target) refresh(reason string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	tree := render.RenderRecord(t.tmpl, t.rec, t.opts)
	t.logger.Debug("rendered preview", "reason", reason, "layout", tree.Layout, "nodes", tree.Count())
	t.publish(Artifact{Tree: tree, Surface: t.ctrl.Surface()})
}

// publish must be called with t.mu held.
func (t *Target) publish(a Artifact) {
	a.Revision = t.art.Revision + 1
	t.art = a
	select {
	case <-t.updates:
	default:
	}
	t.updates <- a
}
