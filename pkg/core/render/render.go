package render

import (
	"context"
	"time"

	"github.com/certifyme/certrender/pkg/certificate"
	"github.com/certifyme/certrender/pkg/core/asset"
	"github.com/certifyme/certrender/pkg/core/merge"
	"github.com/certifyme/certrender/pkg/core/render/freeform"
	"github.com/certifyme/certrender/pkg/core/render/presets"
	"github.com/certifyme/certrender/pkg/core/render/visual"
	"github.com/certifyme/certrender/pkg/observability"
)

// EmptyMessage is shown when no template is selected.
const EmptyMessage = "Select a template to generate preview"

// LayoutEmpty names the tree rendered for a nil template.
const LayoutEmpty = "empty"

// Options configures a render.
type Options struct {
	// Fullscreen marks the full-screen view. It selects a larger surface
	// for the same tree and does not change the tree itself.
	Fullscreen bool

	// Origin is the verification service origin used in badges.
	Origin string

	// Images supplies loaded images. Nil renders without images.
	Images asset.Source

	// Resolver turns stored asset references into loadable URLs.
	Resolver asset.Resolver

	// Today is the reference date for records without an issue date.
	// Zero means the current date.
	Today time.Time

	// Context is passed to the render hooks. Nil means background.
	Context context.Context
}

func (o Options) today() time.Time {
	if o.Today.IsZero() {
		return time.Now()
	}
	return o.Today
}

func (o Options) ctx() context.Context {
	if o.Context == nil {
		return context.Background()
	}
	return o.Context
}

// Record merges t and r into the canonical record with the options'
// reference date and resolver.
func Record(t *certificate.Template, r *certificate.DynamicRecord, opts Options) merge.Record {
	return merge.Merge(t, r, merge.WithToday(opts.today()), merge.WithResolver(opts.Resolver))
}

// Render draws the certificate for t and r.
func Render(t *certificate.Template, r *certificate.DynamicRecord, opts Options) *visual.Tree {
	if t == nil {
		return visual.Placeholder(LayoutEmpty, visual.DefaultSize, EmptyMessage)
	}
	return RenderRecord(t, Record(t, r, opts), opts)
}

// RenderRecord draws an already merged record. t supplies the layout kind
// and, for free-form templates, the layout data.
func RenderRecord(t *certificate.Template, rec merge.Record, opts Options) *visual.Tree {
	if t == nil {
		return visual.Placeholder(LayoutEmpty, visual.DefaultSize, EmptyMessage)
	}
	kind, known := t.Kind()
	if !known {
		observability.Render().OnLayoutFallback(opts.ctx(), t.RequestedKind())
	}
	if kind.IsFreeform() {
		return freeform.Render(t.LayoutData, rec, opts.Images, opts.Origin)
	}
	return presets.Render(kind, rec, opts.Images, opts.Origin)
}

// Design returns the design size t renders at, without rendering it.
func Design(t *certificate.Template) visual.Size {
	if t == nil {
		return visual.DefaultSize
	}
	kind, _ := t.Kind()
	if kind.IsFreeform() {
		if t.LayoutData == nil {
			return visual.DefaultSize
		}
		w, h := t.LayoutData.Canvas.Size()
		return visual.Size{Width: w, Height: h}
	}
	p, _ := presets.Lookup(kind)
	return p.Page
}

// AssetURLs lists the resolved image URLs a render of t and rec draws, in
// drawing order and without duplicates.
func AssetURLs(t *certificate.Template, rec merge.Record) []string {
	var urls []string
	seen := make(map[string]bool)
	add := func(ref asset.Ref) {
		if ref.IsZero() || seen[ref.URL] {
			return
		}
		seen[ref.URL] = true
		urls = append(urls, ref.URL)
	}
	if t == nil {
		return nil
	}
	if kind, _ := t.Kind(); kind.IsFreeform() {
		if t.LayoutData == nil {
			return nil
		}
		add(rec.Resolver.Resolve(t.LayoutData.Background.Image))
		for _, el := range t.LayoutData.Elements {
			if el.Type == certificate.ElementImage && !el.IsBadge() {
				add(rec.Resolver.Resolve(el.Src))
			}
		}
		return urls
	}
	add(rec.Background)
	add(rec.Logo)
	add(rec.SignatureImage)
	return urls
}
