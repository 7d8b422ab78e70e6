// Package pkg provides the core libraries for certrender certificate rendering.
//
// # Overview
//
// certrender turns a certificate template and a recipient record into a
// finished certificate. The pkg directory is organized into these areas:
//
//  1. [certificate] - Template and record types, layout kinds
//  2. [core] - Domain logic (merge, tokens, assets, rendering)
//  3. [pipeline] - Orchestration (merge → load assets → render → export)
//  4. [preview] - Live targets that follow a container width
//  5. [cache], [io], [errors], [observability] - Supporting infrastructure
//
// # Architecture
//
// The data flow of one render:
//
//	Template + DynamicRecord
//	         ↓
//	    [core/merge] (canonical record: defaults, dates, custom fields)
//	         ↓
//	    [core/asset] (logo, background and signature images)
//	         ↓
//	    [core/render] (preset catalog or free-form scene graph)
//	         ↓
//	    [core/render/sink] (SVG, PNG, PDF, JSON)
//
// # Quick Start
//
//	import (
//	    "github.com/certifyme/certrender/pkg/certificate"
//	    "github.com/certifyme/certrender/pkg/core/render"
//	    "github.com/certifyme/certrender/pkg/core/render/sink"
//	)
//
//	tpl := &certificate.Template{LayoutKind: "classic"}
//	rec := &certificate.DynamicRecord{RecipientName: "Jane Doe"}
//	tree := render.Render(tpl, rec, render.Options{})
//	svg := sink.RenderSVG(tree)
//
// # Main Packages
//
// [core/render/presets] - The thirteen parametric layouts. Each preset lays
// out the same canonical record on its own page design.
//
// [core/render/freeform] - Absolutely positioned text, image and badge
// elements with {{token}} substitution, scaled from the authoring canvas.
//
// [core/render/badge] - The verification badge: a QR code that encodes the
// verification URL.
//
// [core/render/scale] - Fits the design to a container width and debounces
// resize observations.
//
// [pipeline] - Validated options, the Runner that caches artifacts by input
// hash, and format dispatch.
//
// [preview] - A mounted target that re-renders as assets arrive and as the
// container is resized.
package pkg
