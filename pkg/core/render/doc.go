// Package render turns a certificate template and a dynamic record into a
// visual tree.
//
// [Render] merges the inputs into the canonical record (see package merge)
// and dispatches on the template's layout kind:
//
//   - freeform (alias "visual"): the scene-graph renderer in package
//     freeform places the template's elements on its canvas.
//   - any catalog name: the parametric layout in package presets.
//   - anything else: classic, reported through the render hooks.
//
// A nil template renders the empty-state page. Rendering never fails on
// data problems; missing values fall back to defaults and images that are
// not loaded yet are left out until the caller renders again.
//
// The tree is independent of the surface it is shown on: the preview, the
// full-screen view and the exports all scale the same tree uniformly (see
// package scale). Package sink serializes it to SVG, JSON, PNG and PDF.
package render
