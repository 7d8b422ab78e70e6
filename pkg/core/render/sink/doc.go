// Package sink serializes visual trees.
//
// # Formats
//
//   - SVG: [RenderSVG], the primary output. The viewBox is the design size
//     and [WithWidth] sets the surface, so every scale shows the same page.
//   - JSON: [RenderJSON], a typed dump of the tree for tooling and tests.
//   - PNG and PDF: [RenderPNG] and [RenderPDF] convert the SVG with
//     rsvg-convert.
//
// The PNG and PDF sinks require librsvg to be installed:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
//
// When it is missing they fail with an UNSUPPORTED error from package
// errors; SVG and JSON never fail.
package sink
