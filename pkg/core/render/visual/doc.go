// Package visual defines the visual tree both layout modes produce.
//
// A [Tree] is a fixed-size page in design units (842x595 unless a
// free-form canvas says otherwise) holding a root [Group] of nodes drawn
// in order. Every node carries an optional role ("title", "recipient",
// "badge", ...) that names the content it shows, so tests and tools can
// inspect a rendered page without parsing its serialized form.
//
// Trees are plain values: renderers build them, sinks serialize them, and
// nothing mutates a tree after it is returned.
package visual
