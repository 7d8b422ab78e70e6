// Package asset resolves stored image references and loads them without
// blocking rendering.
//
// A [Resolver] turns a reference into a loadable URL. Three reference shapes
// are accepted:
//   - local preview handles ("blob:" and "data:" URLs), returned unchanged
//   - absolute "http://" and "https://" URLs, returned unchanged
//   - anything else, treated as a path relative to the configured base
//
// A [Loader] loads resolved URLs in the background through a [Fetcher].
// Renderers ask the loader (as a [Source]) for an image; when it is not yet
// available they render without it and the loader notifies watchers once
// the load settles. Each URL is attempted exactly once; a failure is
// remembered and renders as "no image" from then on.
package asset
