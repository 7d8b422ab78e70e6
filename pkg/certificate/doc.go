// Package certificate defines the data that flows into the rendering engine:
// a [Template] describing the visual design and a [DynamicRecord] carrying
// the recipient-specific values.
//
// Both types decode from the JSON documents the issuing backend stores
// (snake_case keys) and from YAML files used by the CLI. Neither type is
// mutated by the engine; every render derives a fresh canonical record from
// them (see package merge).
package certificate
