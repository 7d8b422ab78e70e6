// Package pipeline provides the export pipeline for certificate rendering.
//
// This package implements the complete merge → load → render → serialize
// pipeline used by the CLI and the preview server. By centralizing this
// logic, every entry point produces the same artifacts for the same inputs.
//
// # Architecture
//
// A run has four stages:
//
//  1. Merge: combine the template and the dynamic record into the canonical
//     record (package merge)
//  2. Load: fetch the images the layout draws, one attempt each, waiting
//     at most AssetTimeout
//  3. Render: build the visual tree (package render)
//  4. Serialize: write SVG, PNG, PDF or JSON (package sink)
//
// Artifacts are cached by a hash of every input, so re-exporting an
// unchanged certificate skips stages 2 to 4.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Template: tmpl,
//	    Record:   rec,
//	    Formats:  []string{"svg", "png"},
//	    Origin:   "https://certs.example.com",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/certifyme/certrender/pkg/cache"
	"github.com/certifyme/certrender/pkg/certificate"
	"github.com/certifyme/certrender/pkg/core/merge"
	"github.com/certifyme/certrender/pkg/core/render/visual"
	"github.com/certifyme/certrender/pkg/errors"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultOrigin is the verification service origin badges point to.
	DefaultOrigin = "http://localhost:5173"

	// DefaultAssetBase is the server that relative asset paths resolve
	// against.
	DefaultAssetBase = "http://127.0.0.1:5000"

	// DefaultAssetTimeout bounds the wait for images during an export.
	DefaultAssetTimeout = 10 * time.Second

	// DefaultScale is the PNG resolution multiplier.
	DefaultScale = 2.0

	// FullscreenWidth is the surface width of the full-screen view.
	FullscreenWidth = 1280.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one export.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Inputs
	Template *certificate.Template      `json:"template"`
	Record   *certificate.DynamicRecord `json:"record,omitempty"`

	// Render options
	Formats    []string  `json:"formats,omitempty"`
	Width      float64   `json:"width,omitempty"` // surface width; 0 keeps the design size
	Fullscreen bool      `json:"fullscreen,omitempty"`
	Scale      float64   `json:"scale,omitempty"` // PNG only
	Origin     string    `json:"origin,omitempty"`
	AssetBase  string    `json:"asset_base,omitempty"`
	Today      time.Time `json:"today,omitempty"`
	AssignID   bool      `json:"assign_id,omitempty"` // mint a verification id when the record has none
	Modules    bool      `json:"modules,omitempty"`   // JSON only: include badge modules
	Refresh    bool      `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	AssetTimeout time.Duration `json:"-"`
	Logger       *log.Logger   `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Record is the canonical record the artifacts were rendered from.
	Record merge.Record

	// Tree is the rendered page. It is nil when every artifact came from
	// the cache.
	Tree *visual.Tree

	// InputHash identifies the render inputs.
	InputHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount    int
	AssetCount   int
	AssetsFailed int
	MergeTime    time.Duration
	AssetTime    time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Template == nil {
		return errors.New(errors.ErrCodeInvalidTemplate, "template is required")
	}
	if o.Record == nil {
		o.Record = &certificate.DynamicRecord{}
	}

	for i, f := range o.Formats {
		o.Formats[i] = strings.ToLower(strings.TrimSpace(f))
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}

	if o.Origin == "" {
		o.Origin = DefaultOrigin
	}
	if err := errors.ValidateOrigin(o.Origin); err != nil {
		return err
	}
	if o.AssetBase == "" {
		o.AssetBase = DefaultAssetBase
	}
	if err := errors.ValidateAssetBase(o.AssetBase); err != nil {
		return err
	}
	if o.Width < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "width must not be negative: %v", o.Width)
	}
	if o.Width == 0 && o.Fullscreen {
		o.Width = FullscreenWidth
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.AssetTimeout <= 0 {
		o.AssetTimeout = DefaultAssetTimeout
	}
	if o.Today.IsZero() {
		o.Today = time.Now()
	}
	if o.AssignID {
		r := o.Record.WithVerificationID()
		o.Record = &r
	}

	// Logger default
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Format:     format,
		Width:      o.Width,
		Fullscreen: o.Fullscreen,
	}
	if format == FormatPNG {
		opts.Scale = o.Scale
	}
	return opts
}
