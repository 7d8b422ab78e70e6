// Package cli implements the certrender command-line interface.
//
// The CLI renders certificates to files, prints the canonical record,
// lists the layout catalog, runs an interactive terminal preview and
// serves the preview API. It is built using cobra and supports verbose
// logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - render: Generate SVG, PNG, PDF or JSON from a template and a record
//   - inspect: Print the merged record a template and record produce
//   - layouts: List the layout catalog
//   - preview: Live terminal preview that follows the window size
//   - serve: Run the HTTP preview API
//   - cache: Manage the artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Rendered 2 artifacts (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// ctxKey is the type for context keys used in this package.
type ctxKey int

// loggerKey is the context key for storing a logger.
const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx.
// If no logger is attached, it returns log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if ctx == nil {
		return log.Default()
	}
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// =============================================================================
// Observability Hooks
// =============================================================================

// logHooks reports pipeline events at debug level.
type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) OnLayoutFallback(_ context.Context, requested string) {
	h.logger.Warn("unknown layout, using classic", "requested", requested)
}

func (h *logHooks) OnRenderStart(_ context.Context, layout string, formats []string) {
	h.logger.Debug("render start", "layout", layout, "formats", formats)
}

func (h *logHooks) OnRenderComplete(_ context.Context, layout string, formats []string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "layout", layout, "error", err)
		return
	}
	h.logger.Debug("render complete", "layout", layout, "formats", formats, "duration", d.Round(time.Millisecond))
}

func (h *logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *logHooks) OnAssetRequest(_ context.Context, url string) {
	h.logger.Debug("loading asset", "url", url)
}

func (h *logHooks) OnAssetLoaded(_ context.Context, url string, size int, d time.Duration) {
	h.logger.Debug("asset loaded", "url", url, "bytes", size, "duration", d.Round(time.Millisecond))
}

func (h *logHooks) OnAssetFailed(_ context.Context, url string, err error) {
	h.logger.Warn("asset failed, rendering without it", "url", url, "error", err)
}
