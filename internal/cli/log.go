// Package cli implements the offwiki command-line interface.
//
// This package wires the offwiki libraries into cobra commands: the
// interactive reader (the root command), archive import, search, article
// rendering, archive info and the HTTP API server. The CLI is built using
// cobra and logs via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - offwiki <archive>: Browse an archive in the terminal reader
//   - import: Build an archive from a directory of HTML or Markdown files
//   - search: Print ranked full-text search results
//   - show: Render one article as plain text
//   - info: Print archive metadata
//   - serve: Serve the archive as a JSON API
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context. While the reader owns the terminal, log
// output goes to --log-file or is discarded.
package cli

import (
	"context"
	"io"
	"os"
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

// openLogFile returns a logger for use while the terminal is taken over by
// the reader. With an empty path, output is discarded. The returned close
// function must be called when the reader exits.
func openLogFile(path string, level log.Level) (*log.Logger, func() error, error) {
	if path == "" {
		return newLogger(io.Discard, level), func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return newLogger(f, level), f.Close, nil
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
// Example output: "Imported 42 articles (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// =============================================================================
// Observability Hooks
// =============================================================================

// logHooks logs observability events at debug level, and failures at warn.
type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) OnSearch(_ context.Context, query string, results int, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("search failed", "query", query, "err", err)
		return
	}
	h.logger.Debug("search", "query", query, "results", results, "took", d.Round(time.Microsecond))
}

func (h *logHooks) OnFetch(_ context.Context, path string, links int, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("fetch failed", "path", path, "err", err)
		return
	}
	h.logger.Debug("fetch", "path", path, "links", links, "took", d.Round(time.Microsecond))
}

func (h *logHooks) OnTransition(_ context.Context, from, to string) {
	h.logger.Debug("transition", "from", from, "to", to)
}

func (h *logHooks) OnFileParsed(_ context.Context, file string, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("convert failed", "file", file, "err", err)
		return
	}
	h.logger.Debug("converted", "file", file, "took", d.Round(time.Microsecond))
}

func (h *logHooks) OnImportComplete(_ context.Context, written, unchanged int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("import aborted", "err", err)
		return
	}
	h.logger.Debug("import complete", "written", written, "unchanged", unchanged, "took", d.Round(time.Millisecond))
}

func (h *logHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("request", "method", method, "path", path)
}

func (h *logHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Info("response", "method", method, "path", path, "status", status, "took", d.Round(time.Microsecond))
}
