// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers register hooks at startup to
// receive events about reader navigation, archive imports, and HTTP API
// requests.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, never by libraries, so library packages stay
// free of logging and metrics backends.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetNavigationHooks(&myNavigationHooks{})
//	    observability.SetImportHooks(&myImportHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	start := time.Now()
//	doc, err := c.load(ctx, path)
//	observability.Navigation().OnFetch(ctx, path, doc.LinkCount(), time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Navigation Hooks
// =============================================================================

// NavigationHooks receives events from the navigation controller.
type NavigationHooks interface {
	// OnSearch records a full-text search and the number of results.
	OnSearch(ctx context.Context, query string, results int, duration time.Duration, err error)

	// OnFetch records an article fetch and document build.
	OnFetch(ctx context.Context, path string, links int, duration time.Duration, err error)

	// OnTransition records a mode change, e.g. "search" -> "results".
	OnTransition(ctx context.Context, from, to string)
}

// =============================================================================
// Import Hooks
// =============================================================================

// ImportHooks receives events from archive imports.
type ImportHooks interface {
	// OnFileParsed records a source file converted into an article.
	OnFileParsed(ctx context.Context, file string, duration time.Duration, err error)

	// OnImportComplete records the end of an import run.
	OnImportComplete(ctx context.Context, written, unchanged int, duration time.Duration, err error)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP API server.
type HTTPHooks interface {
	// OnRequest records an incoming HTTP request.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse records the response to a request.
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopNavigationHooks is a no-op implementation of NavigationHooks.
type NoopNavigationHooks struct{}

func (NoopNavigationHooks) OnSearch(context.Context, string, int, time.Duration, error) {}
func (NoopNavigationHooks) OnFetch(context.Context, string, int, time.Duration, error)  {}
func (NoopNavigationHooks) OnTransition(context.Context, string, string)                {}

// NoopImportHooks is a no-op implementation of ImportHooks.
type NoopImportHooks struct{}

func (NoopImportHooks) OnFileParsed(context.Context, string, time.Duration, error)       {}
func (NoopImportHooks) OnImportComplete(context.Context, int, int, time.Duration, error) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	navigationHooks NavigationHooks = NoopNavigationHooks{}
	importHooks     ImportHooks     = NoopImportHooks{}
	httpHooks       HTTPHooks       = NoopHTTPHooks{}
	hooksMu         sync.RWMutex
)

// SetNavigationHooks registers custom navigation hooks.
// This should be called once at application startup.
func SetNavigationHooks(h NavigationHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		navigationHooks = h
	}
}

// SetImportHooks registers custom import hooks.
// This should be called once at application startup.
func SetImportHooks(h ImportHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		importHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Navigation returns the registered navigation hooks.
func Navigation() NavigationHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return navigationHooks
}

// Import returns the registered import hooks.
func Import() ImportHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return importHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	navigationHooks = NoopNavigationHooks{}
	importHooks = NoopImportHooks{}
	httpHooks = NoopHTTPHooks{}
}
