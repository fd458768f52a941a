// Package api serves an archive over HTTP as JSON.
//
// Routes:
//
//	GET /health                   build info
//	GET /api/info                 archive metadata
//	GET /api/search?q=&limit=     ranked search results
//	GET /api/articles/{path}      article as a built document (?width=)
//	GET /api/random               path of a random article
//
// Errors are reported as {"error": message, "code": code} with a status
// derived from the error code.
package api

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/offwiki/pkg/archive"
	"github.com/matzehuels/offwiki/pkg/document"
)

// Server is the HTTP API server of one archive.
type Server struct {
	router     chi.Router
	archive    archive.Archive
	builder    document.Builder
	maxResults int
	log        *log.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithBuilder sets the document builder. The width of each request
// overrides the builder's width.
func WithBuilder(b document.Builder) Option {
	return func(s *Server) { s.builder = b }
}

// WithMaxResults caps the number of search results per request.
func WithMaxResults(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxResults = n
		}
	}
}

// WithLogger sets the logger for handler failures.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.log = l }
}

// NewServer creates and configures the HTTP server.
func NewServer(a archive.Archive, opts ...Option) *Server {
	s := &Server{
		archive:    a,
		maxResults: archive.DefaultSearchLimit,
		log:        log.Default(),
	}
	for _, o := range opts {
		o(s)
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(Hooks)

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/info", s.handleInfo)
		r.Get("/search", s.handleSearch)
		r.Get("/random", s.handleRandom)
		r.Get("/articles/*", s.handleArticle)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		jsonError(w, "NOT_FOUND", "no such route", http.StatusNotFound)
	})

	s.router = r
}
