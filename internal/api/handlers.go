package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/offwiki/pkg/buildinfo"
	"github.com/matzehuels/offwiki/pkg/document"
	"github.com/matzehuels/offwiki/pkg/errors"
)

// Accepted range of the width query parameter.
const (
	minWidth = 10
	maxWidth = 1000
)

type searchResult struct {
	Path  string `json:"path"`
	Title string `json:"title"`
}

type searchResponse struct {
	Query   string         `json:"query"`
	Results []searchResult `json:"results"`
}

type articleResponse struct {
	Path     string             `json:"path"`
	Document *document.Document `json:"document"`
	// Error is set when the article had no content container and Document
	// is the placeholder.
	Error string `json:"error,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Get(),
	})
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	info, err := s.archive.Info(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if err := errors.ValidateQuery(q); err != nil {
		s.fail(w, r, err)
		return
	}

	limit := s.maxResults
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			jsonError(w, string(errors.ErrCodeInvalidInput), "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = min(n, s.maxResults)
	}

	ctx := r.Context()
	paths, err := s.archive.Search(ctx, q, limit)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	resp := searchResponse{Query: q, Results: make([]searchResult, 0, len(paths))}
	for _, p := range paths {
		res := searchResult{Path: p}
		if a, err := s.archive.Article(ctx, p); err == nil {
			res.Title = a.Title
		}
		resp.Results = append(resp.Results, res)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRandom(w http.ResponseWriter, r *http.Request) {
	p, err := s.archive.RandomPath(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"path": p})
}

func (s *Server) handleArticle(w http.ResponseWriter, r *http.Request) {
	path := document.NormalizePath(chi.URLParam(r, "*"))
	if err := errors.ValidateArticlePath(path); err != nil {
		s.fail(w, r, err)
		return
	}

	b := s.builder
	if v := r.URL.Query().Get("width"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < minWidth || n > maxWidth {
			jsonError(w, string(errors.ErrCodeInvalidInput), "width must be between 10 and 1000", http.StatusBadRequest)
			return
		}
		b.Width = n
	}

	a, err := s.archive.Article(r.Context(), path)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	doc, err := b.Build(a.Title, a.HTML)
	resp := articleResponse{Path: path, Document: doc}
	if err != nil {
		resp.Error = errors.UserMessage(err)
	}
	writeJSON(w, http.StatusOK, resp)
}

// fail writes err with the status its code maps to.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	status := statusOf(code)
	if status == http.StatusInternalServerError {
		s.log.Error("request failed", "path", r.URL.Path, "err", err)
	}
	if code == "" {
		code = errors.ErrCodeInternal
	}
	jsonError(w, string(code), errors.UserMessage(err), status)
}

func statusOf(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidPath, errors.ErrCodeInvalidQuery:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeDecode, errors.ErrCodeParse:
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, code, msg string, status int) {
	writeJSON(w, status, map[string]string{
		"error": strings.TrimSpace(msg),
		"code":  code,
	})
}
