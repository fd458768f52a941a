package nav

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/offwiki/pkg/archive"
	"github.com/matzehuels/offwiki/pkg/document"
	"github.com/matzehuels/offwiki/pkg/errors"
	"github.com/matzehuels/offwiki/pkg/observability"
)

// DefaultMaxResults is the search result limit when none is configured.
const DefaultMaxResults = 20

// Controller drives a reading session against an archive.
type Controller struct {
	archive    archive.Archive
	builder    document.Builder
	maxResults int
	logger     *log.Logger

	state State

	// resume is the mode EnterSearch left, restored by LeaveSearch.
	resume Mode

	// failedPath is the path whose fetch produced the current error
	// placeholder, or "" when Document is a real article.
	failedPath string
}

// Option configures a Controller.
type Option func(*Controller)

// WithMaxResults sets the search result limit.
func WithMaxResults(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.maxResults = n
		}
	}
}

// WithBuilder sets the document builder. Its width is replaced by SetWidth.
func WithBuilder(b document.Builder) Option {
	return func(c *Controller) { c.builder = b }
}

// WithLogger sets the logger for failed searches and fetches.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// New returns a controller in search mode with an empty history.
func New(a archive.Archive, opts ...Option) *Controller {
	c := &Controller{
		archive:    a,
		maxResults: DefaultMaxResults,
		logger:     log.NewWithOptions(io.Discard, log.Options{}),
		state:      State{Mode: ModeSearch, Focus: NoFocus},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a snapshot of the session.
func (c *Controller) State() State {
	s := c.state
	s.History = slices.Clone(s.History)
	s.Results = slices.Clone(s.Results)
	return s
}

// Mode returns the current mode.
func (c *Controller) Mode() Mode { return c.state.Mode }

// Document returns the document on screen, or nil.
func (c *Controller) Document() *document.Document { return c.state.Document }

// Focus returns the focused link index, or NoFocus.
func (c *Controller) Focus() int { return c.state.Focus }

// SetWidth sets the terminal width in columns. Documents are built two
// columns narrower. It reports whether the build width changed.
func (c *Controller) SetWidth(cols int) bool {
	w := max(cols-2, 1)
	if w == c.builder.Width {
		return false
	}
	c.builder.Width = w
	return true
}

// =============================================================================
// Transitions
// =============================================================================

// Submit runs a search and switches to Results. A blank query is ignored.
// A failing search yields an empty result list.
func (c *Controller) Submit(ctx context.Context, query string) {
	q := strings.TrimSpace(query)
	if c.state.Mode != ModeSearch || q == "" {
		return
	}
	if err := errors.ValidateQuery(q); err != nil {
		c.state.Err = err
		return
	}

	start := time.Now()
	results, err := c.archive.Search(ctx, q, c.maxResults)
	observability.Navigation().OnSearch(ctx, q, len(results), time.Since(start), err)
	if err != nil {
		c.logger.Warn("search failed", "query", q, "err", err)
		results = nil
	}

	c.state.Query = q
	c.state.Results = results
	c.state.ResultCursor = 0
	c.state.Focus = NoFocus
	c.state.Err = nil
	c.setMode(ctx, ModeResults)
}

// MoveResult moves the result cursor by delta, clamped to the results.
func (c *Controller) MoveResult(delta int) {
	if c.state.Mode != ModeResults || len(c.state.Results) == 0 {
		return
	}
	c.state.ResultCursor = max(0, min(c.state.ResultCursor+delta, len(c.state.Results)-1))
}

// OpenResult opens the selected search result.
func (c *Controller) OpenResult(ctx context.Context) {
	if c.state.Mode != ModeResults || len(c.state.Results) == 0 {
		return
	}
	c.open(ctx, c.state.Results[c.state.ResultCursor])
}

// Follow opens the focused link of the current article.
func (c *Controller) Follow(ctx context.Context) {
	if c.state.Mode != ModeArticle || c.state.Document == nil {
		return
	}
	link, ok := c.state.Document.Link(c.state.Focus)
	if !ok {
		return
	}
	c.open(ctx, link.Path)
}

// Back returns to the previous article, re-fetching it. With a single
// article in the history it does nothing. When the current document is the
// placeholder of a failed fetch, Back re-fetches the article on top of the
// history instead of popping it.
func (c *Controller) Back(ctx context.Context) {
	if c.state.Mode != ModeArticle || len(c.state.History) == 0 {
		return
	}

	top := c.state.Current()
	if c.failedPath != "" && c.failedPath != top {
		c.reload(ctx, top)
		return
	}
	if len(c.state.History) <= 1 {
		return
	}

	c.state.History = c.state.History[:len(c.state.History)-1]
	c.reload(ctx, c.state.Current())
}

// Reload re-fetches the article on top of the history, e.g. after a width
// change.
func (c *Controller) Reload(ctx context.Context) {
	if c.state.Mode != ModeArticle || len(c.state.History) == 0 {
		return
	}
	c.reload(ctx, c.state.Current())
}

// EnterSearch switches to Search mode. History is kept.
func (c *Controller) EnterSearch(ctx context.Context) {
	if c.state.Mode != ModeSearch {
		c.resume = c.state.Mode
	}
	c.state.Focus = NoFocus
	c.state.Err = nil
	c.setMode(ctx, ModeSearch)
}

// LeaveSearch cancels a search and returns to the mode EnterSearch left.
// It does nothing when search was the starting mode.
func (c *Controller) LeaveSearch(ctx context.Context) {
	if c.state.Mode != ModeSearch {
		return
	}
	switch {
	case c.resume == ModeArticle && len(c.state.History) > 0:
		c.setMode(ctx, ModeArticle)
	case c.resume == ModeResults:
		c.setMode(ctx, ModeResults)
	}
}

// Random opens a randomly chosen article.
func (c *Controller) Random(ctx context.Context) {
	path, err := c.archive.RandomPath(ctx)
	if err != nil {
		c.logger.Warn("random article failed", "err", err)
		c.state.Err = err
		return
	}
	c.open(ctx, path)
}

// Home opens the archive's main article.
func (c *Controller) Home(ctx context.Context) {
	info, err := c.archive.Info(ctx)
	if err == nil && info.MainPath == "" {
		err = errors.New(errors.ErrCodeNotFound, "archive has no main article")
	}
	if err != nil {
		c.logger.Warn("main article unavailable", "err", err)
		c.state.Err = err
		return
	}
	c.open(ctx, info.MainPath)
}

// FocusNext focuses the next link, wrapping to the first. Without a
// focused link it focuses link 0. It reports whether focus changed.
func (c *Controller) FocusNext() bool {
	n := c.linkCount()
	if n == 0 {
		return false
	}
	if c.state.Focus == NoFocus {
		c.state.Focus = 0
	} else {
		c.state.Focus = (c.state.Focus + 1) % n
	}
	return true
}

// FocusPrev focuses the previous link, wrapping to the last. Without a
// focused link it focuses the last link. It reports whether focus changed.
func (c *Controller) FocusPrev() bool {
	n := c.linkCount()
	if n == 0 {
		return false
	}
	if c.state.Focus == NoFocus {
		c.state.Focus = n - 1
	} else {
		c.state.Focus = (c.state.Focus - 1 + n) % n
	}
	return true
}

// Handle dispatches a key and reports whether the session should end.
// Paging and text entry are left to the view.
func (c *Controller) Handle(ctx context.Context, k Key) (quit bool) {
	switch k {
	case KeyQuit:
		return true
	case KeySearch:
		c.EnterSearch(ctx)
		return false
	case KeyRandom:
		c.Random(ctx)
		return false
	case KeyHome:
		c.Home(ctx)
		return false
	}

	switch c.state.Mode {
	case ModeResults:
		switch k {
		case KeyUp:
			c.MoveResult(-1)
		case KeyDown:
			c.MoveResult(1)
		case KeyEnter, KeyRight:
			c.OpenResult(ctx)
		}
	case ModeArticle:
		switch k {
		case KeyUp:
			c.FocusPrev()
		case KeyDown:
			c.FocusNext()
		case KeyEnter, KeyRight:
			c.Follow(ctx)
		case KeyLeft:
			c.Back(ctx)
		}
	}
	return false
}

// =============================================================================
// Fetching
// =============================================================================

// open fetches path and pushes it onto the history on success.
func (c *Controller) open(ctx context.Context, path string) {
	doc, err := c.load(ctx, path)
	if err != nil {
		c.fail(ctx, path, err)
		return
	}
	c.state.History = append(c.state.History, path)
	c.show(ctx, doc)
}

// reload fetches path, which is already on top of the history.
func (c *Controller) reload(ctx context.Context, path string) {
	doc, err := c.load(ctx, path)
	if err != nil {
		c.fail(ctx, path, err)
		return
	}
	c.show(ctx, doc)
}

// load fetches an article and builds its document. An article whose content
// cannot be parsed still loads, as a placeholder document.
func (c *Controller) load(ctx context.Context, path string) (*document.Document, error) {
	start := time.Now()
	art, err := c.archive.Article(ctx, path)
	if err != nil {
		err = errors.Wrap(errors.ErrCodeFetch, err, "fetch %s", path)
		observability.Navigation().OnFetch(ctx, path, 0, time.Since(start), err)
		return nil, err
	}

	title := art.Title
	if title == "" {
		title = path
	}
	doc, perr := c.builder.Build(title, art.HTML)
	if perr != nil {
		c.logger.Warn("could not parse article", "path", path, "err", perr)
	}
	observability.Navigation().OnFetch(ctx, path, doc.LinkCount(), time.Since(start), nil)
	return doc, nil
}

func (c *Controller) show(ctx context.Context, doc *document.Document) {
	c.state.Document = doc
	c.state.Focus = NoFocus
	c.state.Err = nil
	c.failedPath = ""
	c.setMode(ctx, ModeArticle)
}

// fail replaces the document with an error placeholder. The mode becomes
// Article only when there is an article to go back to.
func (c *Controller) fail(ctx context.Context, path string, err error) {
	c.logger.Warn("fetch failed", "path", path, "err", err)

	cause := err
	if inner := stderrors.Unwrap(err); inner != nil {
		cause = inner
	}

	text := fmt.Sprintf("Error: %s %s", errors.UserMessage(cause), path)
	c.state.Document = document.Placeholder(path, text)
	c.state.Focus = NoFocus
	c.state.Err = err
	c.failedPath = path
	if len(c.state.History) > 0 {
		c.setMode(ctx, ModeArticle)
	}
}

func (c *Controller) setMode(ctx context.Context, m Mode) {
	if c.state.Mode == m {
		return
	}
	observability.Navigation().OnTransition(ctx, c.state.Mode.String(), m.String())
	c.logger.Debug("mode", "from", c.state.Mode, "to", m)
	c.state.Mode = m
}

func (c *Controller) linkCount() int {
	if c.state.Mode != ModeArticle || c.state.Document == nil {
		return 0
	}
	return c.state.Document.LinkCount()
}
