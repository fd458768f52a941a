package nav

import (
	"github.com/matzehuels/offwiki/pkg/document"
)

// Mode is the reader's top-level state.
type Mode int

const (
	ModeSearch Mode = iota
	ModeResults
	ModeArticle
)

func (m Mode) String() string {
	switch m {
	case ModeSearch:
		return "search"
	case ModeResults:
		return "results"
	case ModeArticle:
		return "article"
	default:
		return "unknown"
	}
}

// NoFocus is the Focus value when no link is focused.
const NoFocus = -1

// State is a snapshot of a reading session.
type State struct {
	Mode Mode

	// History holds visited article paths; the last entry is the article on
	// screen. It is non-empty whenever Mode is ModeArticle.
	History []string

	// Document is the article on screen, or an error placeholder. Nil until
	// the first article is opened.
	Document *document.Document

	// Focus is the index of the focused link of Document, or NoFocus.
	Focus int

	// Results are the paths returned by the last search.
	Results []string

	// ResultCursor is the selected entry of Results.
	ResultCursor int

	// Query is the last submitted search.
	Query string

	// Err is the error of the last failed transition, if any.
	Err error
}

// Current returns the path on top of the history, or "".
func (s State) Current() string {
	if len(s.History) == 0 {
		return ""
	}
	return s.History[len(s.History)-1]
}

// Key is an input event understood by Controller.Handle.
type Key int

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeySpace
	KeySearch
	KeyRandom
	KeyHome
	KeyQuit
)

// CenterOffset returns the scroll offset of a viewport of the given height
// that puts line in the middle, clamped so the viewport stays within a
// document of total lines.
func CenterOffset(line, height, total int) int {
	target := line - height/2
	return max(0, min(target, total-height))
}
