package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"

	"github.com/matzehuels/offwiki/pkg/archive"
	"github.com/matzehuels/offwiki/pkg/document"
)

// =============================================================================
// Page Styles
// =============================================================================

// pageStyles styles the parts of a rendered article.
type pageStyles struct {
	title   lipgloss.Style
	heading lipgloss.Style
	link    lipgloss.Style
	focus   lipgloss.Style
}

var (
	// termStyles are used by the interactive reader.
	termStyles = pageStyles{
		title:   StyleTitle,
		heading: lipgloss.NewStyle().Bold(true).Foreground(colorYellow),
		link:    StyleLink,
		focus:   StyleFocus,
	}

	// plainStyles render unstyled text for show and tests.
	plainStyles = pageStyles{
		title:   lipgloss.NewStyle(),
		heading: lipgloss.NewStyle(),
		link:    lipgloss.NewStyle(),
		focus:   lipgloss.NewStyle(),
	}
)

// =============================================================================
// Article Pages
// =============================================================================

// page is a document laid out as terminal lines.
type page struct {
	lines []string

	// linkLines holds the line of each link, by link index.
	linkLines []int
}

// linkLine returns the line of link i, or -1.
func (p page) linkLine(i int) int {
	if i < 0 || i >= len(p.linkLines) {
		return -1
	}
	return p.linkLines[i]
}

// layoutPage renders doc at the given width. The link with index focus is
// drawn with the focus style.
func layoutPage(doc *document.Document, width, focus int, st pageStyles) page {
	width = max(width, 1)
	p := page{linkLines: make([]int, doc.LinkCount())}
	add := func(s string) { p.lines = append(p.lines, s) }

	add("")
	add(st.title.Render(clip(doc.Title(), width)))
	add(strings.Repeat("═", width))

	for _, b := range doc.Blocks() {
		switch b := b.(type) {
		case document.Paragraph:
			for _, l := range wrapText(b.Text, width) {
				add(l)
			}
		case document.Heading:
			marks := strings.Repeat("#", 2*b.Level)
			for _, l := range wrapText(marks+" "+b.Text+" "+marks, width) {
				add(st.heading.Render(l))
			}
		case document.ListItem:
			for _, l := range hangingWrap(b.Text, width, runewidth.StringWidth(document.ListBullet)) {
				add(l)
			}
		case document.LinkBlock:
			p.linkLines[b.Index] = len(p.lines)
			style := st.link
			if b.Index == focus {
				style = st.focus
			}
			add(style.Render(clip(iconArrow+" ["+b.Label+"]", width)))
		case document.TableLine:
			add(b.Text)
		case document.Divider:
			add("")
		}
	}
	return p
}

// wrapText word-wraps s to width, breaking words that do not fit.
func wrapText(s string, width int) []string {
	return strings.Split(wrap.String(wordwrap.String(s, width), width), "\n")
}

// hangingWrap wraps s and indents continuation lines by indent columns.
func hangingWrap(s string, width, indent int) []string {
	if indent >= width {
		return wrapText(s, width)
	}
	lines := wrapText(s, width)
	if len(lines) <= 1 {
		return lines
	}
	rest := wrapText(strings.Join(lines[1:], " "), width-indent)
	pad := strings.Repeat(" ", indent)
	for i := range rest {
		rest[i] = pad + rest[i]
	}
	return append(lines[:1], rest...)
}

// clip truncates s to width display columns.
func clip(s string, width int) string {
	return runewidth.Truncate(s, width, "…")
}

// =============================================================================
// Results and Welcome
// =============================================================================

// layoutResults renders a result list with the entry at cursor highlighted.
// It returns the lines and the line of the cursor entry.
func layoutResults(query string, results []string, cursor, width int, focus lipgloss.Style) ([]string, int) {
	lines := []string{"", fmt.Sprintf("Found %d results for '%s':", len(results), query), ""}
	cursorLine := 0
	for i, r := range results {
		line := clip(fmt.Sprintf("%d. %s", i+1, r), width)
		if i == cursor {
			cursorLine = len(lines)
			line = focus.Render(line)
		}
		lines = append(lines, line)
	}
	return lines, cursorLine
}

// layoutWelcome renders the start screen describing the archive.
func layoutWelcome(name string, info *archive.Info) []string {
	lines := []string{
		"",
		fmt.Sprintf("Welcome to %s, a fully offline terminal wiki reader", appName),
		"",
		"FILE INFO:",
		"  Title: " + name,
	}
	if info == nil {
		return lines
	}
	if info.Title != "" {
		lines[4] = "  Title: " + info.Title
	}
	main := info.MainTitle
	if main == "" {
		main = info.MainPath
	}
	if main == "" {
		main = "(none)"
	}
	return append(lines,
		"  File Size: "+formatSize(info.FileSize),
		"  Main Entry: "+main,
		fmt.Sprintf("  Article Count: %d", info.ArticleCount),
	)
}
