package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/offwiki/pkg/archive"
	"github.com/matzehuels/offwiki/pkg/document"
	"github.com/matzehuels/offwiki/pkg/errors"
	"github.com/matzehuels/offwiki/pkg/nav"
)

// Screen chrome heights: the bordered search box and the status line.
const (
	headerHeight = 3
	statusHeight = 1
)

var (
	headerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1)
	statusStyle = lipgloss.NewStyle().
			Foreground(colorWhite).
			Background(lipgloss.Color("238"))
	statusErrorStyle = statusStyle.Foreground(colorRed).Bold(true)
)

// Status lines per mode.
const (
	statusStart   = "Mode: Start | /: Search | r: Random | m: Main Page | q: Quit"
	statusSearch  = "Mode: Search | ↵: Search | Esc: Cancel | ctrl+c: Quit"
	statusResults = "Mode: Results | ↑↓: Navigate | ↵ or →: Select | /: Search | r: Random | q: Quit"
	statusArticle = "Mode: Article | %d links | ↑↓: Navigate | ↵ or →: Follow | ←: Back | Space: Page Down | /: Search | r: Random | q: Quit"
)

// =============================================================================
// BrowseModel - Interactive reader
// =============================================================================

// browseModel is the bubbletea model of the interactive reader. All state
// transitions go through the navigation controller; the model only lays
// out the controller's state and scrolls the viewport.
type browseModel struct {
	ctx  context.Context
	ctrl *nav.Controller
	name string
	info *archive.Info

	input  textinput.Model
	view   viewport.Model
	typing bool

	width  int
	height int

	// shown is the mode whose content the viewport holds; search mode keeps
	// showing it. ModeSearch means the welcome screen.
	shown nav.Mode
	page  page
	doc   *document.Document
	focus int
	cur   int

	quitting bool
}

func newBrowseModel(ctx context.Context, ctrl *nav.Controller, name string, info *archive.Info) browseModel {
	in := textinput.New()
	in.Prompt = "Search: "
	in.Placeholder = "type a query and press enter"
	in.CharLimit = 256
	in.Focus()

	m := browseModel{
		ctx:    ctx,
		ctrl:   ctrl,
		name:   name,
		info:   info,
		input:  in,
		view:   viewport.New(80, 20),
		typing: true,
		shown:  nav.ModeSearch,
		focus:  nav.NoFocus,
		cur:    -1,
	}
	m.resize(80, 24)
	return m
}

func (m browseModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		if m.typing {
			return m.updateSearch(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m browseModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.ctrl.Submit(m.ctx, m.input.Value())
		if m.ctrl.Mode() != nav.ModeSearch {
			m.setTyping(false)
		}
		m.refresh()
		return m, nil
	case "esc":
		m.ctrl.LeaveSearch(m.ctx)
		m.setTyping(false)
		m.refresh()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m browseModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var key nav.Key
	switch msg.String() {
	case "q":
		key = nav.KeyQuit
	case "/":
		key = nav.KeySearch
	case "r":
		key = nav.KeyRandom
	case "m":
		key = nav.KeyHome
	case "up":
		key = nav.KeyUp
	case "down":
		key = nav.KeyDown
	case "left":
		key = nav.KeyLeft
	case "right":
		key = nav.KeyRight
	case "enter":
		key = nav.KeyEnter
	case " ", "space", "pgdown":
		m.view.SetYOffset(m.view.YOffset + m.view.Height)
		return m, nil
	case "pgup":
		m.view.SetYOffset(m.view.YOffset - m.view.Height)
		return m, nil
	default:
		return m, nil
	}

	if m.ctrl.Handle(m.ctx, key) {
		m.quitting = true
		return m, tea.Quit
	}
	if key == nav.KeySearch {
		m.setTyping(true)
		m.refresh()
		return m, textinput.Blink
	}
	m.refresh()
	return m, nil
}

func (m *browseModel) setTyping(on bool) {
	m.typing = on
	if on {
		m.input.Focus()
		m.input.CursorEnd()
	} else {
		m.input.Blur()
	}
}

func (m *browseModel) resize(width, height int) {
	m.width, m.height = max(width, 1), max(height, 1)
	m.view.Width = m.width
	m.view.Height = max(m.height-headerHeight-statusHeight, 1)
	m.input.Width = max(m.width-4-len(appName)-2-len(m.input.Prompt)-1, 1)

	if m.ctrl.SetWidth(m.width) {
		m.ctrl.Reload(m.ctx)
	}
	m.refresh()
}

// refresh lays out the controller state into the viewport.
func (m *browseModel) refresh() {
	s := m.ctrl.State()
	mode := s.Mode
	if mode == nav.ModeSearch {
		mode = m.shown
	}

	switch {
	case mode == nav.ModeArticle && s.Document != nil:
		m.showArticle(s)
	case mode == nav.ModeResults:
		m.showResults(s)
	default:
		m.view.SetContent(strings.Join(layoutWelcome(m.name, m.info), "\n"))
		m.shown = nav.ModeSearch
	}
}

func (m *browseModel) showArticle(s nav.State) {
	m.page = layoutPage(s.Document, max(m.width-2, 1), s.Focus, termStyles)
	m.view.SetContent(strings.Join(m.page.lines, "\n"))

	switch {
	case s.Document != m.doc || m.shown != nav.ModeArticle:
		m.view.GotoTop()
	case s.Focus != m.focus && s.Focus != nav.NoFocus:
		line := m.page.linkLine(s.Focus)
		m.view.SetYOffset(nav.CenterOffset(line, m.view.Height, len(m.page.lines)))
	}
	m.doc = s.Document
	m.focus = s.Focus
	m.shown = nav.ModeArticle
}

func (m *browseModel) showResults(s nav.State) {
	lines, line := layoutResults(s.Query, s.Results, s.ResultCursor, m.width, StyleFocus)
	m.view.SetContent(strings.Join(lines, "\n"))
	if m.shown != nav.ModeResults || s.ResultCursor != m.cur {
		m.view.SetYOffset(nav.CenterOffset(line, m.view.Height, len(lines)))
	}
	m.doc = nil
	m.cur = s.ResultCursor
	m.shown = nav.ModeResults
}

func (m browseModel) View() string {
	if m.quitting {
		return ""
	}
	title := StyleTitle.Render(appName)
	header := headerStyle.Width(max(m.width-2, 1)).Render(title + "  " + m.input.View())
	return lipgloss.JoinVertical(lipgloss.Left, header, m.view.View(), m.statusLine())
}

func (m browseModel) statusLine() string {
	s := m.ctrl.State()
	var text string
	switch {
	case m.typing:
		text = statusSearch
	case s.Mode == nav.ModeResults:
		text = statusResults
	case s.Mode == nav.ModeArticle && s.Document != nil:
		text = fmt.Sprintf(statusArticle, s.Document.LinkCount())
	default:
		text = statusStart
	}

	style := statusStyle
	if s.Err != nil {
		text = "Error: " + errors.UserMessage(s.Err) + " | " + text
		style = statusErrorStyle
	}
	return style.Width(m.width).Render(clip(text, m.width))
}
