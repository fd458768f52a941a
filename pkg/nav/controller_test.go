package nav

import (
	"context"
	stderrors "errors"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/offwiki/pkg/archive"
	"github.com/matzehuels/offwiki/pkg/document"
	"github.com/matzehuels/offwiki/pkg/errors"
)

func page(body string) string {
	return `<html><body><div id="mw-content-text">` + body + `</div></body></html>`
}

// testArchive builds a small linked archive:
//
//	A -> B, C, D
//	B -> A
//	C (no links)
//	D -> Missing
func testArchive() *archive.Memory {
	return archive.NewMemory("Test").
		Add("A", "Alpha", page(`<p>Alpha links to <a href="B">b</a>, <a href="/wiki/C">c</a> and <a href="D">d</a>.</p>`)).
		Add("B", "Beta", page(`<p>Back to <a href="A">alpha</a>.</p>`)).
		Add("C", "Gamma", page(`<p>No links here.</p>`)).
		Add("D", "Delta", page(`<p>Broken <a href="Missing">link</a>.</p>`)).
		SetMain("A")
}

// openArticle drives a fresh controller to the article at path via search.
func openArticle(t *testing.T, c *Controller, path string) {
	t.Helper()
	ctx := context.Background()
	c.EnterSearch(ctx)
	c.Submit(ctx, path)
	for i, r := range c.State().Results {
		if r == path {
			c.MoveResult(i)
			break
		}
	}
	c.OpenResult(ctx)
	if got := c.State().Current(); got != path {
		t.Fatalf("opened %q, want %q", got, path)
	}
}

func TestNewStartsInSearch(t *testing.T) {
	c := New(testArchive())
	s := c.State()
	if s.Mode != ModeSearch {
		t.Errorf("Mode = %v, want %v", s.Mode, ModeSearch)
	}
	if s.Focus != NoFocus {
		t.Errorf("Focus = %d, want %d", s.Focus, NoFocus)
	}
	if len(s.History) != 0 || s.Document != nil {
		t.Errorf("fresh state has history %v and document %v", s.History, s.Document)
	}
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("query lists results", func(t *testing.T) {
		c := New(testArchive())
		c.Submit(ctx, "  alpha ")
		s := c.State()
		if s.Mode != ModeResults {
			t.Fatalf("Mode = %v, want %v", s.Mode, ModeResults)
		}
		if !reflect.DeepEqual(s.Results, []string{"A"}) {
			t.Errorf("Results = %v, want [A]", s.Results)
		}
		if s.Query != "alpha" {
			t.Errorf("Query = %q, want %q", s.Query, "alpha")
		}
	})

	t.Run("blank query is ignored", func(t *testing.T) {
		c := New(testArchive())
		c.Submit(ctx, "   ")
		if c.Mode() != ModeSearch {
			t.Errorf("Mode = %v, want %v", c.Mode(), ModeSearch)
		}
	})

	t.Run("max results", func(t *testing.T) {
		c := New(testArchive(), WithMaxResults(2))
		c.Submit(ctx, "a")
		if n := len(c.State().Results); n != 2 {
			t.Errorf("got %d results, want 2", n)
		}
	})

	t.Run("no matches", func(t *testing.T) {
		c := New(testArchive())
		c.Submit(ctx, "zebra")
		s := c.State()
		if s.Mode != ModeResults || len(s.Results) != 0 {
			t.Errorf("Mode = %v, Results = %v, want results mode with none", s.Mode, s.Results)
		}
	})

	t.Run("search failure yields empty results", func(t *testing.T) {
		c := New(failingSearch{testArchive()})
		c.Submit(ctx, "alpha")
		s := c.State()
		if s.Mode != ModeResults || len(s.Results) != 0 {
			t.Errorf("Mode = %v, Results = %v, want results mode with none", s.Mode, s.Results)
		}
	})

	t.Run("only in search mode", func(t *testing.T) {
		c := New(testArchive())
		c.Submit(ctx, "alpha")
		c.Submit(ctx, "beta")
		if got := c.State().Query; got != "alpha" {
			t.Errorf("Query = %q, want %q", got, "alpha")
		}
	})
}

func TestMoveResultClamps(t *testing.T) {
	c := New(testArchive())
	c.Submit(context.Background(), "a")
	n := len(c.State().Results)

	c.MoveResult(-5)
	if got := c.State().ResultCursor; got != 0 {
		t.Errorf("ResultCursor = %d, want 0", got)
	}
	c.MoveResult(100)
	if got := c.State().ResultCursor; got != n-1 {
		t.Errorf("ResultCursor = %d, want %d", got, n-1)
	}
}

func TestOpenResult(t *testing.T) {
	c := New(testArchive())
	openArticle(t, c, "A")

	s := c.State()
	if s.Mode != ModeArticle {
		t.Errorf("Mode = %v, want %v", s.Mode, ModeArticle)
	}
	if !reflect.DeepEqual(s.History, []string{"A"}) {
		t.Errorf("History = %v, want [A]", s.History)
	}
	if s.Document.Title() != "Alpha" {
		t.Errorf("Title = %q, want %q", s.Document.Title(), "Alpha")
	}
	if s.Document.LinkCount() != 3 {
		t.Errorf("LinkCount = %d, want 3", s.Document.LinkCount())
	}
	if s.Focus != NoFocus {
		t.Errorf("Focus = %d, want %d", s.Focus, NoFocus)
	}
}

func TestFocusCycling(t *testing.T) {
	c := New(testArchive())
	openArticle(t, c, "A")

	steps := []struct {
		name string
		move func() bool
		want int
	}{
		{"first down selects 0", c.FocusNext, 0},
		{"down", c.FocusNext, 1},
		{"down", c.FocusNext, 2},
		{"down wraps to 0", c.FocusNext, 0},
		{"up wraps to last", c.FocusPrev, 2},
		{"up", c.FocusPrev, 1},
	}
	for _, s := range steps {
		if !s.move() {
			t.Fatalf("%s: focus did not change", s.name)
		}
		if got := c.Focus(); got != s.want {
			t.Fatalf("%s: Focus = %d, want %d", s.name, got, s.want)
		}
	}
}

func TestFocusPrevFromNone(t *testing.T) {
	c := New(testArchive())
	openArticle(t, c, "A")
	c.FocusPrev()
	if got := c.Focus(); got != 2 {
		t.Errorf("Focus = %d, want 2", got)
	}
}

func TestFocusWithoutLinks(t *testing.T) {
	c := New(testArchive())
	openArticle(t, c, "C")
	if c.FocusNext() || c.FocusPrev() {
		t.Error("focus changed in a document without links")
	}
	if c.Focus() != NoFocus {
		t.Errorf("Focus = %d, want %d", c.Focus(), NoFocus)
	}
}

func TestFollowAndBack(t *testing.T) {
	ctx := context.Background()
	c := New(testArchive())
	openArticle(t, c, "A")

	c.FocusNext() // b
	c.Follow(ctx)
	if got := c.State().History; !reflect.DeepEqual(got, []string{"A", "B"}) {
		t.Fatalf("History = %v, want [A B]", got)
	}
	if c.Focus() != NoFocus {
		t.Errorf("Focus = %d after follow, want %d", c.Focus(), NoFocus)
	}

	c.Back(ctx)
	s := c.State()
	if !reflect.DeepEqual(s.History, []string{"A"}) {
		t.Fatalf("History = %v after back, want [A]", s.History)
	}
	if s.Document.Title() != "Alpha" {
		t.Errorf("Title = %q after back, want %q", s.Document.Title(), "Alpha")
	}

	before := s.Document
	c.Back(ctx)
	s = c.State()
	if !reflect.DeepEqual(s.History, []string{"A"}) {
		t.Errorf("History = %v after back at depth 1, want [A]", s.History)
	}
	if s.Document != before {
		t.Error("back at depth 1 replaced the document")
	}
}

func TestFollowWithoutFocus(t *testing.T) {
	c := New(testArchive())
	openArticle(t, c, "A")
	c.Follow(context.Background())
	if got := c.State().History; !reflect.DeepEqual(got, []string{"A"}) {
		t.Errorf("History = %v, want [A]", got)
	}
}

func TestBackRefetches(t *testing.T) {
	ctx := context.Background()
	a := testArchive()
	c := New(a)
	openArticle(t, c, "A")
	c.FocusNext()
	c.Follow(ctx)

	a.Add("A", "Alpha v2", page(`<p>Rewritten.</p>`))
	c.Back(ctx)

	doc := c.Document()
	if doc.Title() != "Alpha v2" {
		t.Errorf("Title = %q, want the re-fetched %q", doc.Title(), "Alpha v2")
	}
	if doc.LinkCount() != 0 {
		t.Errorf("LinkCount = %d, want 0", doc.LinkCount())
	}
}

func TestFetchFailure(t *testing.T) {
	ctx := context.Background()
	c := New(testArchive())
	openArticle(t, c, "D")

	c.FocusNext()
	c.Follow(ctx)

	s := c.State()
	if s.Mode != ModeArticle {
		t.Errorf("Mode = %v, want %v", s.Mode, ModeArticle)
	}
	if !reflect.DeepEqual(s.History, []string{"D"}) {
		t.Errorf("History = %v, want [D]", s.History)
	}
	if !errors.Is(s.Err, errors.ErrCodeFetch) || !errors.Is(s.Err, errors.ErrCodeNotFound) {
		t.Errorf("Err = %v, want FETCH_ERROR wrapping NOT_FOUND", s.Err)
	}
	if s.Document.LinkCount() != 0 || s.Focus != NoFocus {
		t.Errorf("placeholder has %d links and focus %d", s.Document.LinkCount(), s.Focus)
	}
	p, ok := s.Document.Block(0).(document.Paragraph)
	if !ok || !strings.HasPrefix(p.Text, "Error: ") || !strings.HasSuffix(p.Text, " Missing") {
		t.Errorf("placeholder = %#v, want \"Error: <cause> Missing\"", s.Document.Block(0))
	}

	// Back from the placeholder restores the article on top of the history.
	c.Back(ctx)
	s = c.State()
	if !reflect.DeepEqual(s.History, []string{"D"}) {
		t.Errorf("History = %v after back, want [D]", s.History)
	}
	if s.Err != nil || s.Document.Title() != "Delta" {
		t.Errorf("after back: Err = %v, Title = %q", s.Err, s.Document.Title())
	}
}

func TestFetchFailureWithoutHistory(t *testing.T) {
	ctx := context.Background()
	a := testArchive()
	c := New(a)
	c.Submit(ctx, "gamma")
	a.AddRaw("C", "Gamma", []byte{0xff, 0xfe})

	c.OpenResult(ctx)
	s := c.State()
	if s.Mode != ModeResults {
		t.Errorf("Mode = %v, want %v", s.Mode, ModeResults)
	}
	if len(s.History) != 0 {
		t.Errorf("History = %v, want empty", s.History)
	}
	if !errors.Is(s.Err, errors.ErrCodeDecode) {
		t.Errorf("Err = %v, want DECODE_ERROR", s.Err)
	}
}

func TestUnparsableArticleStillOpens(t *testing.T) {
	c := New(archive.NewMemory("t").Add("Empty", "Empty", ""))
	openArticle(t, c, "Empty")

	s := c.State()
	if s.Err != nil {
		t.Errorf("Err = %v, want nil", s.Err)
	}
	want := []document.Block{document.Paragraph{Text: document.ParseFailureText}}
	if got := s.Document.Blocks(); !reflect.DeepEqual(got, want) {
		t.Errorf("Blocks() = %#v, want %#v", got, want)
	}
}

func TestEnterSearchKeepsHistory(t *testing.T) {
	ctx := context.Background()
	c := New(testArchive())
	openArticle(t, c, "A")
	c.FocusNext()

	c.EnterSearch(ctx)
	s := c.State()
	if s.Mode != ModeSearch {
		t.Errorf("Mode = %v, want %v", s.Mode, ModeSearch)
	}
	if s.Focus != NoFocus {
		t.Errorf("Focus = %d, want %d", s.Focus, NoFocus)
	}
	if !reflect.DeepEqual(s.History, []string{"A"}) {
		t.Errorf("History = %v, want [A]", s.History)
	}
}

func TestLeaveSearch(t *testing.T) {
	ctx := context.Background()

	c := New(testArchive())
	c.LeaveSearch(ctx)
	if c.Mode() != ModeSearch {
		t.Errorf("Mode = %v, want %v", c.Mode(), ModeSearch)
	}

	c.Submit(ctx, "a")
	c.EnterSearch(ctx)
	c.LeaveSearch(ctx)
	if c.Mode() != ModeResults {
		t.Errorf("Mode = %v, want %v", c.Mode(), ModeResults)
	}

	c.OpenResult(ctx)
	c.EnterSearch(ctx)
	c.LeaveSearch(ctx)
	if c.Mode() != ModeArticle {
		t.Errorf("Mode = %v, want %v", c.Mode(), ModeArticle)
	}
	if got := c.Document().Title(); got != "Alpha" {
		t.Errorf("Title = %q, want %q", got, "Alpha")
	}
}

func TestRandomAndHome(t *testing.T) {
	ctx := context.Background()

	c := New(archive.NewMemory("one").Add("Only", "Only", page("<p>x</p>")))
	c.Random(ctx)
	if got := c.State().History; !reflect.DeepEqual(got, []string{"Only"}) {
		t.Errorf("History = %v after random, want [Only]", got)
	}

	c = New(testArchive())
	c.Home(ctx)
	if got := c.State().Current(); got != "A" {
		t.Errorf("Current() = %q after home, want %q", got, "A")
	}

	c = New(archive.NewMemory("empty"))
	c.Random(ctx)
	c.Home(ctx)
	s := c.State()
	if s.Mode != ModeSearch || s.Err == nil {
		t.Errorf("Mode = %v, Err = %v, want search mode with an error", s.Mode, s.Err)
	}
}

func TestHandle(t *testing.T) {
	ctx := context.Background()
	c := New(testArchive())

	if c.Handle(ctx, KeyDown) {
		t.Fatal("KeyDown quit")
	}
	c.Submit(ctx, "a")
	c.Handle(ctx, KeyDown)
	if got := c.State().ResultCursor; got != 1 {
		t.Errorf("ResultCursor = %d, want 1", got)
	}
	c.Handle(ctx, KeyUp)
	c.Handle(ctx, KeyRight)
	if c.Mode() != ModeArticle {
		t.Fatalf("Mode = %v, want %v", c.Mode(), ModeArticle)
	}

	c.Handle(ctx, KeyDown)
	c.Handle(ctx, KeyEnter)
	if got := c.State().History; !reflect.DeepEqual(got, []string{"A", "B"}) {
		t.Fatalf("History = %v, want [A B]", got)
	}
	c.Handle(ctx, KeyLeft)
	if got := c.State().Current(); got != "A" {
		t.Errorf("Current() = %q, want %q", got, "A")
	}

	c.Handle(ctx, KeySearch)
	if c.Mode() != ModeSearch {
		t.Errorf("Mode = %v, want %v", c.Mode(), ModeSearch)
	}
	c.Handle(ctx, KeyHome)
	if c.Mode() != ModeArticle {
		t.Errorf("Mode = %v after home, want %v", c.Mode(), ModeArticle)
	}
	if !c.Handle(ctx, KeyQuit) {
		t.Error("KeyQuit did not quit")
	}
}

func TestSetWidth(t *testing.T) {
	c := New(testArchive())
	if !c.SetWidth(80) {
		t.Error("first SetWidth reported no change")
	}
	if c.SetWidth(80) {
		t.Error("repeated SetWidth reported a change")
	}
	if c.builder.Width != 78 {
		t.Errorf("builder width = %d, want 78", c.builder.Width)
	}
	c.SetWidth(0)
	if c.builder.Width != 1 {
		t.Errorf("builder width = %d, want 1", c.builder.Width)
	}
}

func TestStateIsSnapshot(t *testing.T) {
	c := New(testArchive())
	openArticle(t, c, "A")
	s := c.State()
	s.History[0] = "changed"
	if got := c.State().Current(); got != "A" {
		t.Errorf("Current() = %q, want %q", got, "A")
	}
}

func TestCenterOffset(t *testing.T) {
	tests := []struct {
		name                string
		line, height, total int
		want                int
	}{
		{"middle", 50, 10, 100, 45},
		{"near top clamps to 0", 2, 10, 100, 0},
		{"near bottom clamps to last page", 98, 10, 100, 90},
		{"short document", 3, 10, 5, 0},
		{"odd height", 20, 7, 100, 17},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CenterOffset(tt.line, tt.height, tt.total); got != tt.want {
				t.Errorf("CenterOffset(%d, %d, %d) = %d, want %d",
					tt.line, tt.height, tt.total, got, tt.want)
			}
		})
	}
}

func TestModeString(t *testing.T) {
	for m, want := range map[Mode]string{ModeSearch: "search", ModeResults: "results", ModeArticle: "article", Mode(9): "unknown"} {
		if got := m.String(); got != want {
			t.Errorf("Mode(%d).String() = %q, want %q", m, got, want)
		}
	}
}

// failingSearch is an archive whose searches always fail.
type failingSearch struct {
	*archive.Memory
}

func (failingSearch) Search(context.Context, string, int) ([]string, error) {
	return nil, stderrors.New("index unavailable")
}
