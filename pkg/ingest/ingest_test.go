package ingest

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/offwiki/pkg/archive"
	"github.com/matzehuels/offwiki/pkg/document"
	"github.com/matzehuels/offwiki/pkg/errors"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func newArchive(t *testing.T) *archive.SQLite {
	t.Helper()
	s, err := archive.Create(":memory:")
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestArticlePath(t *testing.T) {
	tests := []struct {
		rel  string
		want string
	}{
		{"Mercury.html", "Mercury"},
		{"planets/Mercury.htm", "planets/Mercury"},
		{"docs/Getting Started.md", "docs/Getting_Started"},
		{"notes.MARKDOWN", "notes"},
		{"./a/../b.md", "b"},
		{"data.txt", "data.txt"},
	}
	for _, tt := range tests {
		if got := ArticlePath(tt.rel); got != tt.want {
			t.Errorf("ArticlePath(%q) = %q, want %q", tt.rel, got, tt.want)
		}
	}
}

func TestConvertHTML(t *testing.T) {
	src := `<html><head><title>Mercury</title></head><body>
		<div id="mw-content-text"><p>The <a href="Venus.html">second</a> planet is
		<a href="../Sun.html">not</a> here. See <a href="https://example.com">web</a>
		and <a href="Venus.html#Orbit">orbit</a>.<script>var x;</script></p></div>
		<div id="footer">Footer text</div></body></html>`

	p, err := Convert("planets/Mercury.html", []byte(src), nil)
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	if p.Path != "planets/Mercury" || p.Title != "Mercury" {
		t.Errorf("Path, Title = %q, %q, want %q, %q", p.Path, p.Title, "planets/Mercury", "Mercury")
	}
	for _, want := range []string{
		`href="/wiki/planets/Venus"`,
		`href="/wiki/Sun"`,
		`href="https://example.com"`,
		`href="/wiki/planets/Venus#Orbit"`,
	} {
		if !strings.Contains(p.HTML, want) {
			t.Errorf("HTML missing %s", want)
		}
	}
	if strings.Contains(p.Body, "Footer") || strings.Contains(p.Body, "var x") {
		t.Errorf("Body = %q, want content container text only", p.Body)
	}
	if !strings.HasPrefix(p.Body, "The second planet is not here.") {
		t.Errorf("Body = %q", p.Body)
	}
}

func TestConvertMarkdown(t *testing.T) {
	src := "# Getting Started\n\nRead the [guide](Guide.md).\n\n| Key | Value |\n|-----|-------|\n| a   | 1     |\n"

	p, err := Convert("docs/Getting Started.md", []byte(src), nil)
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	if p.Title != "Getting Started" {
		t.Errorf("Title = %q, want %q", p.Title, "Getting Started")
	}
	if !strings.Contains(p.HTML, `<div id="mw-content-text">`) {
		t.Errorf("HTML lacks the content container: %s", p.HTML)
	}
	if !strings.Contains(p.HTML, `href="/wiki/docs/Guide"`) {
		t.Errorf("HTML lacks the rewritten link: %s", p.HTML)
	}

	doc, err := document.Builder{Width: 40}.Build(p.Title, p.HTML)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if link, ok := doc.Link(0); !ok || link.Path != "docs/Guide" {
		t.Errorf("Link(0) = %v, %v, want docs/Guide", link, ok)
	}
	var tableLines int
	for _, b := range doc.Blocks() {
		if b.Kind() == document.KindTableLine {
			tableLines++
		}
	}
	if tableLines == 0 {
		t.Error("markdown table produced no table lines")
	}
}

func TestConvertTitleFallback(t *testing.T) {
	p, err := Convert("Plain.html", []byte("<p>No headings.</p>"), nil)
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	if p.Title != "Plain" {
		t.Errorf("Title = %q, want %q", p.Title, "Plain")
	}
}

func TestConvertUnsupported(t *testing.T) {
	_, err := Convert("notes.txt", []byte("hi"), nil)
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("Convert() error = %v, want UNSUPPORTED", err)
	}
}

func TestDiscover(t *testing.T) {
	root := writeTree(t, map[string]string{
		"b.html":        "<p>b</p>",
		"a/c.md":        "c",
		"a/notes.txt":   "ignored",
		".git/x.html":   "hidden",
		"a/.draft.md":   "hidden",
		"Main Page.htm": "<p>m</p>",
	})

	got, err := Discover(root)
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}
	want := []string{"Main Page.htm", "a/c.md", "b.html"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Discover() = %v, want %v", got, want)
	}

	if _, err := Discover(filepath.Join(root, "b.html")); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Discover(file) error = %v, want INVALID_INPUT", err)
	}
}

func TestImport(t *testing.T) {
	ctx := context.Background()
	root := writeTree(t, map[string]string{
		"Main Page.html": `<html><head><title>Welcome</title></head><body><div id="mw-content-text">
			<p>Start at <a href="planets/Mercury.md">Mercury</a>.</p></div></body></html>`,
		"planets/Mercury.md": "# Mercury\n\nThe smallest planet.\n",
		"planets/Venus.md":   "# Venus\n\nThe hottest planet.\n",
	})
	dst := newArchive(t)

	res, err := Import(ctx, dst, root, Options{Title: "Solar", Workers: 2})
	if err != nil {
		t.Fatalf("Import() error: %v", err)
	}
	if res.Files != 3 || res.Written != 3 || res.Unchanged != 0 {
		t.Errorf("Result = %+v, want 3 files written", res)
	}
	if res.Main != "Main_Page" {
		t.Errorf("Main = %q, want %q", res.Main, "Main_Page")
	}

	info, err := dst.Info(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if info.Title != "Solar" || info.MainPath != "Main_Page" || info.MainTitle != "Welcome" || info.ArticleCount != 3 {
		t.Errorf("Info = %+v", info)
	}

	hits, err := dst.Search(ctx, "hottest", 10)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(hits, []string{"planets/Venus"}) {
		t.Errorf("Search(hottest) = %v, want [planets/Venus]", hits)
	}

	art, err := dst.Article(ctx, "Main_Page")
	if err != nil {
		t.Fatal(err)
	}
	doc, _ := document.Builder{}.Build(art.Title, art.HTML)
	if link, ok := doc.Link(0); !ok || link.Path != "planets/Mercury" {
		t.Errorf("Link(0) = %v, %v, want planets/Mercury", link, ok)
	}

	// A second run over the same tree writes nothing.
	res, err = Import(ctx, dst, root, Options{})
	if err != nil {
		t.Fatalf("second Import() error: %v", err)
	}
	if res.Written != 0 || res.Unchanged != 3 {
		t.Errorf("second Result = %+v, want 3 unchanged", res)
	}
	info, _ = dst.Info(ctx)
	if info.Title != "Solar" {
		t.Errorf("Title = %q after re-import, want %q", info.Title, "Solar")
	}
}

func TestImportDefaultTitle(t *testing.T) {
	ctx := context.Background()
	root := filepath.Join(writeTree(t, map[string]string{"wiki/index.md": "# Home\n"}), "wiki")
	dst := newArchive(t)

	res, err := Import(ctx, dst, root, Options{})
	if err != nil {
		t.Fatalf("Import() error: %v", err)
	}
	if res.Main != "index" {
		t.Errorf("Main = %q, want %q", res.Main, "index")
	}
	info, _ := dst.Info(ctx)
	if info.Title != "wiki" {
		t.Errorf("Title = %q, want %q", info.Title, "wiki")
	}
}

func TestImportErrors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		files map[string]string
		opts  Options
	}{
		{"no sources", map[string]string{"readme.txt": "x"}, Options{}},
		{"duplicate paths", map[string]string{"a.html": "<p>a</p>", "a.md": "a"}, Options{}},
		{"unknown main", map[string]string{"a.html": "<p>a</p>"}, Options{Main: "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := newArchive(t)
			_, err := Import(ctx, dst, writeTree(t, tt.files), tt.opts)
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("Import() error = %v, want INVALID_INPUT", err)
			}
			info, _ := dst.Info(ctx)
			if info.ArticleCount != 0 {
				t.Errorf("ArticleCount = %d after failed import, want 0", info.ArticleCount)
			}
		})
	}
}
