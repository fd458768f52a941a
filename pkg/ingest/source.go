package ingest

import (
	"bytes"
	"io/fs"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/matzehuels/offwiki/pkg/document"
	"github.com/matzehuels/offwiki/pkg/errors"
)

// Source kinds by file extension.
const (
	kindHTML     = "html"
	kindMarkdown = "markdown"
)

var kinds = map[string]string{
	".html":     kindHTML,
	".htm":      kindHTML,
	".md":       kindMarkdown,
	".markdown": kindMarkdown,
}

// Supported reports whether a file name has an importable extension.
func Supported(name string) bool {
	_, ok := kinds[strings.ToLower(filepath.Ext(name))]
	return ok
}

// ArticlePath maps a slash-separated file path relative to the import root
// to its article path.
func ArticlePath(rel string) string {
	rel = strings.TrimPrefix(path.Clean(rel), "./")
	if Supported(rel) {
		rel = strings.TrimSuffix(rel, path.Ext(rel))
	}
	return strings.ReplaceAll(rel, " ", "_")
}

// Page is a converted source file.
type Page struct {
	Path  string
	Title string
	HTML  string
	Body  string
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.Table))

// Convert turns the source file at rel into a Page. Selectors locate the
// content container for the search body; see document.Extract.
func Convert(rel string, src []byte, selectors []string) (*Page, error) {
	kind, ok := kinds[strings.ToLower(path.Ext(rel))]
	if !ok {
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported file type: %s", rel)
	}

	p := &Page{Path: ArticlePath(rel)}
	if err := errors.ValidateArticlePath(p.Path); err != nil {
		return nil, err
	}

	if kind == kindMarkdown {
		var buf bytes.Buffer
		if err := markdown.Convert(src, &buf); err != nil {
			return nil, errors.Wrap(errors.ErrCodeParse, err, "convert %s", rel)
		}
		src = wrapFragment(buf.Bytes())
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(src))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "parse %s", rel)
	}

	p.Title = pageTitle(doc, rel)
	rewriteLinks(doc, p.Path)

	p.HTML, err = doc.Html()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "render %s", rel)
	}

	// Extraction strips noise from doc, so it runs after HTML is captured.
	if root, err := document.ExtractDocument(doc, selectors); err == nil {
		p.Body = strings.Join(strings.Fields(root.Text()), " ")
	}
	return p, nil
}

func wrapFragment(body []byte) []byte {
	var buf bytes.Buffer
	buf.WriteString(`<html><body><div id="mw-content-text">`)
	buf.Write(body)
	buf.WriteString(`</div></body></html>`)
	return buf.Bytes()
}

func pageTitle(doc *goquery.Document, rel string) string {
	for _, sel := range []string{"head title", "h1"} {
		if t := strings.Join(strings.Fields(doc.Find(sel).First().Text()), " "); t != "" {
			return t
		}
	}
	base := path.Base(rel)
	return strings.TrimSuffix(base, path.Ext(base))
}

// rewriteLinks points relative links at other sources to their article
// paths, resolved against the directory of the page at from.
func rewriteLinks(doc *goquery.Document, from string) {
	dir := path.Dir(from)
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if target, ok := localTarget(dir, href); ok {
			a.SetAttr("href", "/wiki/"+target)
		}
	})
}

func localTarget(dir, href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" || document.IsExternal(href) || strings.HasPrefix(href, "/") || strings.Contains(href, ":") {
		return "", false
	}
	ref, fragment, _ := strings.Cut(href, "#")
	if unescaped, err := url.PathUnescape(ref); err == nil {
		ref = unescaped
	}
	if !Supported(ref) {
		return "", false
	}
	target := ArticlePath(path.Join(dir, ref))
	if strings.HasPrefix(target, "../") || target == ".." {
		return "", false
	}
	if fragment != "" {
		target += "#" + fragment
	}
	return target, true
}

// skipEntry reports whether a walk entry is hidden.
func skipEntry(d fs.DirEntry) bool {
	name := d.Name()
	return len(name) > 1 && strings.HasPrefix(name, ".")
}
