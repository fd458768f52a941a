package document

import (
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/matzehuels/offwiki/pkg/table"
)

// containers are walked into without producing a block of their own.
var containers = map[string]bool{
	"div": true, "section": true, "article": true, "main": true,
	"header": true, "footer": true, "aside": true, "blockquote": true,
	"figure": true, "figcaption": true, "center": true, "details": true,
	"summary": true, "dl": true, "dd": true, "dt": true, "body": true,
}

var headingLevels = map[string]int{
	"h1": 1, "h2": 2, "h3": 3, "h4": 4,
	"h5": MaxHeadingLevel, "h6": MaxHeadingLevel,
}

// Builder converts article HTML into Documents.
//
// The zero value builds with the default table width and selectors and
// renders tables.
type Builder struct {
	// Width is the column budget for tables. Values <= 0 use table.DefaultWidth.
	Width int

	// SkipTables drops table lines from the output. Links inside tables are
	// still registered.
	SkipTables bool

	// Selectors locate the content container. Empty means DefaultSelectors.
	Selectors []string
}

// Build extracts the content of src and builds its Document.
//
// If no content container can be located, Build returns a placeholder
// document reading ParseFailureText together with a PARSE_ERROR. The
// returned document is never nil.
func (b Builder) Build(title, src string) (*Document, error) {
	root, err := Extract(src, b.Selectors)
	if err != nil {
		return Placeholder(title, ParseFailureText), err
	}
	return b.BuildNode(title, root), nil
}

// BuildNode builds a Document from the children of an already extracted
// content container.
func (b Builder) BuildNode(title string, root *goquery.Selection) *Document {
	w := &walker{width: b.Width, skipTables: b.SkipTables}
	for _, n := range root.Nodes {
		w.children(n)
	}
	return &Document{
		title:  title,
		blocks: w.blocks,
		links:  w.links.Links(),
		linkAt: w.linkAt,
	}
}

// walker accumulates the blocks and links of a single build.
type walker struct {
	width      int
	skipTables bool

	blocks []Block
	links  LinkIndex
	linkAt []int
}

func (w *walker) emit(b Block) {
	w.blocks = append(w.blocks, b)
}

func (w *walker) children(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.node(c)
	}
}

func (w *walker) node(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		if t := collapse(n.Data); t != "" {
			w.emit(Paragraph{Text: t})
		}
		return
	case html.ElementNode:
	default:
		return
	}

	if level, ok := headingLevels[n.Data]; ok {
		w.heading(n, level)
		return
	}
	switch n.Data {
	case "p":
		w.paragraph(n)
	case "ul", "ol":
		w.list(n)
	case "table":
		w.table(n)
	case "a":
		w.anchor(n)
	default:
		if containers[n.Data] {
			w.children(n)
		}
	}
}

func (w *walker) paragraph(n *html.Node) {
	s := selection(n)
	// A blank paragraph still leaves its divider.
	if text := collapse(s.Text()); text != "" {
		w.emit(Paragraph{Text: text})
	}
	w.emit(Divider{})
	w.descendantLinks(s)
}

func (w *walker) heading(n *html.Node, level int) {
	text := collapse(selection(n).Text())
	w.emit(Divider{})
	w.emit(Heading{Level: level, Text: text})
	w.emit(Divider{})
}

// list emits the direct items first and then every link anywhere in the list.
func (w *walker) list(n *html.Node) {
	s := selection(n)
	s.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
		if text := collapse(li.Text()); text != "" {
			w.emit(ListItem{Text: ListBullet + text})
		}
	})
	w.descendantLinks(s)
}

func (w *walker) table(n *html.Node) {
	if !w.skipTables {
		for _, line := range table.Layout(n, w.width) {
			w.emit(TableLine{Text: line})
		}
	}
	w.descendantLinks(selection(n))
}

func (w *walker) anchor(n *html.Node) {
	s := selection(n)
	href, _ := s.Attr("href")
	w.register(href, s.Text())
}

func (w *walker) descendantLinks(s *goquery.Selection) {
	s.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		w.register(href, a.Text())
	})
}

func (w *walker) register(href, label string) {
	lb, ok := w.links.Register(href, label)
	if !ok {
		return
	}
	w.linkAt = append(w.linkAt, len(w.blocks))
	w.emit(lb)
}

func selection(n *html.Node) *goquery.Selection {
	return goquery.NewDocumentFromNode(n).Selection
}
