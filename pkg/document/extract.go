package document

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/matzehuels/offwiki/pkg/errors"
)

// DefaultSelectors locate the content container of MediaWiki-style pages.
var DefaultSelectors = []string{"div#mw-content-text"}

// noiseSelector matches nodes removed before building.
const noiseSelector = "script, style, sup"

// Extract parses src and returns its content container with noise nodes
// removed. The first selector with a match wins; without a match the body is
// used. When there is neither a match nor a body with content, Extract fails
// with PARSE_ERROR. An empty selector list means DefaultSelectors.
func Extract(src string, selectors []string) (*goquery.Selection, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "parse html")
	}
	return ExtractDocument(doc, selectors)
}

// ExtractDocument is Extract for an already parsed page. Noise nodes are
// removed from doc itself.
func ExtractDocument(doc *goquery.Document, selectors []string) (*goquery.Selection, error) {
	if len(selectors) == 0 {
		selectors = DefaultSelectors
	}

	var root *goquery.Selection
	for _, s := range selectors {
		if m := doc.Find(s).First(); m.Length() > 0 {
			root = m
			break
		}
	}
	if root == nil {
		// The HTML parser always synthesizes a body; an empty one counts as absent.
		body := doc.Find("body").First()
		if body.Length() == 0 || isBlank(body) {
			return nil, errors.New(errors.ErrCodeParse, "no content container")
		}
		root = body
	}

	root.Find(noiseSelector).Remove()
	return root, nil
}

func isBlank(s *goquery.Selection) bool {
	return s.Children().Length() == 0 && strings.TrimSpace(s.Text()) == ""
}
