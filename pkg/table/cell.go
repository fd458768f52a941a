package table

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// MaxSpan is the largest colspan or rowspan honoured; larger values are clamped.
const MaxSpan = 5

// Cell is a single source cell of a table row.
type Cell struct {
	Text    string
	Colspan int
	Rowspan int
}

// NewCell returns a cell with whitespace-collapsed text and clamped spans.
func NewCell(text string, colspan, rowspan int) Cell {
	return Cell{
		Text:    collapse(text),
		Colspan: clampSpan(colspan),
		Rowspan: clampSpan(rowspan),
	}
}

// Extract reads the rows of a table node. Rows are the tr elements directly
// under the table or under its thead, tbody and tfoot sections; rows of
// nested tables belong to those tables and are not returned. Both td and th
// cells are read.
func Extract(n *html.Node) [][]Cell {
	var rows [][]Cell
	for _, tr := range tableRows(n) {
		var row []Cell
		for c := tr.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode || (c.Data != "td" && c.Data != "th") {
				continue
			}
			row = append(row, NewCell(
				cellText(c),
				parseSpan(attr(c, "colspan")),
				parseSpan(attr(c, "rowspan")),
			))
		}
		rows = append(rows, row)
	}
	return rows
}

func tableRows(n *html.Node) []*html.Node {
	var rows []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "tr":
			rows = append(rows, c)
		case "thead", "tbody", "tfoot":
			for r := c.FirstChild; r != nil; r = r.NextSibling {
				if r.Type == html.ElementNode && r.Data == "tr" {
					rows = append(rows, r)
				}
			}
		}
	}
	return rows
}

// cellText joins the cell's text nodes with single spaces.
func cellText(n *html.Node) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(parts, " ")
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// parseSpan reads a span attribute; missing or malformed values count as 1.
func parseSpan(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 1
	}
	return v
}

func clampSpan(v int) int {
	return min(max(v, 1), MaxSpan)
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
