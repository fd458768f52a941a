package document

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/matzehuels/offwiki/pkg/errors"
)

// ParseFailureText is the single line shown for an article whose content
// container could not be located.
const ParseFailureText = "Could not parse article content"

// Document is the navigable form of one article: blocks in reading order
// and the internal links they reference. Documents are built by Builder and
// never change afterwards.
type Document struct {
	title  string
	blocks []Block
	links  []Link
	// linkAt[i] is the block position of link i.
	linkAt []int
}

// Placeholder returns a document holding a single paragraph and no links.
// It stands in for articles that failed to load or parse.
func Placeholder(title, text string) *Document {
	return &Document{
		title:  title,
		blocks: []Block{Paragraph{Text: text}},
	}
}

// Title returns the article title.
func (d *Document) Title() string { return d.title }

// Len returns the number of blocks.
func (d *Document) Len() int { return len(d.blocks) }

// Block returns the block at position i.
func (d *Document) Block(i int) Block { return d.blocks[i] }

// Blocks returns a copy of the blocks in reading order.
func (d *Document) Blocks() []Block { return slices.Clone(d.blocks) }

// LinkCount returns the number of internal links.
func (d *Document) LinkCount() int { return len(d.links) }

// Links returns a copy of the links in index order.
func (d *Document) Links() []Link { return slices.Clone(d.links) }

// Link returns link i, or false if i is out of range.
func (d *Document) Link(i int) (Link, bool) {
	if i < 0 || i >= len(d.links) {
		return Link{}, false
	}
	return d.links[i], true
}

// BlockOfLink returns the block position of link i, or -1 if i is out of
// range.
func (d *Document) BlockOfLink(i int) int {
	if i < 0 || i >= len(d.linkAt) {
		return -1
	}
	return d.linkAt[i]
}

// Validate checks that the LinkBlocks and the link list agree: the LinkBlock
// indices, in block order, are exactly 0, 1, ..., n-1 where n is the number of
// links, and every LinkBlock carries the path and label of its link.
func (d *Document) Validate() error {
	next := 0
	for pos, b := range d.blocks {
		lb, ok := b.(LinkBlock)
		if !ok {
			continue
		}
		if lb.Index != next {
			return errors.New(errors.ErrCodeInternal,
				"block %d: link index %d out of order, want %d", pos, lb.Index, next)
		}
		if next >= len(d.links) {
			return errors.New(errors.ErrCodeInternal,
				"block %d: link index %d beyond %d links", pos, lb.Index, len(d.links))
		}
		if lb.Link() != d.links[next] {
			return errors.New(errors.ErrCodeInternal,
				"block %d: link %d is %+v, registry holds %+v", pos, lb.Index, lb.Link(), d.links[next])
		}
		next++
	}
	if next != len(d.links) {
		return errors.New(errors.ErrCodeInternal,
			"%d link blocks for %d links", next, len(d.links))
	}
	return nil
}

// =============================================================================
// JSON
// =============================================================================

type blockJSON struct {
	Kind  BlockKind `json:"kind"`
	Text  string    `json:"text,omitempty"`
	Level int       `json:"level,omitempty"`
	Path  string    `json:"path,omitempty"`
	Label string    `json:"label,omitempty"`
	Index *int      `json:"index,omitempty"`
}

type documentJSON struct {
	Title  string      `json:"title"`
	Blocks []blockJSON `json:"blocks"`
	Links  []Link      `json:"links"`
}

// MarshalJSON encodes the document as {"title", "blocks", "links"} with every
// block tagged by its kind.
func (d *Document) MarshalJSON() ([]byte, error) {
	out := documentJSON{
		Title:  d.title,
		Blocks: make([]blockJSON, 0, len(d.blocks)),
		Links:  d.links,
	}
	if out.Links == nil {
		out.Links = []Link{}
	}
	for _, b := range d.blocks {
		out.Blocks = append(out.Blocks, encodeBlock(b))
	}
	return json.Marshal(out)
}

func encodeBlock(b Block) blockJSON {
	j := blockJSON{Kind: b.Kind()}
	switch b := b.(type) {
	case Paragraph:
		j.Text = b.Text
	case Heading:
		j.Text, j.Level = b.Text, b.Level
	case ListItem:
		j.Text = b.Text
	case LinkBlock:
		idx := b.Index
		j.Path, j.Label, j.Index = b.Path, b.Label, &idx
	case TableLine:
		j.Text = b.Text
	case Divider:
	default:
		panic(fmt.Sprintf("document: unknown block %T", b))
	}
	return j
}
