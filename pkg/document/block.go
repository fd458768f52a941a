package document

// BlockKind names a block variant. It is used as the "kind" field in JSON.
type BlockKind string

const (
	KindParagraph BlockKind = "paragraph"
	KindHeading   BlockKind = "heading"
	KindListItem  BlockKind = "list_item"
	KindLink      BlockKind = "link"
	KindTableLine BlockKind = "table_line"
	KindDivider   BlockKind = "divider"
)

// MaxHeadingLevel is the deepest heading level a document carries. Deeper
// source headings are clamped to it.
const MaxHeadingLevel = 4

// ListBullet prefixes the text of every list item.
const ListBullet = "  • "

// Block is one renderable unit of a document.
//
// The set of variants is closed: Paragraph, Heading, ListItem, LinkBlock,
// TableLine and Divider.
type Block interface {
	Kind() BlockKind
	block()
}

// Paragraph is a run of body text.
type Paragraph struct {
	Text string
}

// Heading is a section title. Level is in [1, MaxHeadingLevel].
type Heading struct {
	Level int
	Text  string
}

// ListItem is one item of a list, already prefixed with ListBullet.
type ListItem struct {
	Text string
}

// LinkBlock is a navigable internal link. Index is its position in the
// document's link list.
type LinkBlock struct {
	Path  string
	Label string
	Index int
}

// TableLine is one pre-rendered line of a table.
type TableLine struct {
	Text string
}

// Divider separates blocks visually.
type Divider struct{}

func (Paragraph) Kind() BlockKind { return KindParagraph }
func (Heading) Kind() BlockKind   { return KindHeading }
func (ListItem) Kind() BlockKind  { return KindListItem }
func (LinkBlock) Kind() BlockKind { return KindLink }
func (TableLine) Kind() BlockKind { return KindTableLine }
func (Divider) Kind() BlockKind   { return KindDivider }

func (Paragraph) block() {}
func (Heading) block()   {}
func (ListItem) block()  {}
func (LinkBlock) block() {}
func (TableLine) block() {}
func (Divider) block()   {}

// Link returns the link target of the block.
func (b LinkBlock) Link() Link {
	return Link{Path: b.Path, Label: b.Label}
}
