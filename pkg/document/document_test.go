package document

import (
	"encoding/json"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		doc     *Document
		wantErr bool
	}{
		{
			name: "empty",
			doc:  &Document{},
		},
		{
			name: "consistent",
			doc: &Document{
				blocks: []Block{
					Paragraph{Text: "x"},
					LinkBlock{Path: "A", Label: "a", Index: 0},
					LinkBlock{Path: "B", Label: "b", Index: 1},
				},
				links: []Link{{"A", "a"}, {"B", "b"}},
			},
		},
		{
			name: "out of order",
			doc: &Document{
				blocks: []Block{
					LinkBlock{Path: "B", Label: "b", Index: 1},
					LinkBlock{Path: "A", Label: "a", Index: 0},
				},
				links: []Link{{"A", "a"}, {"B", "b"}},
			},
			wantErr: true,
		},
		{
			name: "missing link block",
			doc: &Document{
				blocks: []Block{LinkBlock{Path: "A", Label: "a", Index: 0}},
				links:  []Link{{"A", "a"}, {"B", "b"}},
			},
			wantErr: true,
		},
		{
			name: "index beyond registry",
			doc: &Document{
				blocks: []Block{LinkBlock{Path: "A", Label: "a", Index: 0}},
			},
			wantErr: true,
		},
		{
			name: "block disagrees with registry",
			doc: &Document{
				blocks: []Block{LinkBlock{Path: "A", Label: "a", Index: 0}},
				links:  []Link{{"Z", "a"}},
			},
			wantErr: true,
		},
		{
			name: "duplicate index",
			doc: &Document{
				blocks: []Block{
					LinkBlock{Path: "A", Label: "a", Index: 0},
					LinkBlock{Path: "A", Label: "a", Index: 0},
				},
				links: []Link{{"A", "a"}, {"A", "a"}},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.doc.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPlaceholder(t *testing.T) {
	doc := Placeholder("Go", "Error: not found Go")
	if doc.Title() != "Go" {
		t.Errorf("Title() = %q, want %q", doc.Title(), "Go")
	}
	if doc.Len() != 1 || doc.LinkCount() != 0 {
		t.Fatalf("Len() = %d, LinkCount() = %d, want 1, 0", doc.Len(), doc.LinkCount())
	}
	if p, ok := doc.Block(0).(Paragraph); !ok || p.Text != "Error: not found Go" {
		t.Errorf("Block(0) = %#v", doc.Block(0))
	}
	if _, ok := doc.Link(0); ok {
		t.Error("Link(0) ok on a placeholder")
	}
	if doc.BlockOfLink(0) != -1 {
		t.Errorf("BlockOfLink(0) = %d, want -1", doc.BlockOfLink(0))
	}
	if err := doc.Validate(); err != nil {
		t.Errorf("Validate() error: %v", err)
	}
}

func TestBlocksIsCopy(t *testing.T) {
	doc := Placeholder("t", "original")
	blocks := doc.Blocks()
	blocks[0] = Divider{}
	if _, ok := doc.Block(0).(Paragraph); !ok {
		t.Error("mutating Blocks() result changed the document")
	}
}

func TestMarshalJSON(t *testing.T) {
	doc := &Document{
		title: "Go",
		blocks: []Block{
			Heading{Level: 2, Text: "History"},
			Divider{},
			LinkBlock{Path: "C", Label: "C language", Index: 0},
		},
		links:  []Link{{"C", "C language"}},
		linkAt: []int{2},
	}

	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	want := `{"title":"Go","blocks":[` +
		`{"kind":"heading","text":"History","level":2},` +
		`{"kind":"divider"},` +
		`{"kind":"link","path":"C","label":"C language","index":0}` +
		`],"links":[{"path":"C","label":"C language"}]}`
	if string(data) != want {
		t.Errorf("Marshal() =\n%s\nwant\n%s", data, want)
	}
}

func TestMarshalJSONEmptyLinks(t *testing.T) {
	data, err := json.Marshal(Placeholder("x", "y"))
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	want := `{"title":"x","blocks":[{"kind":"paragraph","text":"y"}],"links":[]}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}
}
