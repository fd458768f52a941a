// Package document converts archive HTML into navigable terminal documents.
//
// # Overview
//
// An article arrives as raw HTML. [Extract] locates the content container
// (by default div#mw-content-text, falling back to body) and strips noise
// nodes (script, style, sup). [Builder] then walks the container depth-first
// and produces a [Document]: an ordered list of typed [Block] values plus the
// ordered list of internal [Link] targets found along the way.
//
//	b := document.Builder{Width: 78}
//	doc, err := b.Build("Go (programming language)", html)
//	if err != nil {
//	    // doc is a one-line placeholder; err carries PARSE_ERROR
//	}
//	for _, blk := range doc.Blocks() {
//	    switch blk := blk.(type) {
//	    case document.Heading:
//	        fmt.Println(strings.Repeat("#", 2*blk.Level), blk.Text)
//	    case document.LinkBlock:
//	        fmt.Printf("→ [%s]\n", blk.Label)
//	    }
//	}
//
// # Blocks
//
// [Block] is a closed set of variants: [Paragraph], [Heading], [ListItem],
// [LinkBlock], [TableLine] and [Divider]. Only this package can add
// variants, so a type switch over the six cases is exhaustive.
//
// # Links
//
// Every internal anchor with a non-empty label is registered in a
// [LinkIndex] and surfaces as a [LinkBlock] at the point of registration.
// Indices are dense and follow traversal order, which is the order a reader
// cycles through links. External references (http://, https://, //, #,
// mailto:) are never registered. Internal targets are normalized by
// [NormalizePath]:
//
//	document.NormalizePath("/wiki/Some%20Article#Section") // "Some_Article"
//
// [Document.Validate] checks the link invariant: the LinkBlock indices are
// exactly 0..n-1, each once, in increasing order, and each matches its Link.
//
// # Tables
//
// Tables are laid out by package table at the builder's width and emitted as
// one [TableLine] per output line. With [Builder.SkipTables] set the lines are
// dropped but the table's links are still registered.
//
// # Concurrency
//
// A Builder holds only configuration and may be shared; every Build call uses
// its own accumulator. A Document is immutable after Build returns, and its
// accessors return copies.
package document
