// Package pkg provides the core libraries of offwiki, a terminal reader for
// offline wiki archives.
//
// # Overview
//
// offwiki turns article HTML into line-oriented documents that a terminal
// can show: wrapped paragraphs, marked headings, bulleted list items,
// numbered navigable links and box-drawn tables. The pkg directory is
// organized into these areas:
//
//  1. [archive] - Article storage (SQLite with FTS5, in-memory)
//  2. [document] - Content extraction, link indexing and document building
//  3. [table] - Table layout with box-drawing characters
//  4. [nav] - The reader's navigation state machine
//  5. [ingest] - Building archives from HTML and Markdown files
//
// # Architecture
//
// The data flow of the reader:
//
//	Archive (search, fetch by path)
//	         ↓
//	    [document] Extract (content container, noise removal)
//	         ↓
//	    [document] Builder (blocks + LinkIndex, [table] for tables)
//	         ↓
//	    [nav] Controller (modes, focus, history)
//	         ↓
//	    terminal view (internal/cli)
//
// # Quick Start
//
// Open an archive and follow the first link of its main article:
//
//	a, _ := archive.Open("wiki.db")
//	defer a.Close()
//
//	c := nav.New(a, nav.WithMaxResults(20))
//	c.SetWidth(100)
//	c.Home(ctx)
//	c.FocusNext()
//	c.Follow(ctx)
//	fmt.Println(c.Document().Title())
//
// Build a document directly:
//
//	doc, err := document.Builder{Width: 78}.Build("Title", html)
//
// # Supporting Packages
//
// [config] - TOML configuration (result limits, table rendering, content
// selectors, import and serve settings).
//
// [errors] - Structured error codes shared by the reader, the commands and
// the HTTP API.
//
// [observability] - Hooks for navigation, import and HTTP events.
//
// [buildinfo] - Version information set at build time.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/document/...  # Specific package
//	go test -run Example        # Examples only
//
// [archive]: https://pkg.go.dev/github.com/matzehuels/offwiki/pkg/archive
// [document]: https://pkg.go.dev/github.com/matzehuels/offwiki/pkg/document
// [table]: https://pkg.go.dev/github.com/matzehuels/offwiki/pkg/table
// [nav]: https://pkg.go.dev/github.com/matzehuels/offwiki/pkg/nav
// [ingest]: https://pkg.go.dev/github.com/matzehuels/offwiki/pkg/ingest
// [config]: https://pkg.go.dev/github.com/matzehuels/offwiki/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/offwiki/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/offwiki/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/offwiki/pkg/buildinfo
package pkg
