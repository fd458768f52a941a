// Package ingest builds an archive from a directory of HTML and Markdown
// files.
//
// # Sources
//
// Every regular file below the import root with a supported extension
// becomes one article:
//
//   - .html and .htm files are stored as they are
//   - .md and .markdown files are converted to HTML with goldmark (with
//     GitHub-style tables), wrapped in a MediaWiki-style content container
//
// Hidden files and directories are skipped.
//
// # Paths and titles
//
// An article's path is its slash-separated path relative to the root,
// without extension, with spaces replaced by underscores:
//
//	docs/Getting Started.md  ->  docs/Getting_Started
//
// The title is the page's <title>, else its first <h1>, else the file name.
//
// Relative links between imported files are rewritten to "/wiki/<path>" so
// that they resolve to article paths when followed. External links are left
// untouched.
//
// # Concurrency
//
// Files are read and converted by a bounded pool of workers
// (golang.org/x/sync/errgroup). All writes go through a single
// [archive.Writer] transaction, so an import is all or nothing.
package ingest
