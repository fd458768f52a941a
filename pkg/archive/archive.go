// Package archive provides read access to offline article archives.
//
// An [Archive] answers full-text searches with ranked article paths, returns
// the HTML of an article by path, and picks random articles. Two
// implementations are provided:
//
//   - [SQLite]: a single-file archive with an FTS5 index, built by
//     package ingest through a [Writer].
//   - [Memory]: an in-process archive for tests and examples.
//
// Lookups fail with codes from package errors: NOT_FOUND for a missing
// path and DECODE_ERROR for content that is not valid UTF-8. Failing to open
// an archive yields ARCHIVE_OPEN.
package archive

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/matzehuels/offwiki/pkg/errors"
)

// DefaultSearchLimit is used when a search is issued with a non-positive limit.
const DefaultSearchLimit = 20

// Archive is a read-only article store.
type Archive interface {
	// Search returns up to limit article paths ranked by relevance. A blank
	// query yields no results.
	Search(ctx context.Context, text string, limit int) ([]string, error)

	// Article returns the article stored under path.
	Article(ctx context.Context, path string) (*Article, error)

	// RandomPath returns the path of a randomly chosen article.
	RandomPath(ctx context.Context) (string, error)

	// Info describes the archive.
	Info(ctx context.Context) (*Info, error)

	Close() error
}

// Article is a stored article.
type Article struct {
	Path  string `json:"path"`
	Title string `json:"title"`
	HTML  string `json:"html"`
}

// Info describes an archive for the welcome screen and the info command.
type Info struct {
	Title        string    `json:"title"`
	UUID         string    `json:"uuid"`
	MainPath     string    `json:"main_path,omitempty"`
	MainTitle    string    `json:"main_title,omitempty"`
	ArticleCount int       `json:"article_count"`
	FileSize     int64     `json:"file_size"`
	CreatedAt    time.Time `json:"created_at"`
}

// decodeArticle validates raw content and returns it as an Article.
func decodeArticle(path, title string, content []byte) (*Article, error) {
	if !utf8.Valid(content) {
		return nil, errors.New(errors.ErrCodeDecode, "article %s is not valid UTF-8", path)
	}
	return &Article{Path: path, Title: title, HTML: string(content)}, nil
}

func notFound(path string) error {
	return errors.New(errors.ErrCodeNotFound, "article not found: %s", path)
}
