package archive

import (
	"context"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/matzehuels/offwiki/pkg/errors"
)

// Compile-time interface verification.
var _ Archive = (*SQLite)(nil)

// Metadata keys stored in the meta table.
const (
	MetaTitle     = "title"
	MetaUUID      = "uuid"
	MetaMainPath  = "main_path"
	MetaCreatedAt = "created_at"
)

// memoryPath opens a private in-memory database.
const memoryPath = ":memory:"

// SQLite is an archive stored in a single SQLite database with an FTS5
// full-text index.
type SQLite struct {
	db   *sql.DB
	path string
}

// Open opens an existing archive for reading. A missing file or a database
// without the archive schema fails with ARCHIVE_OPEN.
func Open(path string) (*SQLite, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrap(errors.ErrCodeArchiveOpen, err, "open archive %s", path)
	}
	s, err := connect(path, false)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeArchiveOpen, err, "open archive %s", path)
	}

	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM meta WHERE key = ?`, MetaUUID).Scan(&n); err != nil || n == 0 {
		s.Close()
		if err == nil {
			err = fmt.Errorf("missing archive identity")
		}
		return nil, errors.Wrap(errors.ErrCodeArchiveOpen, err, "%s is not an offwiki archive", path)
	}
	return s, nil
}

// Create opens the archive at path for writing, creating the file and schema
// if needed. A new archive is given a random UUID and a creation time. Use
// ":memory:" for a throwaway in-memory archive.
func Create(path string) (*SQLite, error) {
	s, err := connect(path, true)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeArchiveOpen, err, "create archive %s", path)
	}
	if err := s.createSchema(); err != nil {
		s.Close()
		return nil, errors.Wrap(errors.ErrCodeArchiveOpen, err, "create schema")
	}

	_, err = s.db.Exec(`INSERT OR IGNORE INTO meta (key, value) VALUES (?, ?), (?, ?)`,
		MetaUUID, uuid.NewString(),
		MetaCreatedAt, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		s.Close()
		return nil, errors.Wrap(errors.ErrCodeArchiveOpen, err, "initialize metadata")
	}
	return s, nil
}

// connect opens the database. Only writers switch the file to WAL; readers
// must not modify it.
func connect(path string, writable bool) (*SQLite, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	pragmas := []string{"PRAGMA busy_timeout = 5000"}
	if writable && path != memoryPath {
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL")
	}
	for _, p := range pragmas {
		if _, err := conn.Exec(p); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", p, err)
		}
	}

	return &SQLite{db: conn, path: path}, nil
}

func (s *SQLite) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS articles (
			path TEXT PRIMARY KEY,
			title TEXT NOT NULL DEFAULT '',
			content BLOB,
			content_hash TEXT NOT NULL DEFAULT ''
		);

		CREATE VIRTUAL TABLE IF NOT EXISTS articles_fts USING fts5(
			path UNINDEXED,
			title,
			body,
			tokenize = 'unicode61 remove_diacritics 2'
		);

		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Search runs an FTS5 query built from the words of text. Every word must
// match, as a prefix, in the title or body; title matches rank higher.
func (s *SQLite) Search(ctx context.Context, text string, limit int) ([]string, error) {
	query := ftsQuery(text)
	if query == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT path FROM articles_fts
		WHERE articles_fts MATCH ?
		ORDER BY bm25(articles_fts, 0.0, 10.0, 1.0)
		LIMIT ?
	`, query, limit)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidQuery, err, "search %q", text)
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}

// ftsQuery quotes each word of text as an FTS5 prefix string so user input
// is never parsed as query syntax.
func ftsQuery(text string) string {
	words := strings.Fields(text)
	terms := make([]string, 0, len(words))
	for _, w := range words {
		terms = append(terms, `"`+strings.ReplaceAll(w, `"`, `""`)+`"*`)
	}
	return strings.Join(terms, " ")
}

// Article returns the article stored under path.
func (s *SQLite) Article(ctx context.Context, path string) (*Article, error) {
	var (
		title   string
		content []byte
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT title, content FROM articles WHERE path = ?`, path,
	).Scan(&title, &content)
	if err == sql.ErrNoRows {
		return nil, notFound(path)
	}
	if err != nil {
		return nil, err
	}
	return decodeArticle(path, title, content)
}

// RandomPath returns a uniformly chosen article path.
func (s *SQLite) RandomPath(ctx context.Context) (string, error) {
	var path string
	err := s.db.QueryRowContext(ctx,
		`SELECT path FROM articles ORDER BY random() LIMIT 1`,
	).Scan(&path)
	if err == sql.ErrNoRows {
		return "", errors.New(errors.ErrCodeNotFound, "archive is empty")
	}
	return path, err
}

// Info reads the archive metadata and counts its articles.
func (s *SQLite) Info(ctx context.Context) (*Info, error) {
	meta, err := s.meta(ctx)
	if err != nil {
		return nil, err
	}

	info := &Info{
		Title:    meta[MetaTitle],
		UUID:     meta[MetaUUID],
		MainPath: meta[MetaMainPath],
	}
	if t, err := time.Parse(time.RFC3339, meta[MetaCreatedAt]); err == nil {
		info.CreatedAt = t
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM articles`).Scan(&info.ArticleCount); err != nil {
		return nil, err
	}
	if info.MainPath != "" {
		err := s.db.QueryRowContext(ctx,
			`SELECT title FROM articles WHERE path = ?`, info.MainPath,
		).Scan(&info.MainTitle)
		if err != nil && err != sql.ErrNoRows {
			return nil, err
		}
	}
	if s.path != memoryPath {
		if fi, err := os.Stat(s.path); err == nil {
			info.FileSize = fi.Size()
		}
	}
	return info, nil
}

func (s *SQLite) meta(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM meta`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	meta := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		meta[k] = v
	}
	return meta, rows.Err()
}

// hashContent computes the xxHash of an article and returns it as hex.
func hashContent(title, html string) string {
	d := xxhash.New()
	d.WriteString(title)
	d.WriteString("\x00")
	d.WriteString(html)
	return hex.EncodeToString(d.Sum(nil))
}
