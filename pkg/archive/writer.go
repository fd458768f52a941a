package archive

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/matzehuels/offwiki/pkg/errors"
)

// Record is an article to be written into an archive. Body is the plain
// text indexed for search.
type Record struct {
	Path  string
	Title string
	HTML  string
	Body  string
}

// Writer adds articles to a SQLite archive inside a single transaction.
// Nothing is visible to readers until Commit.
type Writer struct {
	tx *sql.Tx
}

// NewWriter starts a write transaction.
func (s *SQLite) NewWriter(ctx context.Context) (*Writer, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &Writer{tx: tx}, nil
}

// Put inserts or replaces the article at r.Path and its search entry. It
// reports false without writing when the stored article has the same title
// and content.
func (w *Writer) Put(ctx context.Context, r Record) (bool, error) {
	if err := errors.ValidateArticlePath(r.Path); err != nil {
		return false, err
	}

	hash := hashContent(r.Title, r.HTML)
	var current string
	err := w.tx.QueryRowContext(ctx,
		`SELECT content_hash FROM articles WHERE path = ?`, r.Path,
	).Scan(&current)
	switch {
	case err == sql.ErrNoRows:
	case err != nil:
		return false, err
	case current == hash:
		return false, nil
	}

	_, err = w.tx.ExecContext(ctx, `
		INSERT INTO articles (path, title, content, content_hash)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			title = excluded.title,
			content = excluded.content,
			content_hash = excluded.content_hash
	`, r.Path, r.Title, []byte(r.HTML), hash)
	if err != nil {
		return false, fmt.Errorf("failed to write article %s: %w", r.Path, err)
	}

	if _, err := w.tx.ExecContext(ctx, `DELETE FROM articles_fts WHERE path = ?`, r.Path); err != nil {
		return false, fmt.Errorf("failed to clear index for %s: %w", r.Path, err)
	}
	_, err = w.tx.ExecContext(ctx,
		`INSERT INTO articles_fts (path, title, body) VALUES (?, ?, ?)`,
		r.Path, r.Title, r.Body)
	if err != nil {
		return false, fmt.Errorf("failed to index %s: %w", r.Path, err)
	}
	return true, nil
}

// SetMeta stores an archive metadata value.
func (w *Writer) SetMeta(ctx context.Context, key, value string) error {
	_, err := w.tx.ExecContext(ctx, `
		INSERT INTO meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

// Commit makes all writes visible.
func (w *Writer) Commit() error {
	return w.tx.Commit()
}

// Rollback discards all writes. It is safe to call after Commit.
func (w *Writer) Rollback() error {
	if err := w.tx.Rollback(); err != nil && err != sql.ErrTxDone {
		return err
	}
	return nil
}
