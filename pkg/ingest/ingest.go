package ingest

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/offwiki/pkg/archive"
	"github.com/matzehuels/offwiki/pkg/errors"
	"github.com/matzehuels/offwiki/pkg/observability"
)

// Main entry candidates, in order of preference, when Options.Main is empty.
var defaultMains = []string{"index", "Main_Page"}

// Options configures an import.
type Options struct {
	// Title sets the archive title. Empty keeps the current title, or uses
	// the root directory name for a new archive.
	Title string

	// Main sets the main article path. Empty picks the first of "index" and
	// "Main_Page" that was imported.
	Main string

	// Workers bounds the number of files converted concurrently.
	// Zero means runtime.NumCPU().
	Workers int

	// Selectors locate the content container indexed for search.
	Selectors []string
}

// Result summarizes an import.
type Result struct {
	Files     int
	Written   int
	Unchanged int
	Main      string
	Duration  time.Duration
}

// Import converts every supported file under root and writes it to dst in a
// single transaction.
func Import(ctx context.Context, dst *archive.SQLite, root string, opts Options) (res *Result, err error) {
	start := time.Now()
	res = &Result{}
	defer func() {
		res.Duration = time.Since(start)
		observability.Import().OnImportComplete(ctx, res.Written, res.Unchanged, res.Duration, err)
	}()

	files, err := Discover(root)
	if err != nil {
		return res, err
	}
	if len(files) == 0 {
		return res, errors.New(errors.ErrCodeInvalidInput, "no html or markdown files under %s", root)
	}
	res.Files = len(files)

	pages, err := convertAll(ctx, root, files, opts)
	if err != nil {
		return res, err
	}

	main, err := pickMain(pages, opts.Main)
	if err != nil {
		return res, err
	}
	res.Main = main

	// The writer holds the only connection, so reads happen before it opens.
	title, err := archiveTitle(ctx, dst, root, opts.Title)
	if err != nil {
		return res, err
	}

	w, err := dst.NewWriter(ctx)
	if err != nil {
		return res, err
	}
	defer w.Rollback()

	for _, p := range pages {
		written, err := w.Put(ctx, archive.Record{Path: p.Path, Title: p.Title, HTML: p.HTML, Body: p.Body})
		if err != nil {
			return res, err
		}
		if written {
			res.Written++
		} else {
			res.Unchanged++
		}
	}

	if err := setMeta(ctx, w, title, main); err != nil {
		return res, err
	}
	if err := w.Commit(); err != nil {
		return res, fmt.Errorf("failed to commit import: %w", err)
	}
	return res, nil
}

// Discover returns the slash-separated paths, relative to root, of all
// supported files below root in lexical order.
func Discover(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "import source %s", root)
	}
	if !info.IsDir() {
		return nil, errors.New(errors.ErrCodeInvalidInput, "import source %s is not a directory", root)
	}

	var files []string
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p != root && skipEntry(d) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() && Supported(d.Name()) {
			rel, err := filepath.Rel(root, p)
			if err != nil {
				return err
			}
			files = append(files, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}
	slices.Sort(files)
	return files, nil
}

func convertAll(ctx context.Context, root string, files []string, opts Options) ([]*Page, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	pages := make([]*Page, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, rel := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			p, err := convertFile(root, rel, opts.Selectors)
			observability.Import().OnFileParsed(gctx, rel, time.Since(start), err)
			if err != nil {
				return err
			}
			pages[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]string, len(pages))
	for i, p := range pages {
		if prev, ok := seen[p.Path]; ok {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"%s and %s both map to article %s", prev, files[i], p.Path)
		}
		seen[p.Path] = files[i]
	}
	return pages, nil
}

func convertFile(root, rel string, selectors []string) (*Page, error) {
	src, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", rel, err)
	}
	return Convert(rel, src, selectors)
}

func pickMain(pages []*Page, main string) (string, error) {
	has := func(path string) bool {
		return slices.ContainsFunc(pages, func(p *Page) bool { return p.Path == path })
	}
	if main != "" {
		if !has(main) {
			return "", errors.New(errors.ErrCodeInvalidInput, "main article %s is not among the imported files", main)
		}
		return main, nil
	}
	for _, m := range defaultMains {
		if has(m) {
			return m, nil
		}
	}
	return "", nil
}

// archiveTitle returns the title to store, or "" to keep the current one.
func archiveTitle(ctx context.Context, dst *archive.SQLite, root, title string) (string, error) {
	if title != "" {
		return title, nil
	}
	current, err := dst.Info(ctx)
	if err != nil {
		return "", err
	}
	if current.Title != "" {
		return "", nil
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	return filepath.Base(abs), nil
}

func setMeta(ctx context.Context, w *archive.Writer, title, main string) error {
	if title != "" {
		if err := w.SetMeta(ctx, archive.MetaTitle, title); err != nil {
			return err
		}
	}
	if main != "" {
		if err := w.SetMeta(ctx, archive.MetaMainPath, main); err != nil {
			return err
		}
	}
	return nil
}
