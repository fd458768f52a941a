package cli

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/offwiki/pkg/archive"
	"github.com/matzehuels/offwiki/pkg/ingest"
	"github.com/matzehuels/offwiki/pkg/observability"
)

// importOptions holds flags of the import command.
type importOptions struct {
	title   string
	main    string
	workers int
}

// importCommand creates the import command.
func (c *CLI) importCommand() *cobra.Command {
	var opts importOptions

	cmd := &cobra.Command{
		Use:   "import <dir> <archive>",
		Short: "Build an archive from a directory of HTML or Markdown files",
		Long: `Import converts every .html, .htm, .md and .markdown file under <dir> into an
article of <archive>, creating the archive if needed. Article paths are the
file paths relative to <dir> without extension, with spaces replaced by
underscores. Re-importing skips articles whose content did not change.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runImport(cmd.Context(), args[0], args[1], opts)
		},
	}

	cmd.Flags().StringVar(&opts.title, "title", "", "archive title (default: directory name)")
	cmd.Flags().StringVar(&opts.main, "main", "", "path of the main article (default: index or Main_Page)")
	cmd.Flags().IntVarP(&opts.workers, "workers", "j", 0, "number of files converted concurrently")

	return cmd
}

func (c *CLI) runImport(ctx context.Context, dir, path string, opts importOptions) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	dst, err := archive.Create(path)
	if err != nil {
		return err
	}
	defer dst.Close()

	workers := c.Config.Import.Workers
	if opts.workers > 0 {
		workers = opts.workers
	}
	main := c.Config.Import.Main
	if opts.main != "" {
		main = opts.main
	}

	files, err := ingest.Discover(dir)
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Converting %d files...", len(files)))
	observability.SetImportHooks(&importProgress{
		ImportHooks: observability.Import(),
		spinner:     spinner,
		total:       len(files),
	})
	spinner.Start()

	res, err := ingest.Import(ctx, dst, dir, ingest.Options{
		Title:     opts.title,
		Main:      main,
		Workers:   workers,
		Selectors: c.Config.ContentSelectors,
	})
	if err != nil {
		spinner.StopWithError("Import failed")
		return err
	}
	spinner.StopWithSuccess(fmt.Sprintf("Imported %s", path))
	printImportStats(res.Files, res.Written, res.Unchanged)
	if res.Main == "" {
		printWarning("No main article; pass --main to set one")
	} else {
		printDetail("Main article: %s", res.Main)
	}
	printNextStep("Browse it", appName+" "+path)

	prog.done(fmt.Sprintf("Imported %d articles", res.Written))
	return nil
}

// importProgress reports converted files on the spinner and forwards events
// to the wrapped hooks.
type importProgress struct {
	observability.ImportHooks
	spinner *Spinner
	total   int
	parsed  atomic.Int64
}

func (p *importProgress) OnFileParsed(ctx context.Context, file string, d time.Duration, err error) {
	n := p.parsed.Add(1)
	p.spinner.SetMessage("Converting files... %d/%d", n, p.total)
	p.ImportHooks.OnFileParsed(ctx, file, d, err)
}
