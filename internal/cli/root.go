package cli

import (
	"context"
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/offwiki/pkg/nav"
)

// browseOptions holds flags of the root command.
type browseOptions struct {
	logFile    string
	maxResults int
	noTables   bool
}

// runBrowse opens the archive at path in the interactive reader.
func (c *CLI) runBrowse(cmd *cobra.Command, path string, opts browseOptions) error {
	ctx := cmd.Context()

	a, err := openArchive(path)
	if err != nil {
		return err
	}
	defer a.Close()

	info, err := a.Info(ctx)
	if err != nil {
		return fmt.Errorf("read archive info: %w", err)
	}

	logPath := opts.logFile
	if logPath == "" {
		logPath = c.Config.LogFile
	}
	logger, closeLog, err := openLogFile(logPath, c.Logger.GetLevel())
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer closeLog()

	// The reader owns the terminal from here on.
	registerHooks(logger)
	ctx = withLogger(ctx, logger)

	maxResults := c.Config.MaxResults
	if opts.maxResults > 0 {
		maxResults = opts.maxResults
	}
	b := c.builder(0)
	if opts.noTables {
		b.SkipTables = true
	}
	ctrl := nav.New(a,
		nav.WithMaxResults(maxResults),
		nav.WithBuilder(b),
		nav.WithLogger(logger),
	)

	logger.Info("opened archive", "path", path, "articles", info.ArticleCount)
	return runReader(ctx, newBrowseModel(ctx, ctrl, filepath.Base(path), info))
}

func runReader(ctx context.Context, m browseModel) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("reader: %w", err)
	}
	return nil
}
