// Package cli implements the offwiki command-line interface.
package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/offwiki/pkg/archive"
	"github.com/matzehuels/offwiki/pkg/buildinfo"
	"github.com/matzehuels/offwiki/pkg/config"
	"github.com/matzehuels/offwiki/pkg/document"
	"github.com/matzehuels/offwiki/pkg/errors"
	"github.com/matzehuels/offwiki/pkg/observability"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "offwiki"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded before any command runs.
	Config config.Config

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
// Run without a subcommand it opens the interactive reader.
func (c *CLI) RootCommand() *cobra.Command {
	var opts browseOptions

	root := &cobra.Command{
		Use:   "offwiki <archive>",
		Short: "offwiki reads offline wiki archives in the terminal",
		Long: `offwiki is a terminal reader for offline wiki archives. It searches the
archive's full-text index, renders articles as wrapped text with box-drawn
tables, and lets you follow links between articles with the keyboard.

Build an archive from a directory of HTML or Markdown files with
"offwiki import", then open it with "offwiki <archive>".`,
		Version:           buildinfo.Get().Version,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeArchive,
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Usage()
				return errors.New(errors.ErrCodeInvalidInput, "missing archive path")
			}
			return c.runBrowse(cmd, args[0], opts)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/offwiki/config.toml)")
	root.Flags().StringVar(&opts.logFile, "log-file", "", "write logs to this file while the reader runs")
	root.Flags().IntVarP(&opts.maxResults, "max-results", "n", 0, "maximum number of search results")
	root.Flags().BoolVar(&opts.noTables, "no-tables", false, "omit tables from articles")

	root.AddCommand(c.importCommand())
	root.AddCommand(c.searchCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.infoCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the configuration, attaches the logger to the command context
// and registers logging observability hooks.
func (c *CLI) setup(cmd *cobra.Command) error {
	cfg, err := c.loadConfig()
	switch {
	case err == nil:
	case stderrors.Is(err, fs.ErrNotExist) && underConfig(cmd):
		// "config init" creates the file --config names.
		cfg = config.Default()
	default:
		return err
	}
	c.Config = cfg

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, c.Logger))
	registerHooks(c.Logger)
	return nil
}

func (c *CLI) loadConfig() (config.Config, error) {
	if c.configPath == "" {
		cfg, err := config.Load()
		if err != nil {
			return config.Config{}, fmt.Errorf("load config: %w", err)
		}
		return cfg, nil
	}
	cfg, err := config.LoadFile(c.configPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config %s: %w", c.configPath, err)
	}
	return cfg, nil
}

// underConfig reports whether cmd is the config command or one of its
// subcommands.
func underConfig(cmd *cobra.Command) bool {
	for ; cmd != nil; cmd = cmd.Parent() {
		if cmd.Name() == "config" {
			return true
		}
	}
	return false
}

// registerHooks routes observability events to the logger.
func registerHooks(l *log.Logger) {
	h := &logHooks{logger: l}
	observability.SetNavigationHooks(h)
	observability.SetImportHooks(h)
	observability.SetHTTPHooks(h)
}

// =============================================================================
// Shared Helpers
// =============================================================================

// openArchive opens an existing archive for reading.
func openArchive(path string) (*archive.SQLite, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	return archive.Open(abs)
}

// builder returns a document builder configured from c.Config.
func (c *CLI) builder(width int) document.Builder {
	return document.Builder{
		Width:      width,
		SkipTables: !c.Config.RenderTables,
		Selectors:  c.Config.ContentSelectors,
	}
}
