package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/matzehuels/offwiki/pkg/document"
	"github.com/matzehuels/offwiki/pkg/errors"
)

// defaultShowWidth is used when stdout is not a terminal.
const defaultShowWidth = 80

// showOptions holds flags of the show command.
type showOptions struct {
	width    int
	noTables bool
	links    bool
}

// showCommand creates the show command.
func (c *CLI) showCommand() *cobra.Command {
	var opts showOptions

	cmd := &cobra.Command{
		Use:   "show <archive> <path>",
		Short: "Render an article as plain text",
		Long: `Show renders one article the way the reader does, without colors, and
prints it to stdout. The path may be given with or without a leading "/wiki/".`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.width <= 0 {
				opts.width = terminalWidth()
			}
			return c.runShow(cmd.Context(), args[0], args[1], opts)
		},
	}

	cmd.Flags().IntVarP(&opts.width, "width", "w", 0, "line width (default: terminal width)")
	cmd.Flags().BoolVar(&opts.noTables, "no-tables", false, "omit tables")
	cmd.Flags().BoolVar(&opts.links, "links", false, "list the article's links after the text")
	return cmd
}

func (c *CLI) runShow(ctx context.Context, archivePath, articlePath string, opts showOptions) error {
	path := document.NormalizePath(articlePath)
	if err := errors.ValidateArticlePath(path); err != nil {
		return err
	}

	a, err := openArchive(archivePath)
	if err != nil {
		return err
	}
	defer a.Close()

	art, err := a.Article(ctx, path)
	if err != nil {
		return err
	}

	// Two columns are reserved as in the reader.
	width := max(opts.width-2, 1)
	b := c.builder(width)
	if opts.noTables {
		b.SkipTables = true
	}
	doc, err := b.Build(art.Title, art.HTML)
	if err != nil {
		return err
	}

	p := layoutPage(doc, width, -1, plainStyles)
	fmt.Fprintln(out, strings.Join(p.lines, "\n"))

	if opts.links {
		fmt.Fprintln(out)
		for i, l := range doc.Links() {
			fmt.Fprintf(out, "%3d. %s\n", i+1, l.Path)
		}
	}
	return nil
}

// terminalWidth returns the width of stdout, or defaultShowWidth.
func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return defaultShowWidth
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return defaultShowWidth
	}
	return w
}
