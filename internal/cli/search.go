package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/offwiki/pkg/archive"
	"github.com/matzehuels/offwiki/pkg/errors"
)

// searchCommand creates the search command.
func (c *CLI) searchCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <archive> <query>...",
		Short: "Search an archive and print ranked results",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				limit = c.Config.MaxResults
			}
			return runSearch(cmd.Context(), args[0], strings.Join(args[1:], " "), limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of results (default from config)")
	return cmd
}

func runSearch(ctx context.Context, path, query string, limit int) error {
	if err := errors.ValidateQuery(strings.TrimSpace(query)); err != nil {
		return err
	}

	a, err := openArchive(path)
	if err != nil {
		return err
	}
	defer a.Close()

	results, err := a.Search(ctx, query, limit)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}
	if len(results) == 0 {
		printInfo("No results for %s", StyleHighlight.Render(query))
		return nil
	}

	fmt.Fprintln(out, renderResults(ctx, a, results))
	printDetail("%d results for '%s'", len(results), query)
	return nil
}

// renderResults renders ranked results with their titles as a table.
func renderResults(ctx context.Context, a archive.Archive, results []string) string {
	rows := make([][]string, len(results))
	for i, p := range results {
		title := ""
		if art, err := a.Article(ctx, p); err == nil {
			title = art.Title
		}
		rows[i] = []string{strconv.Itoa(i + 1), p, title}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Path", "Title").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return headerStyle.Padding(0, 1)
			case col == 0:
				return base.Inherit(StyleNumber)
			case col == 1:
				return base.Inherit(StyleLink)
			}
			return base
		})
	return t.Render()
}
