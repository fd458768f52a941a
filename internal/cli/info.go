package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// infoCommand creates the info command.
func (c *CLI) infoCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:               "info <archive>",
		Short:             "Print archive metadata",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeArchive,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(cmd.Context(), args[0], asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print metadata as JSON")
	return cmd
}

func runInfo(ctx context.Context, path string, asJSON bool) error {
	a, err := openArchive(path)
	if err != nil {
		return err
	}
	defer a.Close()

	info, err := a.Info(ctx)
	if err != nil {
		return fmt.Errorf("read archive info: %w", err)
	}

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}

	main := info.MainPath
	if info.MainTitle != "" && info.MainTitle != info.MainPath {
		main = fmt.Sprintf("%s (%s)", info.MainTitle, info.MainPath)
	}
	if main == "" {
		main = "(none)"
	}

	fmt.Fprintln(out, StyleTitle.Render(info.Title))
	printKeyValue("UUID", info.UUID)
	printKeyValue("File Size", formatSize(info.FileSize))
	printKeyValue("Main Entry", main)
	printKeyValue("Articles", StyleNumber.Render(strconv.Itoa(info.ArticleCount)))
	printKeyValue("Created", formatRelativeTime(info.CreatedAt))
	return nil
}
