package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"photosort/internal/dateresolve"
	"photosort/internal/media"
)

func newResolveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve FILE...",
		Short: "Show the capture date and target folder of files without moving them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.logger()
			if err != nil {
				return err
			}
			resolver := dateresolve.NewResolver(logger)

			columns := []column{
				textCol("File"), textCol("Type"), textCol("Date"),
				textCol("Folder"), textCol("Source"), textCol("Metadata"),
			}
			rows := make([][]string, 0, len(args))
			var failed int
			for _, arg := range args {
				file, err := media.NewFile(arg)
				if err != nil {
					return fmt.Errorf("resolve path %q: %w", arg, err)
				}
				if file.Category == media.Unsupported {
					rows = append(rows, []string{file.Path, "unsupported", "", "", "", ""})
					continue
				}
				date, err := resolver.Resolve(cmd.Context(), file.Path)
				if err != nil {
					failed++
					rows = append(rows, []string{file.Path, file.Category.String(), "error", "", "", err.Error()})
					continue
				}
				rows = append(rows, []string{
					file.Path,
					file.Category.String(),
					date.Time.Format("2006-01-02 15:04:05"),
					date.FolderName(),
					string(date.Source),
					date.Metadata.Outcome.String(),
				})
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(columns, rows))
			if failed > 0 {
				return fmt.Errorf("%d of %d file(s) could not be resolved", failed, len(args))
			}
			return nil
		},
	}
}
