package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"cuesplit/internal/cue"
	"cuesplit/internal/splitter"
)

func newTracksCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tracks <sheet.cue>",
		Short: "Show the resolved track boundaries of a CUE sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			split := splitter.New(cfg, logger, nil)
			sheet, groups, err := split.Inspect(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Album: %s\nPerformer: %s\n", sheet.Disc.Album, sheet.Disc.Performer)
			if sheet.Disc.Date != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Date: %s\n", sheet.Disc.Date)
			}

			rows := make([][]string, 0, 16)
			for _, group := range groups {
				for _, track := range group.Tracks {
					end := "(end of file)"
					if track.HasEnd {
						end = cue.FormatFrames(track.End)
					}
					rows = append(rows, []string{
						strconv.Itoa(track.Number),
						track.Tags.Title,
						track.Tags.Performer,
						cue.FormatFrames(track.Start),
						end,
						fmt.Sprintf("%.2fs", track.Duration),
						group.Source,
					})
				}
			}
			headers := []string{"#", "Title", "Performer", "Start", "End", "Duration", "Source"}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, 1, 4, 5, 6))
			return nil
		},
	}
	return cmd
}
