package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"cuesplit/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent split jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.History.Enabled {
				return fmt.Errorf("history is disabled in the configuration")
			}

			store, err := history.Open(cfg.History.Path)
			if err != nil {
				return err
			}
			defer store.Close()

			jobs, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(jobs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No recorded jobs")
				return nil
			}

			rows := make([][]string, 0, len(jobs))
			for _, job := range jobs {
				rows = append(rows, []string{
					job.StartedAt.Local().Format("2006-01-02 15:04"),
					job.Artist,
					job.Album,
					job.Format,
					strconv.Itoa(job.TrackCount),
					job.Status,
				})
			}
			headers := []string{"Started", "Artist", "Album", "Format", "Tracks", "Status"}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, 5))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of jobs to list")
	return cmd
}
