package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"cuesplit/internal/config"
	"cuesplit/internal/history"
	"cuesplit/internal/logging"
	"cuesplit/internal/splitter"
)

func newSplitCommand(ctx *commandContext) *cobra.Command {
	var (
		formatFlag    string
		outputFlag    string
		collection    string
		overwriteFlag string
		encodingFlag  string
		recursive     bool
		dryRun        bool
		deleteOrig    bool
	)

	cmd := &cobra.Command{
		Use:   "split [files or directories...]",
		Short: "Split the audio images referenced by the given CUE sheets",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			applyFlag(cmd, "format", &cfg.Output.Format, formatFlag)
			applyFlag(cmd, "output-dir", &cfg.Output.Directory, outputFlag)
			applyFlag(cmd, "collection", &cfg.Output.Collection, collection)
			applyFlag(cmd, "overwrite", &cfg.Output.Overwrite, overwriteFlag)
			applyFlag(cmd, "encoding", &cfg.Input.CharacterEncoding, encodingFlag)
			if cmd.Flags().Changed("recursive") {
				cfg.Input.Recursive = recursive
			}
			if cmd.Flags().Changed("delete-originals") {
				cfg.Output.DeleteOriginals = deleteOrig
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if cfg.Output.Directory != "" {
				expanded, err := config.ExpandPath(cfg.Output.Directory)
				if err != nil {
					return err
				}
				cfg.Output.Directory = expanded
			}

			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			found := splitter.FindSheets(args, cfg.Input.Recursive)
			for _, path := range found.Discarded {
				logger.Warn("not a cue sheet; skipping", logging.String("path", path))
			}
			for _, path := range found.Missing {
				logger.Warn("path does not exist; skipping", logging.String("path", path))
			}
			if len(found.Found) == 0 {
				return errors.New("no cue sheets found")
			}

			var store *history.Store
			if cfg.History.Enabled && !dryRun {
				store, err = history.Open(cfg.History.Path)
				if err != nil {
					logger.Warn("history disabled for this run", logging.Error(err))
				} else {
					defer store.Close()
				}
			}

			split := splitter.New(cfg, logger, store)
			if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
				split.SetProgressWriter(cmd.OutOrStdout())
			}

			failures := 0
			for _, sheet := range found.Found {
				result, err := split.Split(cmd.Context(), sheet, dryRun)
				if err != nil {
					failures++
					logger.Error("sheet failed", logging.String("sheet", sheet), logging.Error(err))
					continue
				}
				if result.Skipped {
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d tracks -> %s\n", sheet, result.Tracks, result.OutputDir)
			}
			if failures > 0 {
				return fmt.Errorf("%d of %d sheets failed", failures, len(found.Found))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&formatFlag, "format", "f", "", "Output format (wav, flac, mp3, ogg, opus, copy)")
	cmd.Flags().StringVarP(&outputFlag, "output-dir", "o", "", "Destination directory (default: alongside each sheet)")
	cmd.Flags().StringVar(&collection, "collection", "", "Collection layout (artist, album, artist+album)")
	cmd.Flags().StringVar(&overwriteFlag, "overwrite", "", "Overwrite policy (ask, always, never)")
	cmd.Flags().StringVar(&encodingFlag, "encoding", "", "Sheet character encoding (IANA name)")
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Search directories recursively")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the ffmpeg commands without running them")
	cmd.Flags().BoolVar(&deleteOrig, "delete-originals", false, "Remove the sheet and image after a successful split")

	return cmd
}

func applyFlag(cmd *cobra.Command, name string, target *string, value string) {
	if cmd.Flags().Changed(name) {
		*target = value
	}
}
