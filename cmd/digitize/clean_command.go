package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"digitize/internal/staging"
)

func newCleanCommand(ctx *commandContext) *cobra.Command {
	var olderThan time.Duration
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove leftover staging directories from interrupted runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if dryRun {
				dirs, err := staging.List(cfg.Paths.StagingDir)
				if err != nil {
					return fmt.Errorf("list staging directories: %w", err)
				}
				cutoff := time.Now().Add(-olderThan)
				rows := make([][]string, 0, len(dirs))
				for _, dir := range dirs {
					if !dir.ModTime.Before(cutoff) {
						continue
					}
					rows = append(rows, []string{
						dir.Name,
						dir.ModTime.Format(time.RFC3339),
						formatSize(dir.Size),
					})
				}
				if len(rows) == 0 {
					fmt.Fprintln(out, "Nothing to clean")
					return nil
				}
				fmt.Fprint(out, renderTable(out, []string{"DIRECTORY", "MODIFIED", "SIZE"}, rows))
				return nil
			}

			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			result := staging.CleanStale(cfg.Paths.StagingDir, olderThan, logger)
			for _, failure := range result.Errors {
				fmt.Fprintf(cmd.ErrOrStderr(), "could not remove %s: %v\n", failure.Path, failure.Err)
			}
			fmt.Fprintf(out, "Removed %d stale directories\n", len(result.Removed))
			return nil
		},
	}

	cmd.Flags().DurationVar(&olderThan, "older-than", 24*time.Hour, "Only remove directories older than this")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "List what would be removed without deleting")
	return cmd
}

func formatSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMG"[exp])
}
