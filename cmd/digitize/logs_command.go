package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"digitize/internal/logging"
	"digitize/internal/logs"
)

func newLogsCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var follow bool

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show recent log output",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path := logging.FilePath(cfg)

			lines, offset, err := logs.Tail(path, limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, line := range lines {
				fmt.Fprintln(out, line)
			}

			if !follow {
				return nil
			}
			err = logs.Follow(cmd.Context(), path, offset, func(line string) {
				fmt.Fprintln(out, line)
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().IntVarP(&limit, "lines", "n", 50, "Number of lines to show")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep printing new lines as they arrive")
	return cmd
}
