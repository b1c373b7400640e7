package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"digitize/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently completed scans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := history.Open(cfg.Paths.HistoryPath)
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No scans recorded yet")
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				profilePath := entry.Profile
				if profilePath == "" {
					profilePath = "-"
				}
				ocr := "no"
				if entry.OCR {
					ocr = "yes"
				}
				rows = append(rows, []string{
					entry.CreatedAt.Local().Format("2006-01-02 15:04"),
					profilePath,
					entry.Name,
					strconv.Itoa(entry.Pages),
					ocr,
					entry.OutputPath,
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, renderTable(out, []string{"WHEN", "PROFILE", "NAME", "PAGES", "OCR", "OUTPUT"}, rows))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 20, "Maximum number of entries to show (0 = all)")
	return cmd
}
