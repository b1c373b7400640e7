package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"digitize/internal/profile"
)

func newProfilesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List configured scan profiles with their effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := profile.Load(cfg.Paths.Profiles)
			if err != nil {
				return err
			}
			if store.Len() == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No profiles configured (%s)\n", cfg.Paths.Profiles)
				return nil
			}

			rows, err := profileRows(store)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, renderTable(out, []string{"PROFILE", "PATH", "NAME", "OCR", "KEYWORDS"}, rows))
			return nil
		},
	}
}

// profileRows resolves every dotted path in the tree and formats the
// effective (inherited) values, showing "-" for fields nothing sets.
func profileRows(store *profile.Store) ([][]string, error) {
	var rows [][]string
	var walkErr error
	store.Walk(func(dotted string, _ *profile.Fragment) {
		if walkErr != nil {
			return
		}
		resolution, err := store.Resolve(dotted)
		if err != nil {
			walkErr = err
			return
		}
		rows = append(rows, []string{
			dotted,
			orDash(resolution.Path),
			orDash(resolution.Name),
			formatOCR(resolution.OCR),
			formatKeywords(resolution.Keywords),
		})
	})
	return rows, walkErr
}

func orDash(value *string) string {
	if value == nil || *value == "" {
		return "-"
	}
	return *value
}

func formatOCR(value *bool) string {
	if value == nil {
		return "-"
	}
	if *value {
		return "yes"
	}
	return "no"
}

func formatKeywords(keywords []string) string {
	if len(keywords) == 0 {
		return "-"
	}
	return strings.Join(keywords, ", ")
}
