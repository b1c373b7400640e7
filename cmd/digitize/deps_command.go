package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"digitize/internal/deps"
)

func newDepsCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "deps",
		Short:       "Check availability of the external scan/OCR tools",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			statuses := deps.CheckBinaries(deps.Default())

			rows := make([][]string, 0, len(statuses))
			for _, status := range statuses {
				state := "ok"
				if !status.Available {
					state = "missing"
					if status.Optional {
						state = "missing (optional)"
					}
				}
				rows = append(rows, []string{status.Command, state, status.Description})
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, renderTable(out, []string{"TOOL", "STATUS", "PURPOSE"}, rows))

			if missing := deps.MissingRequired(statuses); len(missing) > 0 {
				return fmt.Errorf("%d required tool(s) missing", len(missing))
			}
			return nil
		},
	}
}
