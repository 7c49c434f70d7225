package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

type agentView struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func newAgentsCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "agents",
		Short: "List the strategies that can be entered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries := app.newCatalog(1).Entries()

			if asJSON {
				views := make([]agentView, 0, len(entries))
				for _, entry := range entries {
					views = append(views, agentView{Name: string(entry.Name), Description: entry.Description})
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(views)
			}

			width := 0
			for _, entry := range entries {
				width = max(width, len(entry.Name))
			}
			for _, entry := range entries {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-*s  %s\n", width, entry.Name, entry.Description)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")

	return cmd
}
