package cmd

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/bnema/ipd/internal/application"
	"github.com/bnema/ipd/internal/domain"
	"github.com/spf13/cobra"
)

func newRosterCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Manage named tournament rosters",
	}

	cmd.AddCommand(
		newRosterListCmd(app),
		newRosterShowCmd(app),
		newRosterSaveCmd(app),
	)

	return cmd
}

func newRosterListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List rosters from the roster file and the built-in set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rosters, err := app.rosterService.ListRosters(cmd.Context())
			if err != nil {
				return err
			}
			if len(rosters) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No rosters configured.")
				return nil
			}

			for _, roster := range rosters {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s (%d entrants)\n", sanitizeForTerminal(string(roster.Name)), len(roster.Entrants))
			}
			return nil
		},
	}
}

func newRosterShowCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show a roster's entrants in ranking tie-break order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			roster, err := app.rosterService.GetRoster(cmd.Context(), domain.RosterName(args[0]))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "roster: %s\n", sanitizeForTerminal(string(roster.Name)))
			if roster.Description != "" {
				_, _ = fmt.Fprintf(out, "description: %s\n", sanitizeForTerminal(roster.Description))
			}
			if roster.RoundsPerMatch > 0 {
				_, _ = fmt.Fprintf(out, "rounds per match: %d\n", roster.RoundsPerMatch)
			} else {
				_, _ = fmt.Fprintln(out, "rounds per match: from config")
			}
			entrants := make([]string, 0, len(roster.Entrants))
			for _, entrant := range roster.Entrants {
				entrants = append(entrants, sanitizeForTerminal(string(entrant)))
			}
			_, _ = fmt.Fprintf(out, "entrants: %s\n", strings.Join(entrants, ", "))
			return nil
		},
	}
}

func newRosterSaveCmd(app *app) *cobra.Command {
	var (
		agents      []string
		description string
		rounds      int
	)

	cmd := &cobra.Command{
		Use:   "save <name>",
		Short: "Create or replace a roster in the roster file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := make([]domain.AgentName, 0, len(agents))
			for _, agent := range agents {
				if trimmed := strings.TrimSpace(agent); trimmed != "" {
					names = append(names, domain.AgentName(trimmed))
				}
			}

			if _, err := app.newCatalog(1).Lookup(names); err != nil {
				return err
			}

			roster, err := app.rosterService.SaveRoster(cmd.Context(), application.SaveRosterCommand{
				Name:           domain.RosterName(strings.TrimSpace(args[0])),
				Description:    description,
				Entrants:       names,
				RoundsPerMatch: rounds,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Saved roster %s (%d entrants)\n", sanitizeForTerminal(string(roster.Name)), len(roster.Entrants))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&agents, "agents", nil, "Comma-separated agents in tie-break order")
	cmd.Flags().StringVar(&description, "description", "", "Free-form description")
	cmd.Flags().IntVar(&rounds, "rounds", 0, "Rounds per match for this roster (0 uses the configured default)")
	_ = cmd.MarkFlagRequired("agents")

	return cmd
}

func sanitizeForTerminal(value string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, value)
}
