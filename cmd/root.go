package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

func Execute() error {
	return ExecuteContext(context.Background())
}

func ExecuteContext(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ipd",
		Short:         "Iterated Prisoner's Dilemma round-robin tournaments",
		Long:          "ipd runs round-robin Iterated Prisoner's Dilemma tournaments between agent strategies, ranks them by total score and prints the standings.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newAgentsCmd(app),
		newRosterCmd(app),
		newRunCmd(app),
	)

	return rootCmd
}
