package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "videoscurator",
		Short:         "Curates uplifting videos from a catalog into daily reports",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.AddCommand(
		newFetchCommand(),
		newAssessCommand(),
		newEnhanceCommand(),
		newReportCommand(),
		newRunAllCommand(),
		newStatusCommand(),
		newScheduleCommand(),
		newExportWebCommand(),
		newServeCommand(),
	)

	return rootCmd
}
