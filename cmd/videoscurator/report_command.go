package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"VideosCurator/internal/app"
)

func newReportCommand() *cobra.Command {
	var (
		date     string
		daysBack int
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render the day's HTML report and export stage snapshots",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger := loadEnvironment()
			day, err := parseDate(date)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("days-back") {
				cfg.Stages.Report.DaysBack = daysBack
			}

			application, err := app.New(cfg, logger)
			if err != nil {
				return err
			}
			defer application.Close()

			result, runErr := application.Report.Run(cmd.Context(), day)
			fmt.Fprintf(cmd.OutOrStdout(), "reported %d videos (avg %.2f, %d errors)\n",
				result.Processed, result.AvgScore, result.Errors)
			if result.ArtifactPath != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "report: %s\n", result.ArtifactPath)
			}
			return runErr
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "target day YYYY-MM-DD (default today)")
	cmd.Flags().IntVar(&daysBack, "days-back", 0, "snapshot window size in days")

	return cmd
}
