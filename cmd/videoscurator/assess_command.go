package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"VideosCurator/internal/app"
)

func newAssessCommand() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Score the day's fetched videos for happiness",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger := loadEnvironment()
			if err := requireCredentials(cfg); err != nil {
				return err
			}
			day, err := parseDate(date)
			if err != nil {
				return err
			}

			application, err := app.New(cfg, logger)
			if err != nil {
				return err
			}
			defer application.Close()

			result, runErr := application.Assess.Run(cmd.Context(), day)
			fmt.Fprintf(cmd.OutOrStdout(), "assessed %d videos (avg %.2f, %d errors) -> %s\n",
				result.Processed, result.AvgScore, result.Errors, result.Dir)
			return runErr
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "target day YYYY-MM-DD (default today)")

	return cmd
}
