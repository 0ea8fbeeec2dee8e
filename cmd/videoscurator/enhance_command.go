package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"VideosCurator/internal/app"
)

func newEnhanceCommand() *cobra.Command {
	var (
		date      string
		threshold int
	)

	cmd := &cobra.Command{
		Use:   "enhance",
		Short: "Rewrite descriptions of videos above the acceptance score",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger := loadEnvironment()
			if err := requireCredentials(cfg); err != nil {
				return err
			}
			day, err := parseDate(date)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("threshold") {
				if err := validateThreshold(threshold); err != nil {
					return err
				}
				cfg.Stages.Enhance.Threshold = threshold
			}

			application, err := app.New(cfg, logger)
			if err != nil {
				return err
			}
			defer application.Close()

			result, runErr := application.Enhance.Run(cmd.Context(), day)
			fmt.Fprintf(cmd.OutOrStdout(), "enhanced %d videos (%d errors) -> %s\n",
				result.Processed, result.Errors, result.Dir)
			return runErr
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "target day YYYY-MM-DD (default today)")
	cmd.Flags().IntVar(&threshold, "threshold", 0, "minimum happiness score to keep (1..5)")

	return cmd
}
