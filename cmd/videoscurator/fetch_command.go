package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"VideosCurator/internal/app"
)

func newFetchCommand() *cobra.Command {
	var (
		date      string
		category  string
		maxVideos int
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Pull catalog videos into the day's fetch partition",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger := loadEnvironment()
			if err := requireCredentials(cfg); err != nil {
				return err
			}
			day, err := parseDate(date)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("category") {
				cfg.Stages.Fetch.Category = category
			}
			if cmd.Flags().Changed("max-videos") {
				cfg.Stages.Fetch.MaxVideos = maxVideos
			}

			application, err := app.New(cfg, logger)
			if err != nil {
				return err
			}
			defer application.Close()

			result, runErr := application.Fetch.Run(cmd.Context(), day)
			fmt.Fprintf(cmd.OutOrStdout(), "fetched %d videos (%d new, %d errors) -> %s\n",
				result.Processed, result.New, result.Errors, result.Dir)
			return runErr
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "target day YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&category, "category", "", "named search category from config")
	cmd.Flags().IntVar(&maxVideos, "max-videos", 0, "cap on fetched videos")

	return cmd
}
