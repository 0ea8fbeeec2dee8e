package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"VideosCurator/internal/app"
	"VideosCurator/internal/domain"
)

func newRunAllCommand() *cobra.Command {
	var (
		date      string
		category  string
		maxVideos int
		threshold int
		daysBack  int
	)

	cmd := &cobra.Command{
		Use:   "run-all",
		Short: "Run fetch, assess, enhance and report for one day",
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
			if cmd.Flags().Changed("threshold") {
				if err := validateThreshold(threshold); err != nil {
					return err
				}
				cfg.Stages.Enhance.Threshold = threshold
			}
			if cmd.Flags().Changed("days-back") {
				cfg.Stages.Report.DaysBack = daysBack
			}

			application, err := app.New(cfg, logger)
			if err != nil {
				return err
			}
			defer application.Close()

			summary, runErr := application.Pipeline.RunAll(cmd.Context(), day)
			fmt.Fprintln(cmd.OutOrStdout(), summaryTable(summary))
			if summary.Report.ArtifactPath != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "report: %s\n", summary.Report.ArtifactPath)
			}
			return runErr
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "target day YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&category, "category", "", "named search category from config")
	cmd.Flags().IntVar(&maxVideos, "max-videos", 0, "cap on fetched videos")
	cmd.Flags().IntVar(&threshold, "threshold", 0, "minimum happiness score to keep (1..5)")
	cmd.Flags().IntVar(&daysBack, "days-back", 0, "snapshot window size in days")

	return cmd
}

func summaryTable(summary domain.PipelineSummary) string {
	rows := [][]string{
		{"fetch", strconv.Itoa(summary.Fetch.Processed), strconv.Itoa(summary.Fetch.Errors), fmt.Sprintf("%d new", summary.Fetch.New)},
		{"assess", strconv.Itoa(summary.Assess.Processed), strconv.Itoa(summary.Assess.Errors), fmt.Sprintf("avg %.2f", summary.Assess.AvgScore)},
		{"enhance", strconv.Itoa(summary.Enhance.Processed), strconv.Itoa(summary.Enhance.Errors), ""},
		{"report", strconv.Itoa(summary.Report.Processed), strconv.Itoa(summary.Report.Errors), fmt.Sprintf("avg %.2f", summary.Report.AvgScore)},
	}
	return renderTable(
		[]string{"Stage", "Processed", "Errors", "Notes"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignLeft},
	)
}
