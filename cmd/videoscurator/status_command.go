package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"VideosCurator/internal/domain"
	"VideosCurator/internal/infrastructure/journal"
	"VideosCurator/internal/store"
	"VideosCurator/internal/usecase"
)

func newStatusCommand() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show record counts and run history for one day",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _ := loadEnvironment()
			day, err := parseDate(date)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "status for %s\n", day.Format(domain.DateLayout))

			rows := make([][]string, 0, 3)
			for _, stage := range []string{usecase.StageNameFetch, usecase.StageNameAssess, usecase.StageNameEnhance} {
				dir := usecase.PartitionDir(cfg.Storage.StagesDir, stage, day)
				count, err := store.CountRecords(dir)
				if err != nil {
					return err
				}
				rows = append(rows, []string{stage, strconv.Itoa(count)})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Stage", "Records"},
				rows,
				[]columnAlignment{alignLeft, alignRight},
			))

			artifact := usecase.ArtifactPath(cfg.Storage.StagesDir, day)
			if _, err := os.Stat(artifact); err == nil {
				fmt.Fprintf(out, "report artifact: %s\n", artifact)
			} else {
				fmt.Fprintln(out, "report artifact: missing")
			}

			return printRunHistory(cmd, cfg.Journal.Path, day)
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "target day YYYY-MM-DD (default today)")

	return cmd
}

// printRunHistory renders the journal entries for the day. The journal is
// only opened when its file already exists so status never creates state.
func printRunHistory(cmd *cobra.Command, path string, day time.Time) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil
	}

	j, err := journal.Open(path)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	runs, err := j.RunsForDate(cmd.Context(), day.Format(domain.DateLayout))
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no recorded runs")
		return nil
	}

	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			run.Stage,
			strconv.Itoa(run.Processed),
			strconv.Itoa(run.Errors),
			run.StartedAt.Format("15:04:05"),
			run.EndedAt.Sub(run.StartedAt).Round(time.Second).String(),
		})
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]string{"Run", "Processed", "Errors", "Started", "Duration"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignLeft, alignRight},
	))
	return nil
}
