package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"VideosCurator/internal/app"
	"VideosCurator/internal/infrastructure/scheduler"
	"VideosCurator/internal/usecase"
)

func newScheduleCommand() *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Run the full pipeline daily at the configured time",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger := loadEnvironment()
			if err := requireCredentials(cfg); err != nil {
				return err
			}
			if cmd.Flags().Changed("at") {
				cfg.Scheduler.At = at
			}

			application, err := app.New(cfg, logger)
			if err != nil {
				return err
			}
			defer application.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			driver := scheduler.NewDailyScheduler(cfg.Scheduler.At, cfg.Scheduler.Location())
			runner := usecase.NewScheduler(driver, application.Pipeline, logger.With("component", "scheduler"))
			if err := runner.Start(ctx); err != nil {
				return err
			}
			logger.Info("scheduler running", "at", cfg.Scheduler.At, "timezone", cfg.Scheduler.Timezone)

			<-ctx.Done()
			return runner.Stop(context.Background())
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "daily run time HH:MM (overrides config)")

	return cmd
}
