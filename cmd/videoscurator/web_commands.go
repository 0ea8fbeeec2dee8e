package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"VideosCurator/internal/infrastructure/web"
)

func newExportWebCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export-web",
		Short: "Build the static video feed from the raw catalog archive",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger := loadEnvironment()

			count, err := web.Export(cfg.Storage.ArchiveDir, cfg.Web.Dir, logger.With("component", "web.export"))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d videos -> %s\n", count, cfg.Web.Dir)
			return nil
		},
	}

	return cmd
}

func newServeCommand() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the static player and the archive-backed video API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger := loadEnvironment()
			if cmd.Flags().Changed("listen") {
				cfg.Web.Listen = listen
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			server := web.NewServer(cfg.Web.Dir, cfg.Storage.ArchiveDir, logger.With("component", "web.server"))
			return server.Run(ctx, cfg.Web.Listen)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "listen address (overrides config)")

	return cmd
}
