package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/noah-isme/autoservice-booking-api/internal/app"
	"github.com/noah-isme/autoservice-booking-api/pkg/config"
	"github.com/noah-isme/autoservice-booking-api/pkg/logger"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logr, err := logger.New(cfg)
			if err != nil {
				return err
			}
			defer logr.Sync() //nolint:errcheck

			db, err := app.OpenDatabase(cmd.Context(), cfg, logr)
			if err != nil {
				return err
			}
			defer db.Close()

			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}
