package main

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/noah-isme/autoservice-booking-api/internal/app"
	"github.com/noah-isme/autoservice-booking-api/pkg/config"
	"github.com/noah-isme/autoservice-booking-api/pkg/logger"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "slotctl",
		Short:         "Operator tooling for the workshop appointment engine",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newSuggestCmd())
	root.AddCommand(newSlotsCmd())
	root.AddCommand(newMigrateCmd())
	root.AddCommand(newTokenCmd())

	return root
}

// withApp loads config, wires the services and runs fn. Background workers
// are not started; cache invalidation runs inline.
func withApp(ctx context.Context, fn func(*app.App) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logr, err := logger.New(cfg)
	if err != nil {
		return err
	}
	defer logr.Sync() //nolint:errcheck

	db, err := app.OpenDatabase(ctx, cfg, logr)
	if err != nil {
		return err
	}
	a, err := app.New(ctx, cfg, logr, db)
	if err != nil {
		_ = db.Close()
		return err
	}
	defer a.Close()
	return fn(a)
}

// outputFlags are shared by the reporting commands.
type outputFlags struct {
	format string
	out    string
}

func (o *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.format, "format", "table", "output format: table, csv or pdf")
	cmd.Flags().StringVarP(&o.out, "out", "o", "", "write to file instead of stdout")
}

// writer opens the destination; the returned close func is always non-nil.
func (o *outputFlags) writer(cmd *cobra.Command) (io.Writer, func() error, error) {
	if o.out == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(o.out)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
