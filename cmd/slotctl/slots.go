package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/noah-isme/autoservice-booking-api/internal/app"
	"github.com/noah-isme/autoservice-booking-api/internal/models"
	"github.com/noah-isme/autoservice-booking-api/internal/service"
)

func newSlotsCmd() *cobra.Command {
	var (
		serviceID  string
		quantity   int
		date       string
		customerID string
		output     outputFlags
	)

	c := &cobra.Command{
		Use:   "slots",
		Short: "List the ranked slots of one date",
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := time.Parse(models.DateLayout, date)
			if err != nil {
				return fmt.Errorf("invalid --date (want YYYY-MM-DD): %w", err)
			}
			return withApp(cmd.Context(), func(a *app.App) error {
				day, _, err := a.Scheduling.SlotsForDate(cmd.Context(), service.SlotsForDateQuery{
					ServiceID:  serviceID,
					Quantity:   quantity,
					Date:       target,
					CustomerID: customerID,
				})
				if err != nil {
					return err
				}
				profile, err := a.Scheduling.Catalog().ProfileFor(serviceID, quantity)
				if err != nil {
					return err
				}
				return render(cmd, output, service.SuggestionSheet(profile, []models.DaySuggestion{*day}))
			})
		},
	}

	c.Flags().StringVar(&serviceID, "service", "", "service id")
	c.Flags().IntVar(&quantity, "quantity", 1, "units of the service")
	c.Flags().StringVar(&date, "date", "", "date to inspect (YYYY-MM-DD)")
	c.Flags().StringVar(&customerID, "customer", "", "personalize for this customer id")
	output.register(c)
	_ = c.MarkFlagRequired("service")
	_ = c.MarkFlagRequired("date")
	return c
}
