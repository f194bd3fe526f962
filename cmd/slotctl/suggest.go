package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noah-isme/autoservice-booking-api/internal/app"
	"github.com/noah-isme/autoservice-booking-api/internal/models"
	"github.com/noah-isme/autoservice-booking-api/internal/service"
)

func newSuggestCmd() *cobra.Command {
	var (
		serviceID      string
		quantity       int
		startDate      string
		horizonDays    int
		maxSuggestions int
		customerID     string
		output         outputFlags
	)

	c := &cobra.Command{
		Use:   "suggest",
		Short: "Rank the best days and slots for a service",
		RunE: func(cmd *cobra.Command, args []string) error {
			query := service.SuggestDaysQuery{
				ServiceID:      serviceID,
				Quantity:       quantity,
				HorizonDays:    horizonDays,
				CustomerID:     customerID,
				MaxSuggestions: maxSuggestions,
			}
			if startDate != "" {
				start, err := time.Parse(models.DateLayout, startDate)
				if err != nil {
					return fmt.Errorf("invalid --start (want YYYY-MM-DD): %w", err)
				}
				query.StartDate = start
			}

			return withApp(cmd.Context(), func(a *app.App) error {
				days, hit, err := a.Scheduling.SuggestDays(cmd.Context(), query)
				if err != nil {
					return err
				}
				profile, err := a.Scheduling.Catalog().ProfileFor(serviceID, quantity)
				if err != nil {
					return err
				}
				a.Logger.Debug("suggestions computed", zap.Int("days", len(days)), zap.Bool("cache_hit", hit))
				return render(cmd, output, service.SuggestionSheet(profile, days))
			})
		},
	}

	c.Flags().StringVar(&serviceID, "service", "", "service id")
	c.Flags().IntVar(&quantity, "quantity", 1, "units of the service")
	c.Flags().StringVar(&startDate, "start", "", "first candidate date (YYYY-MM-DD)")
	c.Flags().IntVar(&horizonDays, "horizon", 0, "days to consider (default from config)")
	c.Flags().IntVar(&maxSuggestions, "max", 5, "slots kept per day")
	c.Flags().StringVar(&customerID, "customer", "", "personalize for this customer id")
	output.register(c)
	_ = c.MarkFlagRequired("service")
	return c
}
