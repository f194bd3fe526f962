package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/noah-isme/autoservice-booking-api/internal/service"
	"github.com/noah-isme/autoservice-booking-api/pkg/config"
)

func newTokenCmd() *cobra.Command {
	var (
		customerID string
		ttl        time.Duration
	)

	c := &cobra.Command{
		Use:   "token",
		Short: "Sign a customer bearer token with the configured JWT secret",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return writeToken(cmd.OutOrStdout(), service.NewCustomerTokenService(cfg.JWT.Secret, ttl), customerID)
		},
	}

	c.Flags().StringVar(&customerID, "customer", "", "customer id carried as the token subject")
	c.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	_ = c.MarkFlagRequired("customer")
	return c
}

func writeToken(w io.Writer, tokens *service.CustomerTokenService, customerID string) error {
	token, err := tokens.Issue(customerID)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, token)
	return err
}
