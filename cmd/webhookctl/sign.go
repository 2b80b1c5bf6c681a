package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ManuelReschke/SurpriseArtwork/internal/pkg/fulfillment"
)

func signCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sign [payload-file|-]",
		Short: "Print a Stripe-Signature header for a payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			secret, err := signingSecret(cmd)
			if err != nil {
				return err
			}
			body, err := readPayload(cmd, args[0])
			if err != nil {
				return err
			}
			age, _ := cmd.Flags().GetDuration("age")

			fmt.Fprintln(cmd.OutOrStdout(), fulfillment.SignPayload(body, secret, time.Now().Add(-age)))
			return nil
		},
	}

	cmd.Flags().Duration("age", 0, "Backdate the signature, e.g. 10m to produce a stale one")

	return cmd
}
