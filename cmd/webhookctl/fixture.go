package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ManuelReschke/SurpriseArtwork/internal/pkg/catalog"
	"github.com/ManuelReschke/SurpriseArtwork/internal/pkg/webhookfixture"
)

func fixtureCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fixture",
		Short: "Print a checkout.session.completed event for a tier and tip",
		Long: `Print a checkout.session.completed event whose session metadata matches
what the shop writes when it creates a checkout session.

Use --set key=value to override metadata (an empty value drops the key), e.g.
  webhookctl fixture --tier basic --tip 100 --set total_amount=2000`,
		Args: cobra.NoArgs,
		RunE: runFixture,
	}

	cmd.Flags().String("tier", catalog.TierBasic, "Tier id (basic, premium, deluxe)")
	cmd.Flags().Int64("tip", 0, "Tip in cents")
	cmd.Flags().String("email", "", "Customer email")
	cmd.Flags().String("event-type", "", "Emit a different event type with an empty object")
	cmd.Flags().StringSlice("set", nil, "Metadata override key=value")

	return cmd
}

func runFixture(cmd *cobra.Command, args []string) error {
	tierID, _ := cmd.Flags().GetString("tier")
	tip, _ := cmd.Flags().GetInt64("tip")
	email, _ := cmd.Flags().GetString("email")
	eventType, _ := cmd.Flags().GetString("event-type")
	overrides, _ := cmd.Flags().GetStringSlice("set")

	opts := webhookfixture.Options{Email: email}

	var body []byte
	var err error
	if eventType != "" {
		body, err = webhookfixture.Event(eventType, map[string]any{}, opts)
	} else {
		tier, ok := catalog.Default().Tier(tierID)
		if !ok {
			return fmt.Errorf("unknown tier %q", tierID)
		}
		if opts.Metadata, err = parseOverrides(overrides); err != nil {
			return err
		}
		body, err = webhookfixture.CheckoutCompleted(tier.Reference(), tip, opts)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(body))
	return nil
}

func parseOverrides(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --set %q, want key=value", pair)
		}
		out[key] = value
	}
	return out, nil
}
