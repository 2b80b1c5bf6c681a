package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ManuelReschke/SurpriseArtwork/internal/pkg/constants"
	"github.com/ManuelReschke/SurpriseArtwork/internal/pkg/fulfillment"
)

func sendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send [payload-file|-]",
		Short: "Sign a payload and POST it to the webhook endpoint",
		Args:  cobra.ExactArgs(1),
		RunE:  runSend,
	}

	cmd.Flags().String("url", "http://localhost:4000"+constants.WebhookRoute, "Webhook endpoint")
	cmd.Flags().Duration("timeout", 30*time.Second, "Request timeout")
	cmd.Flags().Bool("unsigned", false, "Send without a Stripe-Signature header")

	return cmd
}

func runSend(cmd *cobra.Command, args []string) error {
	url, _ := cmd.Flags().GetString("url")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	unsigned, _ := cmd.Flags().GetBool("unsigned")

	body, err := readPayload(cmd, args[0])
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(cmd.Context(), http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if !unsigned {
		secret, err := signingSecret(cmd)
		if err != nil {
			return err
		}
		req.Header.Set("Stripe-Signature", fulfillment.SignPayload(body, secret, time.Now()))
	}

	resp, err := (&http.Client{Timeout: timeout}).Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n", resp.Status, strings.TrimSpace(string(respBody)))
	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook answered %d", resp.StatusCode)
	}
	return nil
}
