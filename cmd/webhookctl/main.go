package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ManuelReschke/SurpriseArtwork/internal/pkg/env"
)

var Version = "dev"

func main() {
	_ = env.SetupEnvFile()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "webhookctl",
		Short:         "Build, sign and send Stripe test events to the shop webhook",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("secret", "", "Webhook signing secret (default $STRIPE_WEBHOOK_SECRET)")

	rootCmd.AddCommand(fixtureCmd())
	rootCmd.AddCommand(signCmd())
	rootCmd.AddCommand(sendCmd())

	return rootCmd
}

func signingSecret(cmd *cobra.Command) (string, error) {
	secret, _ := cmd.Flags().GetString("secret")
	if secret == "" {
		secret = env.GetEnv("STRIPE_WEBHOOK_SECRET", "")
	}
	if secret == "" {
		return "", fmt.Errorf("no signing secret: pass --secret or set STRIPE_WEBHOOK_SECRET")
	}
	return secret, nil
}

// readPayload reads the event body from a file, or from stdin for "-".
func readPayload(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}
