package main

import (
	"context"
	"fmt"

	"github.com/abdulachik/fanpost/internal/app"
	"github.com/abdulachik/fanpost/internal/config"
	"github.com/spf13/cobra"
)

var (
	loginAccessToken  string
	loginRefreshToken string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate with an existing Fanvue access token",
	Long: `Store a Fanvue access token, verify it against the API and resolve the
creator account it manages. The session is persisted so later commands
don't need to log in again.

The token is obtained outside this tool (browser cookies or the Fanvue
developer portal); no OAuth2 exchange is performed here.`,
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().StringVar(&loginAccessToken, "access-token", "", "Fanvue access token (required)")
	loginCmd.Flags().StringVar(&loginRefreshToken, "refresh-token", "", "Fanvue refresh token (optional)")
	loginCmd.MarkFlagRequired("access-token")
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize app: %w", err)
	}
	defer a.Close()

	label, err := a.Session.Authenticate(ctx, a.Client, loginAccessToken, loginRefreshToken)
	if err != nil {
		return fmt.Errorf("authenticate: %w", err)
	}

	fmt.Printf("Logged in. Creator: %s\n", label)
	return nil
}
