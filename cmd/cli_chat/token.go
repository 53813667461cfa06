package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"companion-llm/internal/domain"
	"companion-llm/internal/service"
)

var (
	tokenUserID string
	tokenTTL    time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a development access token signed with JWT_SECRET",
	RunE: func(cmd *cobra.Command, _ []string) error {
		secret := os.Getenv("JWT_SECRET")
		if secret == "" {
			return fmt.Errorf("JWT_SECRET is not set")
		}
		token, err := service.NewJWTService(secret, tokenTTL).IssueAccessToken(domain.User{ID: tokenUserID})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenUserID, "user", "", "user id for the uid claim (required)")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", time.Hour, "token lifetime")
	_ = tokenCmd.MarkFlagRequired("user")
}
