package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/vfg2006/workspace-analytics-api/infrastructure/migration/seed"
	"github.com/vfg2006/workspace-analytics-api/internal/usecases/authenticating"
)

// tokenCmd emite um token de desenvolvimento assinado com AUTH_SECRET
func tokenCmd() *cobra.Command {
	var userID, email string
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Emite um token Bearer de desenvolvimento",
		RunE: func(cmd *cobra.Command, args []string) error {
			auth := authenticating.NewService(nil, cfg.Auth)
			token, err := auth.IssueToken(userID, email, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", seed.DemoOwnerID, "usuário gravado em sub")
	cmd.Flags().StringVar(&email, "email", "", "email opcional")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "validade do token")
	return cmd
}
