package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/vfg2006/workspace-analytics-api/infrastructure/migration/seed"
	"github.com/vfg2006/workspace-analytics-api/internal/domain"
)

func seedCmd() *cobra.Command {
	var workspaceID, day string
	var skipRollup bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Grava o workspace de demonstração e materializa o dia do pedido",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := seed.Options{WorkspaceID: workspaceID}
			if day != "" {
				parsed, err := time.ParseInLocation(time.DateOnly, day, time.UTC)
				if err != nil {
					return fmt.Errorf("%w: day %q", domain.ErrInvalidRange, day)
				}
				opts.Day = parsed
			}

			conn, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer conn.Close()

			res, err := seed.Run(cmd.Context(), conn, opts)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seed aplicado em %s (%d upserts)\n", res.WorkspaceID, res.Statements)

			if skipRollup {
				return nil
			}
			return materializeRange(cmd.Context(), cmd.OutOrStdout(), newMaterializer(conn), res.WorkspaceID, domain.DayRange(res.Day))
		},
	}

	cmd.Flags().StringVar(&workspaceID, "workspace", seed.DemoWorkspaceID, "id do workspace de demonstração")
	cmd.Flags().StringVar(&day, "day", "", "dia dos pedidos (YYYY-MM-DD), padrão hoje UTC")
	cmd.Flags().BoolVar(&skipRollup, "skip-rollup", false, "não materializa o rollup do dia")
	return cmd
}
