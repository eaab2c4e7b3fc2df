package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Aplica as migrações pendentes",
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer conn.Close()

			if dryRun {
				pending, err := conn.PendingMigrations()
				if err != nil {
					return err
				}
				for _, id := range pending {
					fmt.Fprintln(cmd.OutOrStdout(), id)
				}
				return nil
			}

			n, err := conn.Migrate(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d migrações aplicadas\n", n)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "apenas lista as migrações pendentes")
	return cmd
}
