package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/vfg2006/workspace-analytics-api/infrastructure/database/postgres"
	"github.com/vfg2006/workspace-analytics-api/infrastructure/repository"
	"github.com/vfg2006/workspace-analytics-api/internal/domain"
	"github.com/vfg2006/workspace-analytics-api/internal/usecases/rollup"
)

func materializeCmd() *cobra.Command {
	var workspaceID, from, to string

	cmd := &cobra.Command{
		Use:   "materialize",
		Short: "Recalcula os rollups diários de um workspace em um intervalo",
		RunE: func(cmd *cobra.Command, args []string) error {
			if to == "" {
				to = from
			}
			rng, err := domain.ParseDateRange(from, to)
			if err != nil {
				return err
			}

			conn, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer conn.Close()

			return materializeRange(cmd.Context(), cmd.OutOrStdout(), newMaterializer(conn), workspaceID, rng)
		},
	}

	cmd.Flags().StringVar(&workspaceID, "workspace", "", "id do workspace")
	cmd.Flags().StringVar(&from, "from", "", "primeiro dia (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "último dia, inclusivo (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("workspace")
	_ = cmd.MarkFlagRequired("from")
	return cmd
}

func newMaterializer(conn *postgres.Connection) rollup.Materializer {
	return rollup.NewService(
		repository.NewDailyMetricRepository(conn),
		repository.NewSkuDailyMetricRepository(conn),
		repository.NewOrderRepository(conn),
		repository.NewLedgerRepository(conn),
		repository.NewInventoryRepository(conn),
	)
}

// materializeRange processa os dias em ordem e para no primeiro erro
func materializeRange(ctx context.Context, out io.Writer, m rollup.Materializer, workspaceID string, rng domain.DateRange) error {
	for day := rng.From; day.Before(rng.ToExclusive); day = day.AddDate(0, 0, 1) {
		result, err := m.MaterializeDay(ctx, workspaceID, day)
		if err != nil {
			return errors.Wrapf(err, "materializar %s", day.Format(time.DateOnly))
		}
		fmt.Fprintf(out, "%s\t%s\tskus=%d\n", workspaceID, result.Day, result.SkuUpserted)
	}
	return nil
}
