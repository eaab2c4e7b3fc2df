package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vfg2006/workspace-analytics-api/infrastructure/database/postgres"
	"github.com/vfg2006/workspace-analytics-api/internal/config"
	"github.com/vfg2006/workspace-analytics-api/pkg/log"
)

var (
	rootCmd = &cobra.Command{
		Use:           "rollupctl",
		Short:         "Ferramentas de operação do workspace-analytics-api",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig()
		},
	}

	cfg *config.Config
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	rootCmd.AddCommand(migrateCmd(), materializeCmd(), seedCmd(), tokenCmd())
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		logrus.WithError(err).Error("Falha ao executar comando")
		os.Exit(1)
	}
}

func loadConfig() error {
	c, err := config.NewConfig()
	if err != nil {
		return err
	}

	log.Configure(c.App.LogLevel)
	cfg = c
	return nil
}

func connect(ctx context.Context) (*postgres.Connection, error) {
	return postgres.NewConnection(ctx, cfg.Database)
}
