package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/workspace-analytics-api/infrastructure/database/postgres"
	"github.com/vfg2006/workspace-analytics-api/infrastructure/repository"
	"github.com/vfg2006/workspace-analytics-api/internal/api"
	"github.com/vfg2006/workspace-analytics-api/internal/config"
	"github.com/vfg2006/workspace-analytics-api/internal/scheduler"
	"github.com/vfg2006/workspace-analytics-api/internal/usecases/analytics"
	"github.com/vfg2006/workspace-analytics-api/internal/usecases/authenticating"
	"github.com/vfg2006/workspace-analytics-api/internal/usecases/forecasting"
	"github.com/vfg2006/workspace-analytics-api/internal/usecases/planning"
	"github.com/vfg2006/workspace-analytics-api/internal/usecases/risk"
	"github.com/vfg2006/workspace-analytics-api/internal/usecases/rollup"
	"github.com/vfg2006/workspace-analytics-api/pkg/log"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logrus.Infof("Nível de log configurado para: %s", log.Configure(cfg.App.LogLevel))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	if cfg.Database.AutoMigrate {
		if _, err := pgConn.Migrate(ctx); err != nil {
			logrus.WithError(err).Fatal("Erro ao aplicar migrações")
		}
	}

	workspaceRepo := repository.NewWorkspaceRepository(pgConn)
	dailyRepo := repository.NewDailyMetricRepository(pgConn)
	skuRepo := repository.NewSkuDailyMetricRepository(pgConn)
	orderRepo := repository.NewOrderRepository(pgConn)
	ledgerRepo := repository.NewLedgerRepository(pgConn)
	inventoryRepo := repository.NewInventoryRepository(pgConn)
	productRepo := repository.NewProductRepository(pgConn)
	planRepo := repository.NewPlanRepository(pgConn)
	forecastRepo := repository.NewForecastRepository(pgConn)

	authenticator := authenticating.NewService(workspaceRepo, cfg.Auth)
	analyzer := analytics.NewService(cfg.Analytics, dailyRepo, skuRepo, orderRepo, ledgerRepo)
	detector := risk.NewService(risk.ThresholdsFromConfig(cfg.Risk), inventoryRepo, skuRepo, orderRepo, ledgerRepo)
	planner := planning.NewService(analyzer, detector, planRepo)
	forecaster := forecasting.NewService(dailyRepo, skuRepo, productRepo, forecastRepo)
	materializer := rollup.NewService(dailyRepo, skuRepo, orderRepo, ledgerRepo, inventoryRepo)

	rollupSyncService := scheduler.NewRollupSyncService(workspaceRepo, materializer, cfg)

	// Inicia o agendador em background
	if err := rollupSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de rollups")
	} else {
		logrus.Info("Agendador de rollups iniciado com sucesso")
	}

	server, err := api.New(cfg, api.Services{
		Analyzer:      analyzer,
		Detector:      detector,
		Planner:       planner,
		Forecaster:    forecaster,
		Authenticator: authenticator,
		Rollups:       rollupSyncService,
	})
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}

	waitCtx, cancelWait := context.WithTimeout(context.Background(), max(cfg.Server.ShutdownTimeout, 15*time.Second))
	defer cancelWait()
	if err := rollupSyncService.Wait(waitCtx); err != nil {
		logrus.WithError(err).Warn("Materializações manuais interrompidas no desligamento")
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
