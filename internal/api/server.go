package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/workspace-analytics-api/internal/api/handler"
	"github.com/vfg2006/workspace-analytics-api/internal/api/handler/router"
	"github.com/vfg2006/workspace-analytics-api/internal/config"
	"github.com/vfg2006/workspace-analytics-api/internal/usecases/analytics"
	"github.com/vfg2006/workspace-analytics-api/internal/usecases/authenticating"
	"github.com/vfg2006/workspace-analytics-api/internal/usecases/forecasting"
	"github.com/vfg2006/workspace-analytics-api/internal/usecases/planning"
	"github.com/vfg2006/workspace-analytics-api/internal/usecases/risk"
	"github.com/vfg2006/workspace-analytics-api/pkg/middleware"
)

const defaultShutdownTimeout = 15 * time.Second

// Services agrupa os casos de uso expostos pela API
type Services struct {
	Analyzer      analytics.Analyzer
	Detector      risk.Detector
	Planner       planning.Planner
	Forecaster    forecasting.Forecaster
	Authenticator authenticating.Authenticator
	Rollups       handler.RollupTrigger
}

type Server struct {
	httpServer      *http.Server
	shutdownTimeout time.Duration
}

// NewHandler monta o router com a cadeia global de middlewares
func NewHandler(cfg *config.Config, services Services) http.Handler {
	auth := services.Authenticator

	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.KPIs(services.Analyzer, auth)...),
		router.WithRoutes(handler.Metrics(services.Analyzer, services.Rollups, auth)...),
		router.WithRoutes(handler.Risks(services.Detector, auth)...),
		router.WithRoutes(handler.Planning(services.Planner, auth)...),
		router.WithRoutes(handler.Forecasts(services.Forecaster, auth)...),
		router.WithRoutes(handler.CronJobs(services.Rollups, auth)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(cfg.Server.AllowedOrigins),
		middleware.AuthMiddleware(auth),
	}

	return alice.New(middlewares...).Then(rt)
}

func New(cfg *config.Config, services Services) (*Server, error) {
	if services.Analyzer == nil || services.Detector == nil || services.Planner == nil ||
		services.Forecaster == nil || services.Authenticator == nil || services.Rollups == nil {
		return nil, fmt.Errorf("serviços da API incompletos")
	}

	shutdownTimeout := cfg.Server.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
			Handler:           NewHandler(cfg, services),
			ReadHeaderTimeout: 2 * time.Second,
		},
		shutdownTimeout: shutdownTimeout,
	}

	return srv, nil
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	// Canal para aguardar sinais de término
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	// Aguardar pelo sinal ou pelo cancelamento do contexto
	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	// Define timeout para desligamento
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	// Log de início do desligamento
	logrus.WithFields(logrus.Fields{
		"timeout": s.shutdownTimeout.String(),
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	logrus.Info("Executando operações de limpeza antes do desligamento")

	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		return err
	}

	logrus.Info("Servidor HTTP desligado com sucesso")
	return nil
}
