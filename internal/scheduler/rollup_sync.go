package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/workspace-analytics-api/infrastructure/repository"
	"github.com/vfg2006/workspace-analytics-api/internal/config"
	"github.com/vfg2006/workspace-analytics-api/internal/domain"
	"github.com/vfg2006/workspace-analytics-api/internal/usecases/rollup"
	"github.com/vfg2006/workspace-analytics-api/pkg/utils"
)

const maxTrackedRuns = 50

// RollupSyncConfig representa a configuração do agendador de rollups
type RollupSyncConfig struct {
	CronSchedule      string
	LookbackDays      int
	MaxConcurrentJobs int
	SyncEnabled       bool
}

// RunStatus descreve uma materialização disparada manualmente
type RunStatus struct {
	ID          string     `json:"id"`
	WorkspaceID string     `json:"workspaceId"`
	Day         string     `json:"day"`
	Status      string     `json:"status"`
	SkuUpserted int        `json:"skuUpserted"`
	Error       string     `json:"error,omitempty"`
	StartedAt   time.Time  `json:"startedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

const (
	RunStatusRunning = "running"
	RunStatusDone    = "done"
	RunStatusFailed  = "failed"
)

// SyncSummary resume uma execução completa sobre todos os workspaces
type SyncSummary struct {
	Workspaces int `json:"workspaces"`
	Days       int `json:"days"`
	Succeeded  int `json:"succeeded"`
	Failed     int `json:"failed"`
}

// RollupSyncService materializa os rollups diários de todos os workspaces
type RollupSyncService struct {
	scheduler           *gocron.Scheduler
	config              RollupSyncConfig
	workspaceRepo       repository.WorkspaceRepository
	materializer        rollup.Materializer
	now                 func() time.Time
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSummary         *SyncSummary
	runs                map[string]*RunStatus
	runOrder            []string
	inflight            sync.WaitGroup
}

func NewRollupSyncService(
	workspaceRepo repository.WorkspaceRepository,
	materializer rollup.Materializer,
	appConfig *config.Config,
) *RollupSyncService {
	syncConfig := RollupSyncConfig{
		CronSchedule:      appConfig.RollupSync.CronSchedule,
		LookbackDays:      max(appConfig.RollupSync.LookbackDays, 1),
		MaxConcurrentJobs: max(appConfig.RollupSync.MaxConcurrentJobs, 1),
		SyncEnabled:       appConfig.RollupSync.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":       syncConfig.CronSchedule,
		"lookback_days":       syncConfig.LookbackDays,
		"max_concurrent_jobs": syncConfig.MaxConcurrentJobs,
		"sync_enabled":        syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de rollups carregada")

	return &RollupSyncService{
		scheduler:     gocron.NewScheduler(time.UTC),
		config:        syncConfig,
		workspaceRepo: workspaceRepo,
		materializer:  materializer,
		now:           time.Now,
		runs:          make(map[string]*RunStatus),
	}
}

// Start inicia o agendador
func (s *RollupSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Materialização agendada de rollups desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de rollups")

	_, err := s.scheduler.Cron(s.config.CronSchedule).SingletonMode().Do(func() {
		s.syncRollups(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar materialização de rollups: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de rollups")
		s.scheduler.Stop()
	}()

	return nil
}

// syncRollups materializa a janela de lookback de todos os workspaces.
// Devolve nil quando outra execução já está em andamento.
func (s *RollupSyncService) syncRollups(ctx context.Context) *SyncSummary {
	if !s.acquire() {
		logrus.Info("Materialização de rollups já em andamento, ignorando")
		return nil
	}
	defer s.release()

	return s.runSync(ctx)
}

// runSync executa a materialização. O chamador precisa ter obtido acquire.
func (s *RollupSyncService) runSync(ctx context.Context) *SyncSummary {
	startTime := s.now()
	s.syncMutex.Lock()
	s.lastSyncStartedAt = startTime
	s.syncMutex.Unlock()

	workspaces, err := s.workspaceRepo.List(ctx)
	if err != nil {
		logrus.WithError(errors.Wrap(err, "listar workspaces")).Error("Erro ao buscar workspaces para materialização")
		return &SyncSummary{}
	}

	days := s.lookbackDays(startTime)
	summary := s.processWorkspaces(ctx, workspaces, days)

	s.syncMutex.Lock()
	s.lastSyncCompletedAt = s.now()
	s.lastSummary = summary
	s.syncMutex.Unlock()

	logrus.WithFields(logrus.Fields{
		"duration":   time.Since(startTime).String(),
		"workspaces": summary.Workspaces,
		"days":       summary.Days,
		"succeeded":  summary.Succeeded,
		"failed":     summary.Failed,
	}).Info("Materialização de rollups concluída")

	return summary
}

// lookbackDays devolve hoje e os dias anteriores da janela, em UTC
func (s *RollupSyncService) lookbackDays(now time.Time) []time.Time {
	today := now.UTC().Truncate(24 * time.Hour)
	days := make([]time.Time, 0, s.config.LookbackDays)
	for i := 0; i < s.config.LookbackDays; i++ {
		days = append(days, today.AddDate(0, 0, -i))
	}
	return days
}

func (s *RollupSyncService) processWorkspaces(ctx context.Context, workspaces []domain.Workspace, days []time.Time) *SyncSummary {
	summary := &SyncSummary{Workspaces: len(workspaces), Days: len(days)}

	semaphore := make(chan struct{}, s.config.MaxConcurrentJobs)
	var wg sync.WaitGroup
	var mu sync.Mutex

	for _, ws := range workspaces {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(ws domain.Workspace) {
			defer func() {
				<-semaphore
				wg.Done()
			}()

			for _, day := range days {
				_, err := s.materializer.MaterializeDay(ctx, ws.ID, day)

				mu.Lock()
				if err != nil {
					summary.Failed++
				} else {
					summary.Succeeded++
				}
				mu.Unlock()

				if err != nil {
					logrus.WithError(err).WithFields(logrus.Fields{
						"workspace_id": ws.ID,
						"day":          day.Format(time.DateOnly),
					}).Error("Erro ao materializar rollup")
				}
			}
		}(ws)
	}

	wg.Wait()
	return summary
}

func (s *RollupSyncService) acquire() bool {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()
	if s.syncRunning {
		return false
	}
	s.syncRunning = true
	return true
}

func (s *RollupSyncService) release() {
	s.syncMutex.Lock()
	s.syncRunning = false
	s.syncMutex.Unlock()
}

// TriggerManualSync inicia manualmente a materialização de todos os workspaces.
// Devolve false quando já existe uma execução em andamento.
func (s *RollupSyncService) TriggerManualSync() bool {
	if !s.acquire() {
		logrus.Info("Materialização de rollups já em andamento, ignorando solicitação manual")
		return false
	}

	logrus.Info("Iniciando materialização manual de rollups")
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		defer s.release()
		s.runSync(context.Background())
	}()
	return true
}

// Wait aguarda as execuções manuais em andamento ou o fim de ctx.
func (s *RollupSyncService) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "aguardando materializações manuais")
	}
}

// TriggerDay materializa um único dia de um workspace em segundo plano e
// devolve o id da execução para consulta em GetStatus.
func (s *RollupSyncService) TriggerDay(workspaceID string, day time.Time) string {
	runID, err := utils.GenerateID()
	if err != nil {
		runID = fmt.Sprintf("run-%d", s.now().UnixNano())
	}

	run := &RunStatus{
		ID:          runID,
		WorkspaceID: workspaceID,
		Day:         day.UTC().Format(time.DateOnly),
		Status:      RunStatusRunning,
		StartedAt:   s.now().UTC(),
	}
	s.trackRun(run)

	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()

		result, err := s.materializer.MaterializeDay(context.Background(), workspaceID, day)

		s.syncMutex.Lock()
		defer s.syncMutex.Unlock()
		completedAt := s.now().UTC()
		run.CompletedAt = &completedAt
		if err != nil {
			run.Status = RunStatusFailed
			run.Error = err.Error()
			logrus.WithError(err).WithFields(logrus.Fields{
				"run_id":       runID,
				"workspace_id": workspaceID,
				"day":          run.Day,
			}).Error("Erro na materialização manual")
			return
		}
		run.Status = RunStatusDone
		if result != nil {
			run.SkuUpserted = result.SkuUpserted
		}
	}()

	return runID
}

func (s *RollupSyncService) trackRun(run *RunStatus) {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	s.runs[run.ID] = run
	s.runOrder = append(s.runOrder, run.ID)
	if len(s.runOrder) > maxTrackedRuns {
		delete(s.runs, s.runOrder[0])
		s.runOrder = s.runOrder[1:]
	}
}

// Run devolve uma cópia do estado de uma execução manual
func (s *RollupSyncService) Run(id string) (RunStatus, bool) {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	run, ok := s.runs[id]
	if !ok {
		return RunStatus{}, false
	}
	return *run, true
}

// GetStatus retorna o status atual do agendador
func (s *RollupSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	recent := make([]RunStatus, 0, len(s.runOrder))
	for i := len(s.runOrder) - 1; i >= 0; i-- {
		recent = append(recent, *s.runs[s.runOrder[i]])
	}

	return map[string]any{
		"sync_running":           s.syncRunning,
		"sync_cron":              s.config.CronSchedule,
		"sync_enabled":           s.config.SyncEnabled,
		"lookback_days":          s.config.LookbackDays,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_sync_summary":      s.lastSummary,
		"recent_runs":            recent,
	}
}
