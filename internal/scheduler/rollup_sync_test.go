package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/workspace-analytics-api/infrastructure/repository/mocks"
	"github.com/vfg2006/workspace-analytics-api/internal/config"
	"github.com/vfg2006/workspace-analytics-api/internal/domain"
	rollupmocks "github.com/vfg2006/workspace-analytics-api/internal/usecases/rollup/mocks"
	"go.uber.org/mock/gomock"
)

func newTestSyncService(t *testing.T, lookback int) (*RollupSyncService, *mocks.MockWorkspaceRepository, *rollupmocks.MockMaterializer) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	workspaceRepo := mocks.NewMockWorkspaceRepository(ctrl)
	materializer := rollupmocks.NewMockMaterializer(ctrl)

	cfg := &config.Config{RollupSync: config.RollupSync{
		CronSchedule:      "15 0 * * *",
		LookbackDays:      lookback,
		MaxConcurrentJobs: 2,
	}}
	s := NewRollupSyncService(workspaceRepo, materializer, cfg)
	s.now = func() time.Time { return time.Date(2024, 3, 10, 0, 15, 0, 0, time.UTC) }
	return s, workspaceRepo, materializer
}

func TestRollupSyncService_syncRollups(t *testing.T) {
	today := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)

	tests := []struct {
		name     string
		setup    func(repo *mocks.MockWorkspaceRepository, m *rollupmocks.MockMaterializer)
		validate func(t *testing.T, summary *SyncSummary)
	}{
		{
			name: "Dois workspaces e dois dias - materializa hoje e ontem",
			setup: func(repo *mocks.MockWorkspaceRepository, m *rollupmocks.MockMaterializer) {
				repo.EXPECT().List(gomock.Any()).Return([]domain.Workspace{{ID: "ws-a"}, {ID: "ws-b"}}, nil)
				for _, ws := range []string{"ws-a", "ws-b"} {
					m.EXPECT().MaterializeDay(gomock.Any(), ws, today).Return(&domain.RollupResult{}, nil)
					m.EXPECT().MaterializeDay(gomock.Any(), ws, yesterday).Return(&domain.RollupResult{}, nil)
				}
			},
			validate: func(t *testing.T, summary *SyncSummary) {
				assert.Equal(t, &SyncSummary{Workspaces: 2, Days: 2, Succeeded: 4}, summary)
			},
		},
		{
			name: "Falha em um dia - demais seguem e a falha é contada",
			setup: func(repo *mocks.MockWorkspaceRepository, m *rollupmocks.MockMaterializer) {
				repo.EXPECT().List(gomock.Any()).Return([]domain.Workspace{{ID: "ws-a"}}, nil)
				m.EXPECT().MaterializeDay(gomock.Any(), "ws-a", today).Return(nil, errors.New("timeout"))
				m.EXPECT().MaterializeDay(gomock.Any(), "ws-a", yesterday).Return(&domain.RollupResult{}, nil)
			},
			validate: func(t *testing.T, summary *SyncSummary) {
				assert.Equal(t, 1, summary.Succeeded)
				assert.Equal(t, 1, summary.Failed)
			},
		},
		{
			name: "Erro ao listar workspaces - nada materializado",
			setup: func(repo *mocks.MockWorkspaceRepository, m *rollupmocks.MockMaterializer) {
				repo.EXPECT().List(gomock.Any()).Return(nil, errors.New("db fora"))
			},
			validate: func(t *testing.T, summary *SyncSummary) {
				assert.Equal(t, &SyncSummary{}, summary)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, repo, m := newTestSyncService(t, 2)
			tt.setup(repo, m)

			summary := s.syncRollups(context.Background())
			tt.validate(t, summary)
			assert.False(t, s.GetStatus()["sync_running"].(bool))
		})
	}
}

func TestRollupSyncService_syncRollups_SemSobreposicao(t *testing.T) {
	s, repo, m := newTestSyncService(t, 1)

	started := make(chan struct{})
	unblock := make(chan struct{})
	repo.EXPECT().List(gomock.Any()).Return([]domain.Workspace{{ID: "ws-a"}}, nil).Times(1)
	m.EXPECT().MaterializeDay(gomock.Any(), "ws-a", gomock.Any()).
		DoAndReturn(func(ctx context.Context, workspaceID string, day time.Time) (*domain.RollupResult, error) {
			close(started)
			<-unblock
			return &domain.RollupResult{}, nil
		})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.syncRollups(context.Background())
	}()

	<-started
	assert.Nil(t, s.syncRollups(context.Background()))
	assert.False(t, s.TriggerManualSync())
	close(unblock)
	wg.Wait()
}

func TestRollupSyncService_TriggerManualSync_ReservaAntesDeIniciar(t *testing.T) {
	s, repo, m := newTestSyncService(t, 1)

	unblock := make(chan struct{})
	repo.EXPECT().List(gomock.Any()).DoAndReturn(func(ctx context.Context) ([]domain.Workspace, error) {
		<-unblock
		return []domain.Workspace{{ID: "ws-a"}}, nil
	}).Times(1)
	m.EXPECT().MaterializeDay(gomock.Any(), "ws-a", gomock.Any()).Return(&domain.RollupResult{}, nil).Times(1)

	require.True(t, s.TriggerManualSync())

	// a execução aceita já ocupa o agendador, mesmo antes da goroutine rodar
	assert.Nil(t, s.syncRollups(context.Background()))
	assert.False(t, s.TriggerManualSync())
	assert.True(t, s.GetStatus()["sync_running"].(bool))

	close(unblock)
	require.NoError(t, s.Wait(context.Background()))

	assert.False(t, s.GetStatus()["sync_running"].(bool))
	assert.Equal(t, &SyncSummary{Workspaces: 1, Days: 1, Succeeded: 1}, s.lastSummary)
}

func TestRollupSyncService_Wait_RespeitaContexto(t *testing.T) {
	s, _, m := newTestSyncService(t, 1)

	unblock := make(chan struct{})
	m.EXPECT().MaterializeDay(gomock.Any(), "ws-a", gomock.Any()).
		DoAndReturn(func(ctx context.Context, workspaceID string, day time.Time) (*domain.RollupResult, error) {
			<-unblock
			return &domain.RollupResult{}, nil
		})

	s.TriggerDay("ws-a", time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, s.Wait(ctx), context.DeadlineExceeded)

	close(unblock)
	require.NoError(t, s.Wait(context.Background()))
}

func TestRollupSyncService_TriggerDay(t *testing.T) {
	day := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		err        error
		wantStatus string
		wantSku    int
	}{
		{name: "Sucesso - execução concluída", wantStatus: RunStatusDone, wantSku: 3},
		{name: "Erro - execução marcada como falha", err: errors.New("falhou"), wantStatus: RunStatusFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, m := newTestSyncService(t, 1)

			var result *domain.RollupResult
			if tt.err == nil {
				result = &domain.RollupResult{WorkspaceID: "ws-a", Day: "2024-03-09", SkuUpserted: 3}
			}
			m.EXPECT().MaterializeDay(gomock.Any(), "ws-a", day).Return(result, tt.err)

			runID := s.TriggerDay("ws-a", day)
			require.NotEmpty(t, runID)
			require.NoError(t, s.Wait(context.Background()))

			run, ok := s.Run(runID)
			require.True(t, ok)
			assert.Equal(t, tt.wantStatus, run.Status)
			assert.Equal(t, tt.wantSku, run.SkuUpserted)
			assert.Equal(t, "2024-03-09", run.Day)
			assert.NotNil(t, run.CompletedAt)

			recent := s.GetStatus()["recent_runs"].([]RunStatus)
			assert.Len(t, recent, 1)
		})
	}
}

func TestRollupSyncService_lookbackDays(t *testing.T) {
	s, _, _ := newTestSyncService(t, 3)

	days := s.lookbackDays(time.Date(2024, 3, 1, 23, 59, 0, 0, time.UTC))
	require.Len(t, days, 3)
	assert.Equal(t, "2024-03-01", days[0].Format(time.DateOnly))
	assert.Equal(t, "2024-02-29", days[2].Format(time.DateOnly))
}
