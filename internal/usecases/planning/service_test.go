package planning

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	repomocks "github.com/vfg2006/workspace-analytics-api/infrastructure/repository/mocks"
	"github.com/vfg2006/workspace-analytics-api/internal/domain"
	analyticsmocks "github.com/vfg2006/workspace-analytics-api/internal/usecases/analytics/mocks"
	riskmocks "github.com/vfg2006/workspace-analytics-api/internal/usecases/risk/mocks"
	"github.com/vfg2006/workspace-analytics-api/pkg/log"
	"github.com/vfg2006/workspace-analytics-api/pkg/utils"
	"go.uber.org/mock/gomock"
)

type planningMocks struct {
	analyzer *analyticsmocks.MockAnalyzer
	detector *riskmocks.MockDetector
	plans    *repomocks.MockPlanRepository
}

func newTestService(ctrl *gomock.Controller) (*Service, planningMocks) {
	m := planningMocks{
		analyzer: analyticsmocks.NewMockAnalyzer(ctrl),
		detector: riskmocks.NewMockDetector(ctrl),
		plans:    repomocks.NewMockPlanRepository(ctrl),
	}
	s := NewService(m.analyzer, m.detector, m.plans)
	s.now = func() time.Time { return time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC) }
	return s, m
}

func (m planningMocks) expectInputs(rng domain.DateRange) {
	compareTo := rng.PreviousPeriod()
	m.analyzer.EXPECT().KPISummary(gomock.Any(), "ws-1", rng).
		Return(&domain.KPISummary{Totals: domain.KPITotals{Revenue: dec("100")}}, nil)
	m.detector.EXPECT().OpsRisk(gomock.Any(), "ws-1", rng).
		Return(&domain.OpsRisk{Risk: domain.SeverityLow}, nil)
	m.detector.EXPECT().StockoutRisk(gomock.Any(), "ws-1", rng, nil, utils.IntPtr(20)).
		Return(&domain.StockoutRisk{}, nil)
	m.detector.EXPECT().LowStockRisk(gomock.Any(), "ws-1", nil, utils.IntPtr(20)).
		Return(&domain.LowStockRisk{Threshold: 10}, nil)
	m.detector.EXPECT().MarginLeakage(gomock.Any(), "ws-1", rng, &compareTo).
		Return(&domain.MarginLeakageRisk{Risk: domain.SeverityLow}, nil)
	m.detector.EXPECT().RefundSpike(gomock.Any(), "ws-1", rng, &compareTo).
		Return(&domain.RateSpikeRisk{Risk: domain.SeverityLow}, nil)
	m.detector.EXPECT().FeeSpike(gomock.Any(), "ws-1", rng, &compareTo).
		Return(&domain.RateSpikeRisk{Risk: domain.SeverityMedium}, nil)
}

func TestService_Output(t *testing.T) {
	log.SetupTestLogger()

	rng := mustRange(t, "2024-01-01", "2024-01-07")

	t.Run("Sete consultas combinadas na síntese", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newTestService(ctrl)
		m.expectInputs(rng)

		out, err := service.Output(context.Background(), "ws-1", rng)
		require.NoError(t, err)

		assert.Equal(t, "ws-1", out.WorkspaceID)
		assert.Equal(t, "Revenue: 100.00 | Orders: 0 | Units: 0", out.StatusBullets[1])
		assert.Equal(t, "Fee spike risk", out.TopRisks[0].Title)
		assert.Len(t, out.Next7DaysPlan, 7)
	})

	t.Run("Falha em um detector - erro propagado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newTestService(ctrl)
		m.analyzer.EXPECT().KPISummary(gomock.Any(), gomock.Any(), gomock.Any()).Return(&domain.KPISummary{}, nil).AnyTimes()
		m.detector.EXPECT().OpsRisk(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout")).AnyTimes()
		m.detector.EXPECT().StockoutRisk(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(&domain.StockoutRisk{}, nil).AnyTimes()
		m.detector.EXPECT().LowStockRisk(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(&domain.LowStockRisk{}, nil).AnyTimes()
		m.detector.EXPECT().MarginLeakage(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(&domain.MarginLeakageRisk{}, nil).AnyTimes()
		m.detector.EXPECT().RefundSpike(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(&domain.RateSpikeRisk{}, nil).AnyTimes()
		m.detector.EXPECT().FeeSpike(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(&domain.RateSpikeRisk{}, nil).AnyTimes()

		_, err := service.Output(context.Background(), "ws-1", rng)
		assert.Error(t, err)
	})
}

func TestService_CreatePlan(t *testing.T) {
	log.SetupTestLogger()

	rng := mustRange(t, "2024-01-01", "2024-01-07")
	title := "Plano de janeiro"

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, m := newTestService(ctrl)
	m.expectInputs(rng)

	var stored *domain.Plan
	m.plans.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p *domain.Plan) error {
		stored = p
		return nil
	})

	plan, err := service.CreatePlan(context.Background(), "ws-1", rng, &title)
	require.NoError(t, err)

	require.NotNil(t, stored)
	assert.Equal(t, stored, plan)
	assert.NotEmpty(t, plan.ID)
	assert.Equal(t, domain.PlanStatusDraft, plan.Status)
	assert.Equal(t, &title, plan.Title)
	assert.Equal(t, "2024-01-07", plan.RangeTo.Format(time.DateOnly))
	assert.Equal(t, time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC), plan.CreatedAt)
	assert.Contains(t, string(plan.Result), `"statusBullets"`)
	assert.Contains(t, string(plan.Assumptions), `"noExternalWebData":true`)
}

func TestService_ListPlans(t *testing.T) {
	log.SetupTestLogger()

	tests := []struct {
		name         string
		filter       domain.PlanFilter
		wantPage     int
		wantPageSize int
	}{
		{
			name:         "Sem paginação - padrões aplicados",
			filter:       domain.PlanFilter{},
			wantPage:     1,
			wantPageSize: 25,
		},
		{
			name:         "Tamanho acima do máximo - limitado a 200",
			filter:       domain.PlanFilter{Page: 3, PageSize: 1000},
			wantPage:     3,
			wantPageSize: 200,
		},
		{
			name:         "Tamanho negativo - limitado a 1",
			filter:       domain.PlanFilter{Page: -2, PageSize: -5},
			wantPage:     1,
			wantPageSize: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service, m := newTestService(ctrl)
			m.plans.EXPECT().List(gomock.Any(), "ws-1", domain.PlanFilter{Page: tt.wantPage, PageSize: tt.wantPageSize}).
				Return(nil, int64(0), nil)

			got, err := service.ListPlans(context.Background(), "ws-1", tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, got.Page)
			assert.Equal(t, tt.wantPageSize, got.PageSize)
			assert.NotNil(t, got.Items)
		})
	}
}

func TestService_GetPlan(t *testing.T) {
	log.SetupTestLogger()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, m := newTestService(ctrl)
	m.plans.EXPECT().GetByID(gomock.Any(), "ws-1", "missing").Return(nil, nil)
	m.plans.EXPECT().GetByID(gomock.Any(), "ws-1", "p1").Return(&domain.Plan{ID: "p1"}, nil)

	_, err := service.GetPlan(context.Background(), "ws-1", "missing")
	assert.ErrorIs(t, err, domain.ErrPlanNotFound)

	plan, err := service.GetPlan(context.Background(), "ws-1", "p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", plan.ID)
}
