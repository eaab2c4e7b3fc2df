package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/workspace-analytics-api/internal/api/handler/router"
	"github.com/vfg2006/workspace-analytics-api/internal/domain"
	analyticsmocks "github.com/vfg2006/workspace-analytics-api/internal/usecases/analytics/mocks"
	authmocks "github.com/vfg2006/workspace-analytics-api/internal/usecases/authenticating/mocks"
	forecastmocks "github.com/vfg2006/workspace-analytics-api/internal/usecases/forecasting/mocks"
	planningmocks "github.com/vfg2006/workspace-analytics-api/internal/usecases/planning/mocks"
	riskmocks "github.com/vfg2006/workspace-analytics-api/internal/usecases/risk/mocks"
	"github.com/vfg2006/workspace-analytics-api/pkg/apiErrors"
	"github.com/vfg2006/workspace-analytics-api/pkg/log"
	"github.com/vfg2006/workspace-analytics-api/pkg/middleware"
	"go.uber.org/mock/gomock"
)

const testWorkspace = "ws-1"

type fakeTrigger struct {
	busy     bool
	days     []time.Time
	triggers int
}

func (f *fakeTrigger) TriggerManualSync() bool {
	f.triggers++
	return !f.busy
}

func (f *fakeTrigger) TriggerDay(workspaceID string, day time.Time) string {
	f.days = append(f.days, day)
	return "run-1"
}

func (f *fakeTrigger) GetStatus() map[string]any {
	return map[string]any{"sync_running": f.busy}
}

type testDeps struct {
	analyzer   *analyticsmocks.MockAnalyzer
	detector   *riskmocks.MockDetector
	planner    *planningmocks.MockPlanner
	forecaster *forecastmocks.MockForecaster
	auth       *authmocks.MockAuthenticator
	trigger    *fakeTrigger
	handler    http.Handler
}

// newTestHandler monta todas as rotas com o workspace resolvido como
// acesso anônimo, ou como o membro informado.
func newTestHandler(t *testing.T, member *domain.WorkspaceMember) *testDeps {
	t.Helper()
	log.SetupTestLogger()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	d := &testDeps{
		analyzer:   analyticsmocks.NewMockAnalyzer(ctrl),
		detector:   riskmocks.NewMockDetector(ctrl),
		planner:    planningmocks.NewMockPlanner(ctrl),
		forecaster: forecastmocks.NewMockForecaster(ctrl),
		auth:       authmocks.NewMockAuthenticator(ctrl),
		trigger:    &fakeTrigger{},
	}

	d.auth.EXPECT().ResolveWorkspace(gomock.Any(), testWorkspace, gomock.Any()).
		Return(&domain.Workspace{ID: testWorkspace}, member, nil).AnyTimes()

	d.handler = router.New(
		router.WithRoutes(Healthcheck()...),
		router.WithRoutes(KPIs(d.analyzer, d.auth)...),
		router.WithRoutes(Metrics(d.analyzer, d.trigger, d.auth)...),
		router.WithRoutes(Risks(d.detector, d.auth)...),
		router.WithRoutes(Planning(d.planner, d.auth)...),
		router.WithRoutes(Forecasts(d.forecaster, d.auth)...),
		router.WithRoutes(CronJobs(d.trigger, d.auth)...),
	)
	return d
}

func (d *testDeps) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.Header.Set(middleware.WorkspaceHeader, testWorkspace)

	rec := httptest.NewRecorder()
	d.handler.ServeHTTP(rec, req)
	return rec
}

func mustRange(t *testing.T, from, to string) domain.DateRange {
	rng, err := domain.ParseDateRange(from, to)
	require.NoError(t, err)
	return rng
}

func TestHealthcheck(t *testing.T) {
	d := newTestHandler(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
	rec := httptest.NewRecorder()
	d.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestGetKPISummary(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		setup      func(d *testDeps)
		wantStatus int
		wantBody   string
	}{
		{
			name:   "Intervalo válido - totais devolvidos",
			target: "/v1/kpis/summary?from=2024-01-01&to=2024-01-02",
			setup: func(d *testDeps) {
				rng := mustRange(t, "2024-01-01", "2024-01-02")
				d.analyzer.EXPECT().KPISummary(gomock.Any(), testWorkspace, rng).Return(&domain.KPISummary{
					WorkspaceID: testWorkspace,
					Range:       rng,
					Totals:      domain.KPITotals{Revenue: decimal.NewFromInt(300)},
					Note:        "totais",
				}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `"revenue":"300"`,
		},
		{
			name:       "Sem from - intervalo inválido",
			target:     "/v1/kpis/summary?to=2024-01-02",
			setup:      func(d *testDeps) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   apiErrors.ErrInvalidRange,
		},
		{
			name:       "Data malformada - intervalo inválido",
			target:     "/v1/kpis/summary?from=2024-13-01&to=2024-01-02",
			setup:      func(d *testDeps) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   apiErrors.ErrInvalidRange,
		},
		{
			name:   "Falha no repositório - 500",
			target: "/v1/kpis/summary?from=2024-01-01&to=2024-01-02",
			setup: func(d *testDeps) {
				d.analyzer.EXPECT().KPISummary(gomock.Any(), testWorkspace, gomock.Any()).Return(nil, fmt.Errorf("db"))
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   apiErrors.ErrDatabaseOperation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestHandler(t, nil)
			tt.setup(d)

			rec := d.do(http.MethodGet, tt.target, "")
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestGetKPIDeltas_CompareTo(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		setup      func(d *testDeps)
		wantStatus int
	}{
		{
			name:   "Com par de comparação - repassado ao serviço",
			target: "/v1/kpis/deltas?from=2024-01-08&to=2024-01-14&compareFrom=2024-01-01&compareTo=2024-01-07",
			setup: func(d *testDeps) {
				cmp := mustRange(t, "2024-01-01", "2024-01-07")
				d.analyzer.EXPECT().KPIDeltas(gomock.Any(), testWorkspace, mustRange(t, "2024-01-08", "2024-01-14"), &cmp).
					Return(&domain.KPIDeltas{}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "Sem comparação - nil repassado",
			target: "/v1/kpis/deltas?from=2024-01-08&to=2024-01-14",
			setup: func(d *testDeps) {
				d.analyzer.EXPECT().KPIDeltas(gomock.Any(), testWorkspace, gomock.Any(), nil).Return(&domain.KPIDeltas{}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "Só compareFrom - 400",
			target:     "/v1/kpis/deltas?from=2024-01-08&to=2024-01-14&compareFrom=2024-01-01",
			setup:      func(d *testDeps) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestHandler(t, nil)
			tt.setup(d)

			rec := d.do(http.MethodGet, tt.target, "")
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestGetBreakdown(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		setup      func(d *testDeps)
		wantStatus int
		wantBody   string
	}{
		{
			name:   "Dimensão e limite - repassados",
			target: "/v1/kpis/breakdown?from=2024-01-01&to=2024-01-31&by=location&limit=5",
			setup: func(d *testDeps) {
				limit := 5
				d.analyzer.EXPECT().Breakdown(gomock.Any(), testWorkspace, gomock.Any(), domain.DimensionLocation, &limit).
					Return(&domain.Breakdown{Dimension: domain.DimensionLocation, Limit: 5}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `"dimension":"location"`,
		},
		{
			name:       "Dimensão desconhecida - 400",
			target:     "/v1/kpis/breakdown?from=2024-01-01&to=2024-01-31&by=color",
			setup:      func(d *testDeps) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   apiErrors.ErrInvalidRequest,
		},
		{
			name:       "Limite não numérico - 400",
			target:     "/v1/kpis/breakdown?from=2024-01-01&to=2024-01-31&by=sku&limit=abc",
			setup:      func(d *testDeps) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   apiErrors.ErrInvalidFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestHandler(t, nil)
			tt.setup(d)

			rec := d.do(http.MethodGet, tt.target, "")
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestGetTopMovers(t *testing.T) {
	d := newTestHandler(t, nil)

	d.analyzer.EXPECT().TopMovers(gomock.Any(), testWorkspace, gomock.Any()).
		DoAndReturn(func(ctx context.Context, ws string, q domain.TopMoversQuery) (*domain.TopMovers, error) {
			assert.Equal(t, domain.MoverUnitsSold, q.Metric)
			assert.Equal(t, domain.DirectionDown, q.Direction)
			assert.Nil(t, q.CompareTo)
			assert.Nil(t, q.Limit)
			return &domain.TopMovers{Metric: q.Metric, Direction: q.Direction}, nil
		})

	rec := d.do(http.MethodGet, "/v1/kpis/top-movers?from=2024-01-01&to=2024-01-31&metric=unitsSold&direction=down", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = d.do(http.MethodGet, "/v1/kpis/top-movers?from=2024-01-01&to=2024-01-31&metric=clicks", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRisks(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		setup      func(d *testDeps)
		wantStatus int
	}{
		{
			name:   "Ruptura com horizonte - repassado como ponteiro",
			target: "/v1/risks/stockout?from=2024-01-01&to=2024-01-10&horizonDays=30",
			setup: func(d *testDeps) {
				horizon := 30
				d.detector.EXPECT().StockoutRisk(gomock.Any(), testWorkspace, gomock.Any(), &horizon, nil).
					Return(&domain.StockoutRisk{HorizonDays: 30}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "Estoque baixo sem intervalo - aceito",
			target: "/v1/risks/low-stock?threshold=5",
			setup: func(d *testDeps) {
				threshold := 5
				d.detector.EXPECT().LowStockRisk(gomock.Any(), testWorkspace, &threshold, nil).
					Return(&domain.LowStockRisk{Threshold: 5}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "Pico de reembolso - comparação padrão",
			target: "/v1/risks/refund-spike?from=2024-01-08&to=2024-01-14",
			setup: func(d *testDeps) {
				d.detector.EXPECT().RefundSpike(gomock.Any(), testWorkspace, gomock.Any(), nil).
					Return(&domain.RateSpikeRisk{Kind: domain.SpikeRefund}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "Pico de tarifa - comparação explícita",
			target: "/v1/risks/fee-spike?from=2024-01-08&to=2024-01-14&compareFrom=2023-12-01&compareTo=2023-12-07",
			setup: func(d *testDeps) {
				cmp := mustRange(t, "2023-12-01", "2023-12-07")
				d.detector.EXPECT().FeeSpike(gomock.Any(), testWorkspace, gomock.Any(), &cmp).
					Return(&domain.RateSpikeRisk{Kind: domain.SpikeFee}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "Vazamento de margem - erro do serviço",
			target: "/v1/risks/margin-leakage?from=2024-01-08&to=2024-01-14",
			setup: func(d *testDeps) {
				d.detector.EXPECT().MarginLeakage(gomock.Any(), testWorkspace, gomock.Any(), nil).
					Return(nil, fmt.Errorf("db"))
			},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:   "Problemas de pedidos - limite",
			target: "/v1/risks/order-issues?from=2024-01-08&to=2024-01-14&limit=10",
			setup: func(d *testDeps) {
				limit := 10
				d.detector.EXPECT().OrderIssues(gomock.Any(), testWorkspace, gomock.Any(), &limit).
					Return(&domain.OrderIssues{Limit: 10}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "Risco operacional",
			target: "/v1/risks/ops?from=2024-01-08&to=2024-01-14",
			setup: func(d *testDeps) {
				d.detector.EXPECT().OpsRisk(gomock.Any(), testWorkspace, gomock.Any()).
					Return(&domain.OpsRisk{Risk: domain.SeverityLow}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "Ruptura sem intervalo - 400",
			target:     "/v1/risks/stockout",
			setup:      func(d *testDeps) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestHandler(t, nil)
			tt.setup(d)

			rec := d.do(http.MethodGet, tt.target, "")
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestCreatePlan(t *testing.T) {
	admin := &domain.WorkspaceMember{WorkspaceID: testWorkspace, UserID: "u-1", Role: domain.RoleAdmin}
	viewer := &domain.WorkspaceMember{WorkspaceID: testWorkspace, UserID: "u-2", Role: domain.RoleViewer}

	tests := []struct {
		name       string
		member     *domain.WorkspaceMember
		body       string
		setup      func(d *testDeps)
		wantStatus int
	}{
		{
			name:   "Admin com intervalo - plano criado",
			member: admin,
			body:   `{"from":"2024-01-01","to":"2024-01-07","title":" Semana 1 "}`,
			setup: func(d *testDeps) {
				title := "Semana 1"
				d.planner.EXPECT().CreatePlan(gomock.Any(), testWorkspace, mustRange(t, "2024-01-01", "2024-01-07"), &title).
					Return(&domain.Plan{ID: "p-1", Status: domain.PlanStatusDraft}, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "Viewer - 403",
			member:     viewer,
			body:       `{"from":"2024-01-01","to":"2024-01-07"}`,
			setup:      func(d *testDeps) {},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "Anônimo - 401",
			body:       `{"from":"2024-01-01","to":"2024-01-07"}`,
			setup:      func(d *testDeps) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "Corpo sem datas - 400",
			member:     admin,
			body:       `{"title":"x"}`,
			setup:      func(d *testDeps) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "JSON inválido - 400",
			member:     admin,
			body:       `{`,
			setup:      func(d *testDeps) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestHandler(t, tt.member)
			tt.setup(d)

			rec := d.do(http.MethodPost, "/v1/plans", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestListAndGetPlans(t *testing.T) {
	d := newTestHandler(t, nil)

	d.planner.EXPECT().ListPlans(gomock.Any(), testWorkspace, gomock.Any()).
		DoAndReturn(func(ctx context.Context, ws string, f domain.PlanFilter) (*domain.PlanList, error) {
			require.NotNil(t, f.CreatedFrom)
			require.NotNil(t, f.CreatedTo)
			assert.Equal(t, "2024-02-01", f.CreatedTo.Format(time.DateOnly))
			assert.Equal(t, 2, f.Page)
			assert.Equal(t, 10, f.PageSize)
			return &domain.PlanList{Items: []domain.Plan{}, Page: 2, PageSize: 10}, nil
		})

	rec := d.do(http.MethodGet, "/v1/plans?from=2024-01-01&to=2024-01-31&page=2&pageSize=10", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = d.do(http.MethodGet, "/v1/plans?from=2024-02-01&to=2024-01-01", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	d.planner.EXPECT().GetPlan(gomock.Any(), testWorkspace, "nao-existe").
		Return(nil, fmt.Errorf("%w: nao-existe", domain.ErrPlanNotFound))

	rec = d.do(http.MethodGet, "/v1/plans/nao-existe", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), apiErrors.ErrResourceNotFound)
}

func TestGetPlanningOutput(t *testing.T) {
	d := newTestHandler(t, nil)

	d.planner.EXPECT().Output(gomock.Any(), testWorkspace, mustRange(t, "2024-01-01", "2024-01-07")).
		Return(&domain.PlanningOutput{StatusBullets: []string{"Range: 2024-01-01 to 2024-01-07 (inclusive, UTC)."}}, nil)

	rec := d.do(http.MethodGet, "/v1/planning/output?from=2024-01-01&to=2024-01-07", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "statusBullets")
}

func TestCreateForecast(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setup      func(d *testDeps)
		wantStatus int
	}{
		{
			name: "Nível SKU - campos repassados",
			body: `{"from":"2024-01-01","to":"2024-01-10","horizonDays":7,"sku":"SKU-1"}`,
			setup: func(d *testDeps) {
				d.forecaster.EXPECT().Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(ctx context.Context, req domain.ForecastRequest) (*domain.ForecastResult, error) {
						assert.Equal(t, testWorkspace, req.WorkspaceID)
						require.NotNil(t, req.HorizonDays)
						assert.Equal(t, 7, *req.HorizonDays)
						require.NotNil(t, req.SKU)
						assert.Equal(t, "SKU-1", *req.SKU)
						assert.Nil(t, req.ProductID)
						return &domain.ForecastResult{ID: "f-1", Level: domain.ForecastSKU}, nil
					})
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "SKU inexistente - 404",
			body: `{"from":"2024-01-01","to":"2024-01-10","sku":"X"}`,
			setup: func(d *testDeps) {
				d.forecaster.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, domain.ErrSKUNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "Intervalo invertido - 400",
			body:       `{"from":"2024-01-10","to":"2024-01-01"}`,
			setup:      func(d *testDeps) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestHandler(t, nil)
			tt.setup(d)

			rec := d.do(http.MethodPost, "/v1/forecasts", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestComputeMetrics(t *testing.T) {
	d := newTestHandler(t, nil)

	rec := d.do(http.MethodPost, "/v1/metrics/compute?day=2024-03-09", "")
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Contains(t, rec.Body.String(), `"runId":"run-1"`)
	require.Len(t, d.trigger.days, 1)
	assert.Equal(t, "2024-03-09", d.trigger.days[0].Format(time.DateOnly))

	rec = d.do(http.MethodPost, "/v1/metrics/compute?day=09/03/2024", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCronJobs(t *testing.T) {
	owner := &domain.WorkspaceMember{WorkspaceID: testWorkspace, UserID: "u-1", Role: domain.RoleOwner}

	d := newTestHandler(t, owner)
	rec := d.do(http.MethodPost, "/v1/cron/rollup/run", "")
	assert.Equal(t, http.StatusAccepted, rec.Code)

	d.trigger.busy = true
	rec = d.do(http.MethodPost, "/v1/cron/rollup/run", "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = d.do(http.MethodPost, "/v1/cron/meta/run", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = d.do(http.MethodGet, "/v1/cron/status", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"rollup"`)
}

func TestRouter_NotFound(t *testing.T) {
	d := newTestHandler(t, nil)

	rec := d.do(http.MethodGet, "/v1/nada", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), apiErrors.ErrResourceNotFound)
}
