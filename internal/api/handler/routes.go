package handler

import (
	"net/http"

	"github.com/vfg2006/workspace-analytics-api/internal/api/handler/router"
	"github.com/vfg2006/workspace-analytics-api/internal/usecases/analytics"
	"github.com/vfg2006/workspace-analytics-api/internal/usecases/authenticating"
	"github.com/vfg2006/workspace-analytics-api/internal/usecases/forecasting"
	"github.com/vfg2006/workspace-analytics-api/internal/usecases/planning"
	"github.com/vfg2006/workspace-analytics-api/internal/usecases/risk"
	"github.com/vfg2006/workspace-analytics-api/pkg/middleware"
)

type middlewares = []func(http.Handler) http.Handler

func scoped(auth authenticating.Authenticator) middlewares {
	return middlewares{middleware.WorkspaceScoped(auth)}
}

func scopedAdmin(auth authenticating.Authenticator) middlewares {
	return middlewares{middleware.WorkspaceScoped(auth), middleware.AdminOrOwner()}
}

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func KPIs(service analytics.Analyzer, auth authenticating.Authenticator) []router.Route {
	return []router.Route{
		{Path: "/v1/kpis/summary", Method: http.MethodGet, Handler: GetKPISummary(service), Middlewares: scoped(auth)},
		{Path: "/v1/kpis/deltas", Method: http.MethodGet, Handler: GetKPIDeltas(service), Middlewares: scoped(auth)},
		{Path: "/v1/kpis/trends", Method: http.MethodGet, Handler: GetTrends(service), Middlewares: scoped(auth)},
		{Path: "/v1/kpis/breakdown", Method: http.MethodGet, Handler: GetBreakdown(service), Middlewares: scoped(auth)},
		{Path: "/v1/kpis/top-movers", Method: http.MethodGet, Handler: GetTopMovers(service), Middlewares: scoped(auth)},
	}
}

func Metrics(service analytics.Analyzer, trigger RollupTrigger, auth authenticating.Authenticator) []router.Route {
	return []router.Route{
		{Path: "/v1/metrics/daily", Method: http.MethodGet, Handler: GetDailyMetrics(service), Middlewares: scoped(auth)},
		{Path: "/v1/metrics/compute", Method: http.MethodPost, Handler: ComputeMetrics(trigger), Middlewares: scoped(auth)},
	}
}

func Risks(detector risk.Detector, auth authenticating.Authenticator) []router.Route {
	return []router.Route{
		{Path: "/v1/risks/stockout", Method: http.MethodGet, Handler: GetStockoutRisk(detector), Middlewares: scoped(auth)},
		{Path: "/v1/risks/low-stock", Method: http.MethodGet, Handler: GetLowStockRisk(detector), Middlewares: scoped(auth)},
		{Path: "/v1/risks/refund-spike", Method: http.MethodGet, Handler: GetRefundSpike(detector), Middlewares: scoped(auth)},
		{Path: "/v1/risks/fee-spike", Method: http.MethodGet, Handler: GetFeeSpike(detector), Middlewares: scoped(auth)},
		{Path: "/v1/risks/margin-leakage", Method: http.MethodGet, Handler: GetMarginLeakage(detector), Middlewares: scoped(auth)},
		{Path: "/v1/risks/order-issues", Method: http.MethodGet, Handler: GetOrderIssues(detector), Middlewares: scoped(auth)},
		{Path: "/v1/risks/ops", Method: http.MethodGet, Handler: GetOpsRisk(detector), Middlewares: scoped(auth)},
	}
}

func Planning(planner planning.Planner, auth authenticating.Authenticator) []router.Route {
	return []router.Route{
		{Path: "/v1/planning/output", Method: http.MethodGet, Handler: GetPlanningOutput(planner), Middlewares: scoped(auth)},
		{Path: "/v1/plans", Method: http.MethodPost, Handler: CreatePlan(planner), Middlewares: scopedAdmin(auth)},
		{Path: "/v1/plans", Method: http.MethodGet, Handler: ListPlans(planner), Middlewares: scoped(auth)},
		{Path: "/v1/plans/:id", Method: http.MethodGet, Handler: GetPlan(planner), Middlewares: scoped(auth)},
	}
}

func Forecasts(forecaster forecasting.Forecaster, auth authenticating.Authenticator) []router.Route {
	return []router.Route{
		{Path: "/v1/forecasts", Method: http.MethodPost, Handler: CreateForecast(forecaster), Middlewares: scoped(auth)},
	}
}

func CronJobs(trigger RollupTrigger, auth authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(trigger),
			Middlewares: scopedAdmin(auth),
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(trigger),
			Middlewares: scopedAdmin(auth),
		},
	}
}
