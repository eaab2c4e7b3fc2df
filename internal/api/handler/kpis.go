package handler

import (
	"net/http"
	"strings"

	"github.com/vfg2006/workspace-analytics-api/internal/domain"
	"github.com/vfg2006/workspace-analytics-api/internal/usecases/analytics"
	"github.com/vfg2006/workspace-analytics-api/pkg/log"
	"github.com/vfg2006/workspace-analytics-api/pkg/middleware"
)

func GetKPISummary(service analytics.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rng, err := rangeFromQuery(r)
		if err != nil {
			writeRequestError(w, err)
			return
		}

		summary, err := service.KPISummary(r.Context(), middleware.WorkspaceID(r.Context()), rng)
		if err != nil {
			writeServiceError(w, r, "kpi-summary", err)
			return
		}

		writeJSON(w, r, http.StatusOK, summary)
	})
}

func GetKPIDeltas(service analytics.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rng, err := rangeFromQuery(r)
		if err != nil {
			writeRequestError(w, err)
			return
		}
		compareTo, err := compareFromQuery(r)
		if err != nil {
			writeRequestError(w, err)
			return
		}

		deltas, err := service.KPIDeltas(r.Context(), middleware.WorkspaceID(r.Context()), rng, compareTo)
		if err != nil {
			writeServiceError(w, r, "kpi-deltas", err)
			return
		}

		writeJSON(w, r, http.StatusOK, deltas)
	})
}

// GetTrends aceita metrics=a,b. Chaves desconhecidas são descartadas pelo serviço.
func GetTrends(service analytics.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rng, err := rangeFromQuery(r)
		if err != nil {
			writeRequestError(w, err)
			return
		}

		var keys []string
		if raw := r.URL.Query().Get("metrics"); raw != "" {
			keys = strings.Split(raw, ",")
		}

		trends, err := service.Trends(r.Context(), middleware.WorkspaceID(r.Context()), rng, keys)
		if err != nil {
			writeServiceError(w, r, "kpi-trends", err)
			return
		}

		writeJSON(w, r, http.StatusOK, trends)
	})
}

func GetBreakdown(service analytics.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rng, err := rangeFromQuery(r)
		if err != nil {
			writeRequestError(w, err)
			return
		}
		dimension, err := domain.ParseDimension(r.URL.Query().Get("by"))
		if err != nil {
			writeRequestError(w, err)
			return
		}
		limit, err := intFromQuery(r, "limit")
		if err != nil {
			writeRequestError(w, err)
			return
		}

		log.ForContext(r.Context()).WithFields(log.Fields{
			"dimension": dimension,
			"from":      rng.FromString(),
			"to":        rng.ToString(),
		}).Debug("breakdown: consultando")

		breakdown, err := service.Breakdown(r.Context(), middleware.WorkspaceID(r.Context()), rng, dimension, limit)
		if err != nil {
			writeServiceError(w, r, "kpi-breakdown", err)
			return
		}

		writeJSON(w, r, http.StatusOK, breakdown)
	})
}

func GetTopMovers(service analytics.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		rng, err := rangeFromQuery(r)
		if err != nil {
			writeRequestError(w, err)
			return
		}
		compareTo, err := compareFromQuery(r)
		if err != nil {
			writeRequestError(w, err)
			return
		}
		metric, err := domain.ParseMoverMetric(q.Get("metric"))
		if err != nil {
			writeRequestError(w, err)
			return
		}
		direction, err := domain.ParseDirection(q.Get("direction"))
		if err != nil {
			writeRequestError(w, err)
			return
		}
		limit, err := intFromQuery(r, "limit")
		if err != nil {
			writeRequestError(w, err)
			return
		}

		movers, err := service.TopMovers(r.Context(), middleware.WorkspaceID(r.Context()), domain.TopMoversQuery{
			Range:     rng,
			CompareTo: compareTo,
			Metric:    metric,
			Direction: direction,
			Limit:     limit,
		})
		if err != nil {
			writeServiceError(w, r, "kpi-top-movers", err)
			return
		}

		writeJSON(w, r, http.StatusOK, movers)
	})
}
