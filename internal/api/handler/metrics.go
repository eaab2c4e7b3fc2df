package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/vfg2006/workspace-analytics-api/internal/domain"
	"github.com/vfg2006/workspace-analytics-api/internal/usecases/analytics"
	"github.com/vfg2006/workspace-analytics-api/pkg/apiErrors"
	"github.com/vfg2006/workspace-analytics-api/pkg/log"
	"github.com/vfg2006/workspace-analytics-api/pkg/middleware"
)

func GetDailyMetrics(service analytics.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rng, err := rangeFromQuery(r)
		if err != nil {
			writeRequestError(w, err)
			return
		}

		daily, err := service.DailyMetrics(r.Context(), middleware.WorkspaceID(r.Context()), rng)
		if err != nil {
			writeServiceError(w, r, "daily-metrics", err)
			return
		}

		writeJSON(w, r, http.StatusOK, daily)
	})
}

// ComputeMetrics agenda a materialização de um dia (day=YYYY-MM-DD, padrão hoje UTC)
// e responde com o id da execução.
func ComputeMetrics(trigger RollupTrigger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		day := domain.StartOfDay(time.Now())
		if raw := strings.TrimSpace(r.URL.Query().Get("day")); raw != "" {
			parsed, err := time.ParseInLocation(time.DateOnly, raw, time.UTC)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "day deve seguir o formato YYYY-MM-DD", nil)
				return
			}
			day = parsed
		}

		workspaceID := middleware.WorkspaceID(r.Context())
		runID := trigger.TriggerDay(workspaceID, day)

		log.ForContext(r.Context()).WithFields(log.Fields{
			"run_id": runID,
			"day":    day.Format(time.DateOnly),
		}).Info("Materialização manual agendada")

		writeJSON(w, r, http.StatusAccepted, map[string]any{
			"runId":       runID,
			"workspaceId": workspaceID,
			"day":         day.Format(time.DateOnly),
		})
	})
}
