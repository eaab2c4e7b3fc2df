package handler

import (
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/workspace-analytics-api/pkg/apiErrors"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeRollup = "rollup"
)

// RollupTrigger dispara materializações fora do agendamento
type RollupTrigger interface {
	TriggerManualSync() bool
	TriggerDay(workspaceID string, day time.Time) string
	GetStatus() map[string]any
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(trigger RollupTrigger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		switch cronType {
		case CronJobTypeRollup:
			if !trigger.TriggerManualSync() {
				apiErrors.WriteError(w, apiErrors.ErrServiceBusy, "Materialização já em andamento", nil)
				return
			}
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: rollup", nil)
			return
		}

		writeJSON(w, r, http.StatusAccepted, map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		})
	})
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(trigger RollupTrigger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, map[string]any{
			CronJobTypeRollup: trigger.GetStatus(),
		})
	})
}
