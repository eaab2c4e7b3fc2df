package handler

import (
	"net/http"

	"github.com/vfg2006/workspace-analytics-api/internal/domain"
	"github.com/vfg2006/workspace-analytics-api/internal/usecases/forecasting"
	"github.com/vfg2006/workspace-analytics-api/pkg/apiErrors"
	"github.com/vfg2006/workspace-analytics-api/pkg/middleware"
)

type createForecastRequest struct {
	From        string `json:"from"`
	To          string `json:"to"`
	HorizonDays *int   `json:"horizonDays"`
	SKU         string `json:"sku"`
	ProductID   string `json:"productId"`
}

func CreateForecast(forecaster forecasting.Forecaster) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req createForecastRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", nil)
			return
		}
		if req.From == "" || req.To == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "from e to são obrigatórios", nil)
			return
		}

		rng, err := domain.ParseDateRange(req.From, req.To)
		if err != nil {
			writeRequestError(w, err)
			return
		}

		result, err := forecaster.Create(r.Context(), domain.ForecastRequest{
			WorkspaceID: middleware.WorkspaceID(r.Context()),
			Range:       rng,
			HorizonDays: req.HorizonDays,
			SKU:         optionalString(req.SKU),
			ProductID:   optionalString(req.ProductID),
		})
		if err != nil {
			writeServiceError(w, r, "forecast-create", err)
			return
		}
		writeJSON(w, r, http.StatusCreated, result)
	})
}
