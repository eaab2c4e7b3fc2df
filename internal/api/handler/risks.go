package handler

import (
	"net/http"

	"github.com/vfg2006/workspace-analytics-api/internal/usecases/risk"
	"github.com/vfg2006/workspace-analytics-api/pkg/middleware"
)

func GetStockoutRisk(detector risk.Detector) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rng, err := rangeFromQuery(r)
		if err != nil {
			writeRequestError(w, err)
			return
		}
		horizon, err := intFromQuery(r, "horizonDays")
		if err != nil {
			writeRequestError(w, err)
			return
		}
		limit, err := intFromQuery(r, "limit")
		if err != nil {
			writeRequestError(w, err)
			return
		}

		out, err := detector.StockoutRisk(r.Context(), middleware.WorkspaceID(r.Context()), rng, horizon, limit)
		if err != nil {
			writeServiceError(w, r, "risk-stockout", err)
			return
		}
		writeJSON(w, r, http.StatusOK, out)
	})
}

// GetLowStockRisk olha apenas o estoque atual, sem intervalo de datas.
func GetLowStockRisk(detector risk.Detector) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		threshold, err := intFromQuery(r, "threshold")
		if err != nil {
			writeRequestError(w, err)
			return
		}
		limit, err := intFromQuery(r, "limit")
		if err != nil {
			writeRequestError(w, err)
			return
		}

		out, err := detector.LowStockRisk(r.Context(), middleware.WorkspaceID(r.Context()), threshold, limit)
		if err != nil {
			writeServiceError(w, r, "risk-low-stock", err)
			return
		}
		writeJSON(w, r, http.StatusOK, out)
	})
}

func GetRefundSpike(detector risk.Detector) http.Handler {
	return comparativeRisk("risk-refund-spike", func(r *http.Request, ws string, rng rangePair) (any, error) {
		return detector.RefundSpike(r.Context(), ws, rng.primary, rng.compareTo)
	})
}

func GetFeeSpike(detector risk.Detector) http.Handler {
	return comparativeRisk("risk-fee-spike", func(r *http.Request, ws string, rng rangePair) (any, error) {
		return detector.FeeSpike(r.Context(), ws, rng.primary, rng.compareTo)
	})
}

func GetMarginLeakage(detector risk.Detector) http.Handler {
	return comparativeRisk("risk-margin-leakage", func(r *http.Request, ws string, rng rangePair) (any, error) {
		return detector.MarginLeakage(r.Context(), ws, rng.primary, rng.compareTo)
	})
}

func GetOrderIssues(detector risk.Detector) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rng, err := rangeFromQuery(r)
		if err != nil {
			writeRequestError(w, err)
			return
		}
		limit, err := intFromQuery(r, "limit")
		if err != nil {
			writeRequestError(w, err)
			return
		}

		out, err := detector.OrderIssues(r.Context(), middleware.WorkspaceID(r.Context()), rng, limit)
		if err != nil {
			writeServiceError(w, r, "risk-order-issues", err)
			return
		}
		writeJSON(w, r, http.StatusOK, out)
	})
}

func GetOpsRisk(detector risk.Detector) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rng, err := rangeFromQuery(r)
		if err != nil {
			writeRequestError(w, err)
			return
		}

		out, err := detector.OpsRisk(r.Context(), middleware.WorkspaceID(r.Context()), rng)
		if err != nil {
			writeServiceError(w, r, "risk-ops", err)
			return
		}
		writeJSON(w, r, http.StatusOK, out)
	})
}
