package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/workspace-analytics-api/internal/domain"
	"github.com/vfg2006/workspace-analytics-api/internal/usecases/planning"
	"github.com/vfg2006/workspace-analytics-api/pkg/apiErrors"
	"github.com/vfg2006/workspace-analytics-api/pkg/log"
	"github.com/vfg2006/workspace-analytics-api/pkg/middleware"
	"github.com/vfg2006/workspace-analytics-api/pkg/utils"
)

type createPlanRequest struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Title string `json:"title"`
}

// GetPlanningOutput sintetiza o plano do intervalo sem persistir
func GetPlanningOutput(planner planning.Planner) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rng, err := rangeFromQuery(r)
		if err != nil {
			writeRequestError(w, err)
			return
		}

		out, err := planner.Output(r.Context(), middleware.WorkspaceID(r.Context()), rng)
		if err != nil {
			writeServiceError(w, r, "planning-output", err)
			return
		}
		writeJSON(w, r, http.StatusOK, out)
	})
}

func CreatePlan(planner planning.Planner) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req createPlanRequest
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

		plan, err := planner.CreatePlan(r.Context(), middleware.WorkspaceID(r.Context()), rng, optionalString(req.Title))
		if err != nil {
			writeServiceError(w, r, "plan-create", err)
			return
		}

		log.ForContext(r.Context()).WithField("plan_id", plan.ID).Debug("plans: plano criado")
		writeJSON(w, r, http.StatusCreated, plan)
	})
}

// ListPlans filtra por data de criação. Um to só com data cobre o dia inteiro.
func ListPlans(planner planning.Planner) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		var filter domain.PlanFilter

		from, _, err := utils.ParseDate(q.Get("from"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRange, "from deve ser YYYY-MM-DD ou RFC3339", nil)
			return
		}
		filter.CreatedFrom = from

		to, dateOnly, err := utils.ParseDate(q.Get("to"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRange, "to deve ser YYYY-MM-DD ou RFC3339", nil)
			return
		}
		if to != nil && dateOnly {
			endOfDay := to.AddDate(0, 0, 1)
			to = &endOfDay
		}
		filter.CreatedTo = to
		if filter.CreatedFrom != nil && filter.CreatedTo != nil && !filter.CreatedFrom.Before(*filter.CreatedTo) {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRange, "from posterior a to", nil)
			return
		}

		page, err := intFromQuery(r, "page")
		if err != nil {
			writeRequestError(w, err)
			return
		}
		pageSize, err := intFromQuery(r, "pageSize")
		if err != nil {
			writeRequestError(w, err)
			return
		}
		if page != nil {
			filter.Page = *page
		}
		if pageSize != nil {
			filter.PageSize = *pageSize
		}

		plans, err := planner.ListPlans(r.Context(), middleware.WorkspaceID(r.Context()), filter)
		if err != nil {
			writeServiceError(w, r, "plan-list", err)
			return
		}
		writeJSON(w, r, http.StatusOK, plans)
	})
}

func GetPlan(planner planning.Planner) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		plan, err := planner.GetPlan(r.Context(), middleware.WorkspaceID(r.Context()), id)
		if err != nil {
			writeServiceError(w, r, "plan-get", err)
			return
		}
		writeJSON(w, r, http.StatusOK, plan)
	})
}
