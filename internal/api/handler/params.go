package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/workspace-analytics-api/internal/domain"
	"github.com/vfg2006/workspace-analytics-api/pkg/apiErrors"
	"github.com/vfg2006/workspace-analytics-api/pkg/log"
	"github.com/vfg2006/workspace-analytics-api/pkg/middleware"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var errInvalidNumber = errors.New("invalid number")

// rangeFromQuery lê from/to obrigatórios da query string
func rangeFromQuery(r *http.Request) (domain.DateRange, error) {
	q := r.URL.Query()
	from, to := q.Get("from"), q.Get("to")
	if from == "" || to == "" {
		return domain.DateRange{}, fmt.Errorf("%w: from and to are required", domain.ErrInvalidRange)
	}
	return domain.ParseDateRange(from, to)
}

// compareFromQuery lê o par opcional compareFrom/compareTo. Informar só um
// dos lados é inválido.
func compareFromQuery(r *http.Request) (*domain.DateRange, error) {
	q := r.URL.Query()
	from, to := q.Get("compareFrom"), q.Get("compareTo")
	if from == "" && to == "" {
		return nil, nil
	}
	if from == "" || to == "" {
		return nil, fmt.Errorf("%w: compareFrom and compareTo must be sent together", domain.ErrInvalidRange)
	}

	rng, err := domain.ParseDateRange(from, to)
	if err != nil {
		return nil, err
	}
	return &rng, nil
}

// intFromQuery devolve nil quando o parâmetro está ausente
func intFromQuery(r *http.Request, name string) (*int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s=%q", errInvalidNumber, name, raw)
	}
	return &v, nil
}

func optionalString(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("Erro ao codificar resposta")
	}
}

// writeRequestError responde erros de leitura dos parâmetros
func writeRequestError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRange):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRange, err.Error(), nil)
	case errors.Is(err, errInvalidNumber):
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
	default:
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
	}
}

// writeServiceError traduz os erros de domínio para a resposta padronizada
func writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case domain.IsValidationError(err):
		writeRequestError(w, err)
	case domain.IsNotFoundError(err):
		apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, err.Error(), nil)
	default:
		log.ForContext(r.Context()).WithError(err).WithField("operation", op).Error("Erro ao processar requisição")
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao processar requisição", nil)
	}
}

type rangePair struct {
	primary   domain.DateRange
	compareTo *domain.DateRange
}

// comparativeRisk lê from/to e o par de comparação opcional antes de chamar run
func comparativeRisk(op string, run func(r *http.Request, workspaceID string, rng rangePair) (any, error)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		primary, err := rangeFromQuery(r)
		if err != nil {
			writeRequestError(w, err)
			return
		}
		compareTo, err := compareFromQuery(r)
		if err != nil {
			writeRequestError(w, err)
			return
		}

		out, err := run(r, middleware.WorkspaceID(r.Context()), rangePair{primary: primary, compareTo: compareTo})
		if err != nil {
			writeServiceError(w, r, op, err)
			return
		}
		writeJSON(w, r, http.StatusOK, out)
	})
}
