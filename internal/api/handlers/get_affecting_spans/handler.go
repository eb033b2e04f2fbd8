package get_affecting_spans

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SeasonalService/internal/api/handlers"
	"github.com/m04kA/SMC-SeasonalService/internal/domain"
	getSpans "github.com/m04kA/SMC-SeasonalService/internal/usecase/get_affecting_spans"
)

const (
	msgInvalidUnitID  = "некорректный ID единицы бронирования"
	msgInvalidPeriod  = "некорректный период, ожидаются from и to в формате RFC3339"
	msgInvalidExclude = "некорректный параметр исключения"
	msgUnitNotFound   = "единица бронирования не найдена"
	msgIndexNotReady  = "индекс иерархии еще не построен"
)

type Handler struct {
	useCase GetAffectingSpansUseCase
	logger  Logger
}

func NewHandler(useCase GetAffectingSpansUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/reservation-units/{unitId}/affecting-spans?from=&to=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	unitID, err := strconv.ParseInt(vars["unitId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /reservation-units/{unitId}/affecting-spans - Invalid unit ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUnitID)
		return
	}

	req, err := parseQuery(unitID, r)
	if err != nil {
		h.logger.Warn("GET /reservation-units/{unitId}/affecting-spans - Invalid query: unit_id=%d, error=%v", unitID, err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getSpans.ErrInvalidRange):
			h.logger.Warn("GET /reservation-units/{unitId}/affecting-spans - Invalid range: unit_id=%d", unitID)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		case errors.Is(err, getSpans.ErrUnitNotFound):
			h.logger.Warn("GET /reservation-units/{unitId}/affecting-spans - Unit not found: unit_id=%d", unitID)
			handlers.RespondNotFound(w, msgUnitNotFound)

		case errors.Is(err, getSpans.ErrIndexNotReady):
			h.logger.Warn("GET /reservation-units/{unitId}/affecting-spans - Index not ready: unit_id=%d", unitID)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgIndexNotReady)

		default:
			h.logger.Error("GET /reservation-units/{unitId}/affecting-spans - Failed: unit_id=%d, error=%v", unitID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

func parseQuery(unitID int64, r *http.Request) (*getSpans.Request, error) {
	query := r.URL.Query()

	from, err := time.Parse(time.RFC3339, query.Get("from"))
	if err != nil {
		return nil, errors.New(msgInvalidPeriod)
	}
	to, err := time.Parse(time.RFC3339, query.Get("to"))
	if err != nil {
		return nil, errors.New(msgInvalidPeriod)
	}

	req := &getSpans.Request{
		ReservationUnitID: unitID,
		From:              from,
		To:                to,
	}

	if raw := query.Get("excludeReservationId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, errors.New(msgInvalidExclude)
		}
		req.ExcludeReservationID = &id
	}
	if raw := query.Get("excludeAllocationId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, errors.New(msgInvalidExclude)
		}
		req.ExcludeAllocationID = &id
	}
	for _, raw := range query["excludeReservationType"] {
		req.ExcludeReservationTypes = append(req.ExcludeReservationTypes, domain.ReservationType(raw))
	}

	return req, nil
}
