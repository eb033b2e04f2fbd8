package reset_round_allocation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SeasonalService/internal/api/handlers"
	"github.com/m04kA/SMC-SeasonalService/internal/api/middleware"
	resetAllocation "github.com/m04kA/SMC-SeasonalService/internal/usecase/reset_round_allocation"
)

const (
	msgUnauthorized    = "требуется аутентификация"
	msgInvalidRoundID  = "некорректный ID раунда"
	msgRoundNotFound   = "раунд подачи заявок не найден"
	msgAccessDenied    = "недостаточно прав для сброса распределения"
	msgRoundNotStarted = "раунд еще не вошел в фазу распределения"
)

type Handler struct {
	useCase ResetRoundAllocationUseCase
	logger  Logger
}

func NewHandler(useCase ResetRoundAllocationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/application-rounds/{roundId}/reset
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	roundID, err := strconv.ParseInt(vars["roundId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /application-rounds/{roundId}/reset - Invalid round ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRoundID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &resetAllocation.Request{Actor: actor, RoundID: roundID})
	if err != nil {
		switch {
		case errors.Is(err, resetAllocation.ErrRoundNotFound):
			h.logger.Warn("POST /application-rounds/{roundId}/reset - Round not found: round_id=%d", roundID)
			handlers.RespondNotFound(w, msgRoundNotFound)

		case errors.Is(err, resetAllocation.ErrAccessDenied):
			h.logger.Warn("POST /application-rounds/{roundId}/reset - Access denied: round_id=%d, user_id=%d", roundID, actor.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, resetAllocation.ErrRoundNotStarted):
			h.logger.Warn("POST /application-rounds/{roundId}/reset - Round not started: round_id=%d", roundID)
			handlers.RespondConflict(w, msgRoundNotStarted)

		default:
			h.logger.Error("POST /application-rounds/{roundId}/reset - Failed: round_id=%d, error=%v", roundID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /application-rounds/{roundId}/reset - Allocation reset: round_id=%d, deleted_slots=%d, deleted_reservations=%d",
		roundID, result.DeletedSlots, result.DeletedReservations)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
