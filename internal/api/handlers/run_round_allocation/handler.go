package run_round_allocation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SeasonalService/internal/api/handlers"
	"github.com/m04kA/SMC-SeasonalService/internal/api/middleware"
	runAllocation "github.com/m04kA/SMC-SeasonalService/internal/usecase/run_round_allocation"
)

const (
	msgUnauthorized    = "требуется аутентификация"
	msgInvalidRoundID  = "некорректный ID раунда"
	msgRoundNotFound   = "раунд подачи заявок не найден"
	msgAccessDenied    = "недостаточно прав для запуска распределения"
	msgRoundNotInAlloc = "раунд не находится в фазе распределения"
)

type Handler struct {
	useCase RunRoundAllocationUseCase
	logger  Logger
}

func NewHandler(useCase RunRoundAllocationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/application-rounds/{roundId}/allocate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	roundID, err := strconv.ParseInt(vars["roundId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /application-rounds/{roundId}/allocate - Invalid round ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRoundID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &runAllocation.Request{Actor: actor, RoundID: roundID})
	if err != nil {
		switch {
		case errors.Is(err, runAllocation.ErrRoundNotFound):
			h.logger.Warn("POST /application-rounds/{roundId}/allocate - Round not found: round_id=%d", roundID)
			handlers.RespondNotFound(w, msgRoundNotFound)

		case errors.Is(err, runAllocation.ErrAccessDenied):
			h.logger.Warn("POST /application-rounds/{roundId}/allocate - Access denied: round_id=%d, user_id=%d", roundID, actor.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, runAllocation.ErrRoundNotInAllocation):
			h.logger.Warn("POST /application-rounds/{roundId}/allocate - Round not in allocation: round_id=%d", roundID)
			handlers.RespondConflict(w, msgRoundNotInAlloc)

		default:
			h.logger.Error("POST /application-rounds/{roundId}/allocate - Failed: round_id=%d, error=%v", roundID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /application-rounds/{roundId}/allocate - Round allocated: round_id=%d, slots=%d, locked=%d, reservations=%d",
		roundID, result.AllocatedSlots, result.LockedOptions, result.GeneratedReservations)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
