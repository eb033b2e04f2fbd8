package delete_allocation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SeasonalService/internal/api/handlers"
	"github.com/m04kA/SMC-SeasonalService/internal/api/middleware"
	deleteAllocation "github.com/m04kA/SMC-SeasonalService/internal/usecase/delete_allocation"
)

const (
	msgUnauthorized        = "требуется аутентификация"
	msgInvalidAllocationID = "некорректный ID выделенного слота"
	msgAllocationNotFound  = "выделенный слот не найден"
	msgAccessDenied        = "недостаточно прав для удаления слота"
	msgRoundFinalized      = "раунд уже обработан, слоты заморожены"
)

type Handler struct {
	useCase DeleteAllocationUseCase
	logger  Logger
}

func NewHandler(useCase DeleteAllocationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/allocations/{allocationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	allocationID, err := strconv.ParseInt(vars["allocationId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /allocations/{allocationId} - Invalid allocation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAllocationID)
		return
	}

	if err := h.useCase.Execute(r.Context(), &deleteAllocation.Request{Actor: actor, AllocationID: allocationID}); err != nil {
		switch {
		case errors.Is(err, deleteAllocation.ErrAllocationNotFound):
			h.logger.Warn("DELETE /allocations/{allocationId} - Allocation not found: allocation_id=%d", allocationID)
			handlers.RespondNotFound(w, msgAllocationNotFound)

		case errors.Is(err, deleteAllocation.ErrAccessDenied):
			h.logger.Warn("DELETE /allocations/{allocationId} - Access denied: allocation_id=%d, user_id=%d", allocationID, actor.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, deleteAllocation.ErrRoundFinalized):
			h.logger.Warn("DELETE /allocations/{allocationId} - Round finalized: allocation_id=%d", allocationID)
			handlers.RespondConflict(w, msgRoundFinalized)

		default:
			h.logger.Error("DELETE /allocations/{allocationId} - Failed: allocation_id=%d, error=%v", allocationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /allocations/{allocationId} - Allocation deleted: allocation_id=%d, user_id=%d", allocationID, actor.UserID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
