package reject_all_options

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SeasonalService/internal/api/handlers"
	"github.com/m04kA/SMC-SeasonalService/internal/api/middleware"
	rejectOptions "github.com/m04kA/SMC-SeasonalService/internal/usecase/reject_all_options"
)

const (
	msgUnauthorized     = "требуется аутентификация"
	msgInvalidSectionID = "некорректный ID секции"
	msgSectionNotFound  = "секция заявки не найдена"
	msgAccessDenied     = "недостаточно прав для отклонения вариантов"
	msgRoundFinalized   = "раунд уже обработан, заявка заморожена"
)

type Handler struct {
	useCase RejectAllOptionsUseCase
	logger  Logger
}

func NewHandler(useCase RejectAllOptionsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/sections/{sectionId}/reject-all-options
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	sectionID, err := strconv.ParseInt(vars["sectionId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /sections/{sectionId}/reject-all-options - Invalid section ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSectionID)
		return
	}

	if err := h.useCase.Execute(r.Context(), &rejectOptions.Request{Actor: actor, SectionID: sectionID}); err != nil {
		switch {
		case errors.Is(err, rejectOptions.ErrSectionNotFound):
			h.logger.Warn("POST /sections/{sectionId}/reject-all-options - Section not found: section_id=%d", sectionID)
			handlers.RespondNotFound(w, msgSectionNotFound)

		case errors.Is(err, rejectOptions.ErrAccessDenied):
			h.logger.Warn("POST /sections/{sectionId}/reject-all-options - Access denied: section_id=%d, user_id=%d", sectionID, actor.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, rejectOptions.ErrRoundFinalized):
			h.logger.Warn("POST /sections/{sectionId}/reject-all-options - Round finalized: section_id=%d", sectionID)
			handlers.RespondConflict(w, msgRoundFinalized)

		case errors.Is(err, rejectOptions.ErrSectionHasAllocations):
			h.logger.Warn("POST /sections/{sectionId}/reject-all-options - Section has allocations: section_id=%d", sectionID)
			handlers.RespondBadRequest(w, rejectOptions.MsgSectionHasAllocations)

		default:
			h.logger.Error("POST /sections/{sectionId}/reject-all-options - Failed: section_id=%d, error=%v", sectionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /sections/{sectionId}/reject-all-options - Options rejected: section_id=%d, user_id=%d", sectionID, actor.UserID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
