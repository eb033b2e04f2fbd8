package update_option_order

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SeasonalService/internal/api/handlers"
	"github.com/m04kA/SMC-SeasonalService/internal/api/middleware"
	updateOrder "github.com/m04kA/SMC-SeasonalService/internal/usecase/update_option_order"
)

const (
	msgUnauthorized       = "требуется аутентификация"
	msgInvalidSectionID   = "некорректный ID секции"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgSectionNotFound    = "секция заявки не найдена"
	msgAccessDenied       = "недостаточно прав для изменения порядка вариантов"
	msgRoundFinalized     = "раунд уже обработан, заявка заморожена"
	msgInvalidInput       = "некорректные данные порядка вариантов"
)

type Handler struct {
	useCase UpdateOptionOrderUseCase
	logger  Logger
}

func NewHandler(useCase UpdateOptionOrderUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/sections/{sectionId}/options/order
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	sectionID, err := strconv.ParseInt(vars["sectionId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /sections/{sectionId}/options/order - Invalid section ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSectionID)
		return
	}

	var req UpdateOptionOrderRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /sections/{sectionId}/options/order - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(actor, sectionID)); err != nil {
		var validationErr *updateOrder.OrderValidationError
		switch {
		// Текст ошибки валидации порядка уходит клиенту как есть
		case errors.As(err, &validationErr):
			h.logger.Warn("PUT /sections/{sectionId}/options/order - Validation failed: section_id=%d, error=%v", sectionID, err)
			handlers.RespondBadRequest(w, validationErr.Message)

		case errors.Is(err, updateOrder.ErrSectionNotFound):
			h.logger.Warn("PUT /sections/{sectionId}/options/order - Section not found: section_id=%d", sectionID)
			handlers.RespondNotFound(w, msgSectionNotFound)

		case errors.Is(err, updateOrder.ErrAccessDenied):
			h.logger.Warn("PUT /sections/{sectionId}/options/order - Access denied: section_id=%d, user_id=%d", sectionID, actor.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, updateOrder.ErrRoundFinalized):
			h.logger.Warn("PUT /sections/{sectionId}/options/order - Round finalized: section_id=%d", sectionID)
			handlers.RespondConflict(w, msgRoundFinalized)

		case errors.Is(err, updateOrder.ErrInvalidInput):
			h.logger.Warn("PUT /sections/{sectionId}/options/order - Invalid input: section_id=%d, error=%v", sectionID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /sections/{sectionId}/options/order - Failed: section_id=%d, error=%v", sectionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /sections/{sectionId}/options/order - Order updated: section_id=%d, user_id=%d", sectionID, actor.UserID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
