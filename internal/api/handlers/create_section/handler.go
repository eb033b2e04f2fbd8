package create_section

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SeasonalService/internal/api/handlers"
	"github.com/m04kA/SMC-SeasonalService/internal/api/middleware"
	createSection "github.com/m04kA/SMC-SeasonalService/internal/usecase/create_section"
)

const (
	msgUnauthorized         = "требуется аутентификация"
	msgInvalidApplicationID = "некорректный ID заявки"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDateOrTime    = "некорректный формат даты или времени"
	msgApplicationNotFound  = "заявка не найдена"
	msgAccessDenied         = "недостаточно прав для изменения заявки"
	msgRoundNotOpen         = "период приема заявок не открыт"
	msgApplicationCancelled = "заявка отменена"
	msgInvalidDuration      = "некорректные границы длительности"
	msgDatesOutsideRound    = "даты секции выходят за период резервирования раунда"
	msgUnitNotInRound       = "единица бронирования не участвует в раунде"
	msgInvalidInput         = "некорректные данные секции"
)

type Handler struct {
	useCase CreateSectionUseCase
	logger  Logger
}

func NewHandler(useCase CreateSectionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/applications/{applicationId}/sections
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	applicationID, err := strconv.ParseInt(vars["applicationId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /applications/{applicationId}/sections - Invalid application ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidApplicationID)
		return
	}

	var req CreateSectionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /applications/{applicationId}/sections - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actor, applicationID)
	if err != nil {
		h.logger.Warn("POST /applications/{applicationId}/sections - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createSection.ErrApplicationNotFound):
			h.logger.Warn("POST /applications/{applicationId}/sections - Application not found: application_id=%d", applicationID)
			handlers.RespondNotFound(w, msgApplicationNotFound)

		case errors.Is(err, createSection.ErrAccessDenied):
			h.logger.Warn("POST /applications/{applicationId}/sections - Access denied: application_id=%d, user_id=%d", applicationID, actor.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, createSection.ErrRoundNotOpen):
			h.logger.Warn("POST /applications/{applicationId}/sections - Round not open: application_id=%d", applicationID)
			handlers.RespondConflict(w, msgRoundNotOpen)

		case errors.Is(err, createSection.ErrApplicationCancelled):
			h.logger.Warn("POST /applications/{applicationId}/sections - Application cancelled: application_id=%d", applicationID)
			handlers.RespondConflict(w, msgApplicationCancelled)

		case errors.Is(err, createSection.ErrInvalidDuration):
			h.logger.Warn("POST /applications/{applicationId}/sections - Invalid duration: application_id=%d, error=%v", applicationID, err)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		case errors.Is(err, createSection.ErrDatesOutsideRound):
			h.logger.Warn("POST /applications/{applicationId}/sections - Dates outside round: application_id=%d, error=%v", applicationID, err)
			handlers.RespondBadRequest(w, msgDatesOutsideRound)

		case errors.Is(err, createSection.ErrUnitNotInRound):
			h.logger.Warn("POST /applications/{applicationId}/sections - Unit not in round: application_id=%d, error=%v", applicationID, err)
			handlers.RespondBadRequest(w, msgUnitNotInRound)

		case errors.Is(err, createSection.ErrInvalidInput):
			h.logger.Warn("POST /applications/{applicationId}/sections - Invalid input: application_id=%d, error=%v", applicationID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /applications/{applicationId}/sections - Failed: application_id=%d, error=%v", applicationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /applications/{applicationId}/sections - Section created: section_id=%d, application_id=%d", result.ID, applicationID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
