package get_application

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SeasonalService/internal/api/handlers"
	"github.com/m04kA/SMC-SeasonalService/internal/api/middleware"
	getApplication "github.com/m04kA/SMC-SeasonalService/internal/usecase/get_application"
)

const (
	msgUnauthorized         = "требуется аутентификация"
	msgInvalidApplicationID = "некорректный ID заявки"
	msgApplicationNotFound  = "заявка не найдена"
	msgAccessDenied         = "недостаточно прав для просмотра заявки"
)

type Handler struct {
	useCase GetApplicationUseCase
	logger  Logger
}

func NewHandler(useCase GetApplicationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/applications/{applicationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	applicationID, err := strconv.ParseInt(vars["applicationId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /applications/{applicationId} - Invalid application ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidApplicationID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getApplication.Request{
		Actor:         actor,
		ApplicationID: applicationID,
	})
	if err != nil {
		switch {
		case errors.Is(err, getApplication.ErrApplicationNotFound):
			h.logger.Warn("GET /applications/{applicationId} - Application not found: application_id=%d", applicationID)
			handlers.RespondNotFound(w, msgApplicationNotFound)

		case errors.Is(err, getApplication.ErrAccessDenied):
			h.logger.Warn("GET /applications/{applicationId} - Access denied: application_id=%d, user_id=%d", applicationID, actor.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("GET /applications/{applicationId} - Failed: application_id=%d, error=%v", applicationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
