package create_application

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SeasonalService/internal/api/handlers"
	"github.com/m04kA/SMC-SeasonalService/internal/api/middleware"
	createApplication "github.com/m04kA/SMC-SeasonalService/internal/usecase/create_application"
)

const (
	msgUnauthorized       = "требуется аутентификация"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgRoundNotFound      = "раунд подачи заявок не найден"
	msgRoundNotOpen       = "период приема заявок не открыт"
	msgAccessDenied       = "недостаточно прав для создания заявки"
	msgInvalidInput       = "некорректные данные заявки"
)

type Handler struct {
	useCase CreateApplicationUseCase
	logger  Logger
}

func NewHandler(useCase CreateApplicationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/applications
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	var req CreateApplicationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /applications - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(actor))
	if err != nil {
		switch {
		case errors.Is(err, createApplication.ErrRoundNotFound):
			h.logger.Warn("POST /applications - Round not found: round_id=%d", req.ApplicationRoundID)
			handlers.RespondNotFound(w, msgRoundNotFound)

		case errors.Is(err, createApplication.ErrRoundNotOpen):
			h.logger.Warn("POST /applications - Round not open: round_id=%d, user_id=%d", req.ApplicationRoundID, actor.UserID)
			handlers.RespondConflict(w, msgRoundNotOpen)

		case errors.Is(err, createApplication.ErrAccessDenied):
			h.logger.Warn("POST /applications - Access denied: user_id=%d", actor.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, createApplication.ErrInvalidInput):
			h.logger.Warn("POST /applications - Invalid input: user_id=%d, error=%v", actor.UserID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /applications - Failed to create application: user_id=%d, error=%v", actor.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /applications - Application created: application_id=%d, user_id=%d", result.ID, actor.UserID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
