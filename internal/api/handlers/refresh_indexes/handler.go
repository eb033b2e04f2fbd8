package refresh_indexes

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SeasonalService/internal/api/handlers"
	"github.com/m04kA/SMC-SeasonalService/internal/api/middleware"
	refreshIndexes "github.com/m04kA/SMC-SeasonalService/internal/usecase/refresh_indexes"
)

const (
	msgUnauthorized = "требуется аутентификация"
	msgAccessDenied = "недостаточно прав для пересборки индекса"
)

type Handler struct {
	useCase RefreshIndexesUseCase
	logger  Logger
}

func NewHandler(useCase RefreshIndexesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/indexes/refresh
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &refreshIndexes.Request{Actor: actor})
	if err != nil {
		switch {
		case errors.Is(err, refreshIndexes.ErrAccessDenied):
			h.logger.Warn("POST /indexes/refresh - Access denied: user_id=%d", actor.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("POST /indexes/refresh - Failed: user_id=%d, error=%v", actor.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /indexes/refresh - Index rebuilt: user_id=%d", actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
