package get_application_round

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SeasonalService/internal/api/handlers"
	getRound "github.com/m04kA/SMC-SeasonalService/internal/usecase/get_application_round"
)

const (
	msgInvalidRoundID = "некорректный ID раунда"
	msgRoundNotFound  = "раунд подачи заявок не найден"
)

type Handler struct {
	useCase GetApplicationRoundUseCase
	logger  Logger
}

func NewHandler(useCase GetApplicationRoundUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/application-rounds/{roundId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	roundID, err := strconv.ParseInt(vars["roundId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /application-rounds/{roundId} - Invalid round ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRoundID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getRound.Request{RoundID: roundID})
	if err != nil {
		switch {
		case errors.Is(err, getRound.ErrRoundNotFound):
			h.logger.Warn("GET /application-rounds/{roundId} - Round not found: round_id=%d", roundID)
			handlers.RespondNotFound(w, msgRoundNotFound)

		default:
			h.logger.Error("GET /application-rounds/{roundId} - Failed to get round: round_id=%d, error=%v", roundID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
