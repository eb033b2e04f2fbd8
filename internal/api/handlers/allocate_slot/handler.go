package allocate_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SeasonalService/internal/api/handlers"
	"github.com/m04kA/SMC-SeasonalService/internal/api/middleware"
	allocateSlot "github.com/m04kA/SMC-SeasonalService/internal/usecase/allocate_slot"
)

const (
	msgUnauthorized        = "требуется аутентификация"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDayOrTime    = "некорректный день недели или формат времени, ожидается HH:MM"
	msgOptionNotFound      = "вариант единицы бронирования не найден"
	msgAccessDenied        = "недостаточно прав для выделения слота"
	msgOptionLocked        = "вариант заблокирован"
	msgOptionRejected      = "вариант отклонен"
	msgRoundNotInAlloc     = "раунд не находится в фазе распределения"
	msgInvalidDuration     = "длительность слота вне границ секции или не кратна 30 минутам"
	msgDayAlreadyAllocated = "у секции уже есть слот на этот день недели"
	msgQuotaReached        = "секция уже получила заявленное число слотов в неделю"
	msgOverlap             = "слот пересекается с существующей занятостью"
	msgInvalidInput        = "некорректные данные слота"
)

type Handler struct {
	useCase AllocateSlotUseCase
	logger  Logger
}

func NewHandler(useCase AllocateSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/allocations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	var req AllocateSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /allocations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actor)
	if err != nil {
		h.logger.Warn("POST /allocations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDayOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, allocateSlot.ErrOptionNotFound):
			h.logger.Warn("POST /allocations - Option not found: option_id=%d", req.ReservationUnitOptionID)
			handlers.RespondNotFound(w, msgOptionNotFound)

		case errors.Is(err, allocateSlot.ErrAccessDenied):
			h.logger.Warn("POST /allocations - Access denied: option_id=%d, user_id=%d", req.ReservationUnitOptionID, actor.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, allocateSlot.ErrOptionLocked):
			h.logger.Warn("POST /allocations - Option locked: option_id=%d", req.ReservationUnitOptionID)
			handlers.RespondConflict(w, msgOptionLocked)

		case errors.Is(err, allocateSlot.ErrOptionRejected):
			h.logger.Warn("POST /allocations - Option rejected: option_id=%d", req.ReservationUnitOptionID)
			handlers.RespondConflict(w, msgOptionRejected)

		case errors.Is(err, allocateSlot.ErrRoundNotInAllocation):
			h.logger.Warn("POST /allocations - Round not in allocation: option_id=%d", req.ReservationUnitOptionID)
			handlers.RespondConflict(w, msgRoundNotInAlloc)

		case errors.Is(err, allocateSlot.ErrInvalidDuration):
			h.logger.Warn("POST /allocations - Invalid duration: option_id=%d, error=%v", req.ReservationUnitOptionID, err)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		case errors.Is(err, allocateSlot.ErrDayAlreadyAllocated):
			h.logger.Warn("POST /allocations - Day already allocated: option_id=%d", req.ReservationUnitOptionID)
			handlers.RespondConflict(w, msgDayAlreadyAllocated)

		case errors.Is(err, allocateSlot.ErrQuotaReached):
			h.logger.Warn("POST /allocations - Quota reached: option_id=%d", req.ReservationUnitOptionID)
			handlers.RespondConflict(w, msgQuotaReached)

		case errors.Is(err, allocateSlot.ErrOverlap):
			h.logger.Warn("POST /allocations - Overlap: option_id=%d", req.ReservationUnitOptionID)
			handlers.RespondConflict(w, msgOverlap)

		case errors.Is(err, allocateSlot.ErrInvalidInput):
			h.logger.Warn("POST /allocations - Invalid input: option_id=%d, error=%v", req.ReservationUnitOptionID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /allocations - Failed to allocate slot: option_id=%d, error=%v", req.ReservationUnitOptionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /allocations - Slot allocated: allocation_id=%d, option_id=%d, user_id=%d",
		result.ID, req.ReservationUnitOptionID, actor.UserID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
