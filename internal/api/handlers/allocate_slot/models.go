package allocate_slot

import (
	"time"

	"github.com/m04kA/SMC-SeasonalService/internal/domain"
	allocateSlot "github.com/m04kA/SMC-SeasonalService/internal/usecase/allocate_slot"
	"github.com/m04kA/SMC-SeasonalService/pkg/types"
)

// AllocateSlotRequest HTTP request model
type AllocateSlotRequest struct {
	ReservationUnitOptionID int64  `json:"reservationUnitOptionId"`
	DayOfTheWeek            string `json:"dayOfTheWeek"`
	BeginTime               string `json:"beginTime"` // "10:00"
	EndTime                 string `json:"endTime"`   // "12:00"
}

// AllocationResponse HTTP response model
type AllocationResponse struct {
	ID                      int64  `json:"id"`
	ReservationUnitOptionID int64  `json:"reservationUnitOptionId"`
	ApplicationSectionID    int64  `json:"applicationSectionId"`
	ReservationUnitID       int64  `json:"reservationUnitId"`
	DayOfTheWeek            string `json:"dayOfTheWeek"`
	BeginTime               string `json:"beginTime"`
	EndTime                 string `json:"endTime"`
	CreatedAt               string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case (с парсингом дня и времени)
func (r *AllocateSlotRequest) ToUseCaseRequest(actor domain.Actor) (*allocateSlot.Request, error) {
	day, err := domain.ParseWeekday(r.DayOfTheWeek)
	if err != nil {
		return nil, err
	}
	begin, err := types.NewTimeStringFromString(r.BeginTime)
	if err != nil {
		return nil, err
	}
	end, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &allocateSlot.Request{
		Actor:                   actor,
		ReservationUnitOptionID: r.ReservationUnitOptionID,
		DayOfTheWeek:            day,
		BeginTime:               begin,
		EndTime:                 end,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *allocateSlot.Response) *AllocationResponse {
	return &AllocationResponse{
		ID:                      resp.ID,
		ReservationUnitOptionID: resp.ReservationUnitOptionID,
		ApplicationSectionID:    resp.ApplicationSectionID,
		ReservationUnitID:       resp.ReservationUnitID,
		DayOfTheWeek:            string(resp.DayOfTheWeek),
		BeginTime:               resp.BeginTime.String(),
		EndTime:                 resp.EndTime.String(),
		CreatedAt:               resp.CreatedAt.Format(time.RFC3339),
	}
}
