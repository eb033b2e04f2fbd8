package get_application_round

import (
	"time"

	"github.com/m04kA/SMC-SeasonalService/internal/domain"
	getRound "github.com/m04kA/SMC-SeasonalService/internal/usecase/get_application_round"
)

// RoundResponse HTTP response model
type RoundResponse struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`

	ApplicationPeriodBegin string `json:"applicationPeriodBegin"`
	ApplicationPeriodEnd   string `json:"applicationPeriodEnd"`
	ReservationPeriodBegin string `json:"reservationPeriodBegin"`
	ReservationPeriodEnd   string `json:"reservationPeriodEnd"`

	HandledDate *string `json:"handledDate,omitempty"`
	SentDate    *string `json:"sentDate,omitempty"`

	ReservationUnitIDs []int64 `json:"reservationUnitIds"`
	AllocatedSlots     int     `json:"allocatedSlots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getRound.Response) *RoundResponse {
	return &RoundResponse{
		ID:                     resp.ID,
		Name:                   resp.Name,
		Status:                 string(resp.Status),
		ApplicationPeriodBegin: resp.ApplicationPeriodBegin.Format(time.RFC3339),
		ApplicationPeriodEnd:   resp.ApplicationPeriodEnd.Format(time.RFC3339),
		ReservationPeriodBegin: resp.ReservationPeriodBegin.Format(domain.DateFormat),
		ReservationPeriodEnd:   resp.ReservationPeriodEnd.Format(domain.DateFormat),
		HandledDate:            formatTimePtr(resp.HandledDate, time.RFC3339),
		SentDate:               formatTimePtr(resp.SentDate, time.RFC3339),
		ReservationUnitIDs:     resp.ReservationUnitIDs,
		AllocatedSlots:         resp.AllocatedSlots,
	}
}

func formatTimePtr(t *time.Time, layout string) *string {
	if t == nil {
		return nil
	}
	s := t.Format(layout)
	return &s
}
