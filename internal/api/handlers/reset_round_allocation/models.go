package reset_round_allocation

import (
	resetAllocation "github.com/m04kA/SMC-SeasonalService/internal/usecase/reset_round_allocation"
)

// ResetResultResponse HTTP response model
type ResetResultResponse struct {
	RoundID             int64 `json:"roundId"`
	DeletedSlots        int64 `json:"deletedSlots"`
	DeletedReservations int64 `json:"deletedReservations"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *resetAllocation.Response) *ResetResultResponse {
	return &ResetResultResponse{
		RoundID:             resp.RoundID,
		DeletedSlots:        resp.DeletedSlots,
		DeletedReservations: resp.DeletedReservations,
	}
}
