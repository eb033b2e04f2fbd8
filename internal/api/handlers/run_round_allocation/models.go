package run_round_allocation

import (
	"time"

	runAllocation "github.com/m04kA/SMC-SeasonalService/internal/usecase/run_round_allocation"
)

// AllocationResultResponse HTTP response model
type AllocationResultResponse struct {
	RoundID               int64  `json:"roundId"`
	AllocatedSlots        int    `json:"allocatedSlots"`
	LockedOptions         int    `json:"lockedOptions"`
	GeneratedReservations int    `json:"generatedReservations"`
	HandledDate           string `json:"handledDate"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *runAllocation.Response) *AllocationResultResponse {
	return &AllocationResultResponse{
		RoundID:               resp.RoundID,
		AllocatedSlots:        resp.AllocatedSlots,
		LockedOptions:         resp.LockedOptions,
		GeneratedReservations: resp.GeneratedReservations,
		HandledDate:           resp.HandledDate.Format(time.RFC3339),
	}
}
