package get_application_round

import (
	"time"

	"github.com/m04kA/SMC-SeasonalService/internal/domain"
)

// Request модель запроса раунда
type Request struct {
	RoundID int64
}

// Response раунд с производным статусом
type Response struct {
	ID     int64
	Name   string
	Status domain.RoundStatus

	ApplicationPeriodBegin time.Time
	ApplicationPeriodEnd   time.Time
	ReservationPeriodBegin time.Time
	ReservationPeriodEnd   time.Time

	HandledDate *time.Time
	SentDate    *time.Time

	ReservationUnitIDs []int64

	// AllocatedSlots общее число выделенных слотов раунда
	AllocatedSlots int
}
