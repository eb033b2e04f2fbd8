package get_affecting_spans

import (
	"time"

	"github.com/m04kA/SMC-SeasonalService/internal/domain"
)

// Request модель запроса занятых интервалов площадки
type Request struct {
	ReservationUnitID int64
	From              time.Time
	To                time.Time

	// ExcludeReservationID исключает бронь из расчета (при переносе)
	ExcludeReservationID *int64
	// ExcludeAllocationID исключает выделенный слот из расчета
	ExcludeAllocationID *int64
	// ExcludeReservationTypes типы броней, не участвующие в расчете
	ExcludeReservationTypes []domain.ReservationType
}

// Response список занятых интервалов по конфликтному множеству площадки
type Response struct {
	ReservationUnitID int64
	Spans             []domain.TimeSpan
}
