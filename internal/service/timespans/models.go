package timespans

import "github.com/m04kA/SMC-SeasonalService/internal/domain"

// Options параметры выборки занятых интервалов
type Options struct {
	// ExcludeReservationID исключить конкретную бронь из результата
	ExcludeReservationID *int64

	// ExcludeAllocationID исключить конкретный выделенный слот из результата
	ExcludeAllocationID *int64

	// ExcludeReservationTypes исключить брони указанных типов
	ExcludeReservationTypes []domain.ReservationType
}
