package reservation

import (
	"time"

	"github.com/m04kA/SMC-SeasonalService/internal/domain"
	"github.com/m04kA/SMC-SeasonalService/pkg/dbmetrics"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Filter фильтр для выборки броней при построении занятых интервалов
type Filter struct {
	ReservationUnitIDs []int64
	From               time.Time
	To                 time.Time

	// ExcludeReservationID исключить конкретную бронь
	// (проверка "пересекается ли что-то, кроме меня самого")
	ExcludeReservationID *int64

	// ExcludeTypes исключить брони указанных типов (например, blocked)
	ExcludeTypes []domain.ReservationType
}
