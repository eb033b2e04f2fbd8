package timespans

import (
	"context"

	"github.com/m04kA/SMC-SeasonalService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-SeasonalService/internal/infra/storage/reservation"
)

// HierarchyIndex интерфейс индекса физических конфликтов между единицами
type HierarchyIndex interface {
	ConflictSet(unitID int64) ([]int64, error)
	Unit(unitID int64) (*domain.ReservationUnit, bool)
}

// ReservationRepository интерфейс репозитория прямых броней
type ReservationRepository interface {
	GetActiveWithFilter(ctx context.Context, filter reservationRepo.Filter) ([]*domain.Reservation, error)
}

// AllocationRepository интерфейс репозитория выделенных слотов
type AllocationRepository interface {
	GetWindowsByUnitIDs(ctx context.Context, unitIDs []int64, excludeAllocationID *int64) ([]*domain.AllocatedSlotWindow, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
