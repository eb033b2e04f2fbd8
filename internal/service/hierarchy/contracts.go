package hierarchy

import (
	"context"

	"github.com/m04kA/SMC-SeasonalService/internal/domain"
)

// HierarchyRepository интерфейс репозитория иерархии пространств и ресурсов
type HierarchyRepository interface {
	ListSpaces(ctx context.Context) ([]*domain.Space, error)
	ListResources(ctx context.Context) ([]*domain.Resource, error)
	ListReservationUnits(ctx context.Context) ([]*domain.ReservationUnit, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
