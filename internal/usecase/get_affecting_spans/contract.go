package get_affecting_spans

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SeasonalService/internal/domain"
	"github.com/m04kA/SMC-SeasonalService/internal/service/timespans"
)

// TimeSpanService интерфейс сервиса занятых интервалов
type TimeSpanService interface {
	AffectingSpans(ctx context.Context, unitID int64, from, to time.Time, opts timespans.Options) ([]domain.TimeSpan, error)
}

// HierarchyIndex интерфейс индекса иерархии площадок
type HierarchyIndex interface {
	Unit(unitID int64) (*domain.ReservationUnit, bool)
	RefreshedAt() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
