package allocate_slot

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SeasonalService/internal/domain"
	"github.com/m04kA/SMC-SeasonalService/internal/service/events"
	"github.com/m04kA/SMC-SeasonalService/internal/service/permissions"
	"github.com/m04kA/SMC-SeasonalService/internal/service/timespans"
)

// RoundRepository интерфейс репозитория раундов
type RoundRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ApplicationRound, error)
}

// ApplicationRepository интерфейс репозитория заявок
type ApplicationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Application, error)
}

// SectionRepository интерфейс репозитория секций заявок
type SectionRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ApplicationSection, error)
}

// OptionRepository интерфейс репозитория вариантов единиц
type OptionRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ReservationUnitOption, error)
}

// AllocationRepository интерфейс репозитория выделенных слотов
type AllocationRepository interface {
	Create(ctx context.Context, slot *domain.AllocatedTimeSlot) (*domain.AllocatedTimeSlot, error)
	GetBySectionID(ctx context.Context, sectionID int64) ([]*domain.AllocatedTimeSlot, error)
}

// TimespanService интерфейс сервиса занятых интервалов
type TimespanService interface {
	AffectingSpans(ctx context.Context, unitID int64, from, to time.Time, opts timespans.Options) ([]domain.TimeSpan, error)
}

// HierarchyIndex интерфейс индекса иерархии
type HierarchyIndex interface {
	Unit(unitID int64) (*domain.ReservationUnit, bool)
}

// PermissionService интерфейс сервиса прав доступа
type PermissionService interface {
	Authorize(ctx context.Context, actor domain.Actor, action permissions.Action, target permissions.Target) error
}

// EventPublisher интерфейс издателя доменных событий
type EventPublisher interface {
	PublishAllocationCreated(ctx context.Context, event events.AllocationCreatedEvent) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
