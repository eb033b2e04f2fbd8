package create_section

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SeasonalService/internal/domain"
	"github.com/m04kA/SMC-SeasonalService/internal/service/permissions"
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
	Create(ctx context.Context, section *domain.ApplicationSection, ranges []*domain.SuitableTimeRange) (*domain.ApplicationSection, error)
}

// OptionRepository интерфейс репозитория вариантов единиц
type OptionRepository interface {
	CreateBatch(ctx context.Context, options []*domain.ReservationUnitOption) error
}

// PermissionService интерфейс сервиса прав доступа
type PermissionService interface {
	Authorize(ctx context.Context, actor domain.Actor, action permissions.Action, target permissions.Target) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
