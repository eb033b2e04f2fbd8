package create_application

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
	Create(ctx context.Context, app *domain.Application) (*domain.Application, error)
}

// PermissionService интерфейс сервиса прав доступа
type PermissionService interface {
	Authorize(ctx context.Context, actor domain.Actor, action permissions.Action, target permissions.Target) error
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
