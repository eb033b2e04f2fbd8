package permissions

import (
	"context"
	"errors"

	"github.com/m04kA/SMC-SeasonalService/internal/domain"
	"github.com/m04kA/SMC-SeasonalService/internal/integrations/profileservice"
)

// Service сервис проверки прав доступа.
//
// Роль берется из токена, список управляемых организационных единиц
// обработчика загружается из ProfileService. Админ может всё; обработчик
// управляет аллокацией только в своих единицах; заявитель работает только
// с собственными заявками
type Service struct {
	profileClient ProfileServiceClient
	logger        Logger
}

// NewService создает новый экземпляр сервиса прав доступа
func NewService(profileClient ProfileServiceClient, logger Logger) *Service {
	return &Service{
		profileClient: profileClient,
		logger:        logger,
	}
}

// Authorize проверяет, что actor может выполнить action над target.
// Возвращает ErrAccessDenied при отсутствии прав
func (s *Service) Authorize(ctx context.Context, actor domain.Actor, action Action, target Target) error {
	if actor.IsAdmin() {
		return nil
	}

	switch actor.Role {
	case domain.RoleHandler:
		return s.authorizeHandler(ctx, actor, target)
	case domain.RoleReserver:
		return s.authorizeReserver(actor, action, target)
	default:
		s.logger.Warn("Authorize: unknown role=%s for user=%d", actor.Role, actor.UserID)
		return ErrAccessDenied
	}
}

// authorizeHandler проверяет, что все затронутые организационные единицы
// находятся под управлением обработчика
func (s *Service) authorizeHandler(ctx context.Context, actor domain.Actor, target Target) error {
	if len(target.UnitIDs) == 0 {
		return nil
	}

	profile, err := s.profileClient.GetProfileWithGracefulDegradation(ctx, actor.UserID)
	if err != nil {
		// Без профиля не можем подтвердить управляемые единицы
		if errors.Is(err, profileservice.ErrServiceDegraded) || errors.Is(err, profileservice.ErrProfileNotFound) {
			s.logger.Warn("Authorize: profile unavailable for handler user=%d, denying unit-scoped action", actor.UserID)
			return ErrAccessDenied
		}
		s.logger.Error("Authorize: profile lookup failed for user=%d: %v", actor.UserID, err)
		return ErrInternal
	}

	managed := make(map[int64]bool, len(profile.ManagedUnitIDs))
	for _, id := range profile.ManagedUnitIDs {
		managed[id] = true
	}
	for _, id := range target.UnitIDs {
		if !managed[id] {
			s.logger.Warn("Authorize: handler user=%d does not manage unit=%d", actor.UserID, id)
			return ErrAccessDenied
		}
	}
	return nil
}

// authorizeReserver проверяет, что заявитель работает с собственной заявкой
func (s *Service) authorizeReserver(actor domain.Actor, action Action, target Target) error {
	if !reserverActions[action] {
		return ErrAccessDenied
	}
	if action == ActionCreateApplication {
		return nil
	}
	if target.ApplicationOwnerID == nil || *target.ApplicationOwnerID != actor.UserID {
		s.logger.Warn("Authorize: user=%d is not the owner of the application", actor.UserID)
		return ErrAccessDenied
	}
	return nil
}
