package delete_allocation

import (
	"context"
	"errors"
	"fmt"

	allocationRepo "github.com/m04kA/SMC-SeasonalService/internal/infra/storage/allocation"
	"github.com/m04kA/SMC-SeasonalService/internal/service/events"
	"github.com/m04kA/SMC-SeasonalService/internal/service/permissions"
)

// UseCase use case удаления выделенного слота обработчиком
type UseCase struct {
	roundRepo       RoundRepository
	applicationRepo ApplicationRepository
	sectionRepo     SectionRepository
	optionRepo      OptionRepository
	allocationRepo  AllocationRepository
	hierarchy       HierarchyIndex
	permissions     PermissionService
	eventPublisher  EventPublisher
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	roundRepo RoundRepository,
	applicationRepo ApplicationRepository,
	sectionRepo SectionRepository,
	optionRepo OptionRepository,
	allocationRepo AllocationRepository,
	hierarchy HierarchyIndex,
	permissionSvc PermissionService,
	eventPublisher EventPublisher,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		roundRepo:       roundRepo,
		applicationRepo: applicationRepo,
		sectionRepo:     sectionRepo,
		optionRepo:      optionRepo,
		allocationRepo:  allocationRepo,
		hierarchy:       hierarchy,
		permissions:     permissionSvc,
		eventPublisher:  eventPublisher,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case удаления слота.
// Слот можно удалить только пока раунд находится в фазе аллокации.
// Снятие слота разблокирует его вариант: раз место освободилось,
// движок снова может пытаться выделять на нем слоты
func (uc *UseCase) Execute(ctx context.Context, req *Request) error {
	uc.logger.Info("DeleteAllocation: user=%d, allocation=%d", req.Actor.UserID, req.AllocationID)

	now := uc.timeProvider.Now()
	var sectionID int64

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		slot, err := uc.allocationRepo.GetByID(txCtx, req.AllocationID)
		if err != nil {
			if errors.Is(err, allocationRepo.ErrAllocationNotFound) {
				uc.logger.Warn("DeleteAllocation: allocation id=%d not found", req.AllocationID)
				return ErrAllocationNotFound
			}
			uc.logger.Error("DeleteAllocation: failed to get allocation id=%d: %v", req.AllocationID, err)
			return fmt.Errorf("%w: failed to get allocation: %v", ErrInternal, err)
		}

		option, err := uc.optionRepo.GetByID(txCtx, slot.ReservationUnitOptionID)
		if err != nil {
			uc.logger.Error("DeleteAllocation: failed to get option id=%d: %v", slot.ReservationUnitOptionID, err)
			return fmt.Errorf("%w: failed to get option: %v", ErrInternal, err)
		}
		sectionID = option.ApplicationSectionID

		// Права проверяются по организационной единице варианта
		target := permissions.Target{}
		if unit, ok := uc.hierarchy.Unit(option.ReservationUnitID); ok {
			target.UnitIDs = []int64{unit.UnitID}
		}
		if err := uc.permissions.Authorize(txCtx, req.Actor, permissions.ActionDeleteAllocation, target); err != nil {
			if errors.Is(err, permissions.ErrAccessDenied) {
				uc.logger.Warn("DeleteAllocation: access denied for user=%d", req.Actor.UserID)
				return ErrAccessDenied
			}
			return fmt.Errorf("%w: authorization failed: %v", ErrInternal, err)
		}

		section, err := uc.sectionRepo.GetByID(txCtx, option.ApplicationSectionID)
		if err != nil {
			uc.logger.Error("DeleteAllocation: failed to get section id=%d: %v", option.ApplicationSectionID, err)
			return fmt.Errorf("%w: failed to get section: %v", ErrInternal, err)
		}
		application, err := uc.applicationRepo.GetByID(txCtx, section.ApplicationID)
		if err != nil {
			uc.logger.Error("DeleteAllocation: failed to get application id=%d: %v", section.ApplicationID, err)
			return fmt.Errorf("%w: failed to get application: %v", ErrInternal, err)
		}
		round, err := uc.roundRepo.GetByID(txCtx, application.ApplicationRoundID)
		if err != nil {
			uc.logger.Error("DeleteAllocation: failed to get round id=%d: %v", application.ApplicationRoundID, err)
			return fmt.Errorf("%w: failed to get round: %v", ErrInternal, err)
		}

		if round.IsFinal(now) {
			uc.logger.Warn("DeleteAllocation: round id=%d is finalized (status=%s)", round.ID, round.Status(now))
			return ErrRoundFinalized
		}

		if err := uc.allocationRepo.Delete(txCtx, req.AllocationID); err != nil {
			uc.logger.Error("DeleteAllocation: failed to delete allocation id=%d: %v", req.AllocationID, err)
			return fmt.Errorf("%w: failed to delete allocation: %v", ErrInternal, err)
		}

		if option.Locked {
			if err := uc.optionRepo.SetLocked(txCtx, option.ID, false); err != nil {
				uc.logger.Error("DeleteAllocation: failed to unlock option id=%d: %v", option.ID, err)
				return fmt.Errorf("%w: failed to unlock option: %v", ErrInternal, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	uc.logger.Info("DeleteAllocation: deleted allocation id=%d", req.AllocationID)

	if pubErr := uc.eventPublisher.PublishAllocationDeleted(ctx, events.AllocationDeletedEvent{
		AllocationID:         req.AllocationID,
		ApplicationSectionID: sectionID,
		DeletedAt:            now,
	}); pubErr != nil {
		uc.logger.Warn("DeleteAllocation: failed to publish event for allocation id=%d: %v", req.AllocationID, pubErr)
	}
	return nil
}
