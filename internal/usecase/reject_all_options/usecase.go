package reject_all_options

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SeasonalService/internal/domain"
	sectionRepo "github.com/m04kA/SMC-SeasonalService/internal/infra/storage/section"
	"github.com/m04kA/SMC-SeasonalService/internal/service/permissions"
)

// UseCase use case отклонения всех вариантов секции.
// Используется, когда заявитель или обработчик снимает секцию с аллокации
type UseCase struct {
	roundRepo       RoundRepository
	applicationRepo ApplicationRepository
	sectionRepo     SectionRepository
	optionRepo      OptionRepository
	allocationRepo  AllocationRepository
	hierarchy       HierarchyIndex
	permissions     PermissionService
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
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case отклонения всех вариантов.
// Отклонение запрещено, если хотя бы один вариант уже получил слот:
// операция либо отклоняет все варианты целиком, либо не делает ничего
func (uc *UseCase) Execute(ctx context.Context, req *Request) error {
	uc.logger.Info("RejectAllOptions: user=%d, section=%d", req.Actor.UserID, req.SectionID)

	now := uc.timeProvider.Now()

	return uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		section, err := uc.sectionRepo.GetByID(txCtx, req.SectionID)
		if err != nil {
			if errors.Is(err, sectionRepo.ErrSectionNotFound) {
				uc.logger.Warn("RejectAllOptions: section id=%d not found", req.SectionID)
				return ErrSectionNotFound
			}
			uc.logger.Error("RejectAllOptions: failed to get section id=%d: %v", req.SectionID, err)
			return fmt.Errorf("%w: failed to get section: %v", ErrInternal, err)
		}

		application, err := uc.applicationRepo.GetByID(txCtx, section.ApplicationID)
		if err != nil {
			uc.logger.Error("RejectAllOptions: failed to get application id=%d: %v", section.ApplicationID, err)
			return fmt.Errorf("%w: failed to get application: %v", ErrInternal, err)
		}
		round, err := uc.roundRepo.GetByID(txCtx, application.ApplicationRoundID)
		if err != nil {
			uc.logger.Error("RejectAllOptions: failed to get round id=%d: %v", application.ApplicationRoundID, err)
			return fmt.Errorf("%w: failed to get round: %v", ErrInternal, err)
		}
		if round.IsFinal(now) {
			uc.logger.Warn("RejectAllOptions: round id=%d is finalized", round.ID)
			return ErrRoundFinalized
		}

		// Варианты блокируются FOR UPDATE: между проверкой слотов и записью
		// не должно появиться новых аллокаций
		options, err := uc.optionRepo.GetBySectionID(txCtx, req.SectionID)
		if err != nil {
			uc.logger.Error("RejectAllOptions: failed to get options for section id=%d: %v", req.SectionID, err)
			return fmt.Errorf("%w: failed to get options: %v", ErrInternal, err)
		}

		if err := uc.authorize(txCtx, req.Actor, application.UserID, options); err != nil {
			return err
		}

		optionIDs := make([]int64, 0, len(options))
		for _, opt := range options {
			optionIDs = append(optionIDs, opt.ID)
		}
		allocated, err := uc.allocationRepo.CountByOptionIDs(txCtx, optionIDs)
		if err != nil {
			uc.logger.Error("RejectAllOptions: failed to count allocations for section id=%d: %v", req.SectionID, err)
			return fmt.Errorf("%w: failed to count allocations: %v", ErrInternal, err)
		}
		if allocated > 0 {
			uc.logger.Warn("RejectAllOptions: section id=%d has %d allocated slots", req.SectionID, allocated)
			return ErrSectionHasAllocations
		}

		if err := uc.optionRepo.RejectAllBySectionID(txCtx, req.SectionID); err != nil {
			uc.logger.Error("RejectAllOptions: failed to reject options for section id=%d: %v", req.SectionID, err)
			return fmt.Errorf("%w: failed to reject options: %v", ErrInternal, err)
		}

		uc.logger.Info("RejectAllOptions: rejected %d options for section id=%d", len(options), req.SectionID)
		return nil
	})
}

func (uc *UseCase) authorize(ctx context.Context, actor domain.Actor, ownerID int64, options []*domain.ReservationUnitOption) error {
	target := permissions.Target{ApplicationOwnerID: &ownerID}
	unitIDs := make(map[int64]bool)
	for _, opt := range options {
		if unit, ok := uc.hierarchy.Unit(opt.ReservationUnitID); ok {
			unitIDs[unit.UnitID] = true
		}
	}
	for id := range unitIDs {
		target.UnitIDs = append(target.UnitIDs, id)
	}

	if err := uc.permissions.Authorize(ctx, actor, permissions.ActionRejectOptions, target); err != nil {
		if errors.Is(err, permissions.ErrAccessDenied) {
			uc.logger.Warn("RejectAllOptions: access denied for user=%d", actor.UserID)
			return ErrAccessDenied
		}
		return fmt.Errorf("%w: authorization failed: %v", ErrInternal, err)
	}
	return nil
}
