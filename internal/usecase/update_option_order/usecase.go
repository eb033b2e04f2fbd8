package update_option_order

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SeasonalService/internal/domain"
	sectionRepo "github.com/m04kA/SMC-SeasonalService/internal/infra/storage/section"
	"github.com/m04kA/SMC-SeasonalService/internal/service/permissions"
)

// UseCase use case пакетного обновления порядка вариантов секции
type UseCase struct {
	roundRepo       RoundRepository
	applicationRepo ApplicationRepository
	sectionRepo     SectionRepository
	optionRepo      OptionRepository
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
		hierarchy:       hierarchy,
		permissions:     permissionSvc,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case обновления порядка.
// Валидация и запись происходят в одной сериализуемой транзакции:
// при ошибке валидации ни одно значение не записывается
func (uc *UseCase) Execute(ctx context.Context, req *Request) error {
	uc.logger.Info("UpdateOptionOrder: user=%d, section=%d, orders=%d",
		req.Actor.UserID, req.SectionID, len(req.Orders))

	if req.SectionID <= 0 || len(req.Orders) == 0 {
		return fmt.Errorf("%w: section_id and orders are required", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()

	return uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		section, err := uc.sectionRepo.GetByID(txCtx, req.SectionID)
		if err != nil {
			if errors.Is(err, sectionRepo.ErrSectionNotFound) {
				uc.logger.Warn("UpdateOptionOrder: section id=%d not found", req.SectionID)
				return ErrSectionNotFound
			}
			uc.logger.Error("UpdateOptionOrder: failed to get section id=%d: %v", req.SectionID, err)
			return fmt.Errorf("%w: failed to get section: %v", ErrInternal, err)
		}

		application, err := uc.applicationRepo.GetByID(txCtx, section.ApplicationID)
		if err != nil {
			uc.logger.Error("UpdateOptionOrder: failed to get application id=%d: %v", section.ApplicationID, err)
			return fmt.Errorf("%w: failed to get application: %v", ErrInternal, err)
		}
		round, err := uc.roundRepo.GetByID(txCtx, application.ApplicationRoundID)
		if err != nil {
			uc.logger.Error("UpdateOptionOrder: failed to get round id=%d: %v", application.ApplicationRoundID, err)
			return fmt.Errorf("%w: failed to get round: %v", ErrInternal, err)
		}
		if round.IsFinal(now) {
			uc.logger.Warn("UpdateOptionOrder: round id=%d is finalized", round.ID)
			return ErrRoundFinalized
		}

		// Варианты блокируются FOR UPDATE на время пакетного обновления
		options, err := uc.optionRepo.GetBySectionID(txCtx, req.SectionID)
		if err != nil {
			uc.logger.Error("UpdateOptionOrder: failed to get options for section id=%d: %v", req.SectionID, err)
			return fmt.Errorf("%w: failed to get options: %v", ErrInternal, err)
		}

		if err := uc.authorize(txCtx, req, application.UserID, options); err != nil {
			return err
		}

		// Запрос должен покрывать ровно варианты секции
		known := make(map[int64]bool, len(options))
		for _, opt := range options {
			known[opt.ID] = true
		}
		seen := make(map[int64]bool, len(req.Orders))
		for _, o := range req.Orders {
			if !known[o.OptionID] {
				return fmt.Errorf("%w: option %d does not belong to section %d", ErrInvalidInput, o.OptionID, req.SectionID)
			}
			if seen[o.OptionID] {
				return fmt.Errorf("%w: option %d listed twice", ErrInvalidInput, o.OptionID)
			}
			seen[o.OptionID] = true
		}
		if len(req.Orders) != len(options) {
			return fmt.Errorf("%w: orders must cover all %d options of the section", ErrInvalidInput, len(options))
		}

		if err := validateOrders(req.Orders); err != nil {
			uc.logger.Warn("UpdateOptionOrder: validation failed: %v", err)
			return err
		}

		for _, o := range req.Orders {
			if err := uc.optionRepo.UpdatePreferredOrder(txCtx, o.OptionID, o.PreferredOrder); err != nil {
				uc.logger.Error("UpdateOptionOrder: failed to update option id=%d: %v", o.OptionID, err)
				return fmt.Errorf("%w: failed to update option: %v", ErrInternal, err)
			}
		}

		uc.logger.Info("UpdateOptionOrder: updated %d options for section id=%d", len(req.Orders), req.SectionID)
		return nil
	})
}

func (uc *UseCase) authorize(ctx context.Context, req *Request, ownerID int64, options []*domain.ReservationUnitOption) error {
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

	if err := uc.permissions.Authorize(ctx, req.Actor, permissions.ActionReorderOptions, target); err != nil {
		if errors.Is(err, permissions.ErrAccessDenied) {
			uc.logger.Warn("UpdateOptionOrder: access denied for user=%d", req.Actor.UserID)
			return ErrAccessDenied
		}
		return fmt.Errorf("%w: authorization failed: %v", ErrInternal, err)
	}
	return nil
}
