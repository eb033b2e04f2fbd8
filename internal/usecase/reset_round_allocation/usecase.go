package reset_round_allocation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SeasonalService/internal/domain"
	roundRepo "github.com/m04kA/SMC-SeasonalService/internal/infra/storage/round"
	"github.com/m04kA/SMC-SeasonalService/internal/service/events"
	"github.com/m04kA/SMC-SeasonalService/internal/service/permissions"
)

// UseCase use case сброса аллокации раунда.
//
// Удаляет все выделенные слоты раунда, снимает флаги locked/rejected с
// вариантов и очищает handled_date/sent_date, возвращая раунд в фазу
// аллокации. Если раунд уже был обработан, сгенерированные из слотов
// сезонные брони также удаляются
type UseCase struct {
	roundRepo       RoundRepository
	optionRepo      OptionRepository
	allocationRepo  AllocationRepository
	reservationRepo ReservationRepository
	hierarchy       HierarchyIndex
	permissions     PermissionService
	eventPublisher  EventPublisher
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	roundRepository RoundRepository,
	optionRepo OptionRepository,
	allocationRepo AllocationRepository,
	reservationRepo ReservationRepository,
	hierarchy HierarchyIndex,
	permissionSvc PermissionService,
	eventPublisher EventPublisher,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		roundRepo:       roundRepository,
		optionRepo:      optionRepo,
		allocationRepo:  allocationRepo,
		reservationRepo: reservationRepo,
		hierarchy:       hierarchy,
		permissions:     permissionSvc,
		eventPublisher:  eventPublisher,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет сброс аллокации в одной сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ResetRoundAllocation: user=%d, round=%d", req.Actor.UserID, req.RoundID)

	now := uc.timeProvider.Now()
	resp := &Response{RoundID: req.RoundID}

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		round, err := uc.roundRepo.GetByID(txCtx, req.RoundID)
		if err != nil {
			if errors.Is(err, roundRepo.ErrRoundNotFound) {
				uc.logger.Warn("ResetRoundAllocation: round id=%d not found", req.RoundID)
				return ErrRoundNotFound
			}
			uc.logger.Error("ResetRoundAllocation: failed to get round id=%d: %v", req.RoundID, err)
			return fmt.Errorf("%w: failed to get round: %v", ErrInternal, err)
		}

		if err := uc.authorize(txCtx, req.Actor, round); err != nil {
			return err
		}

		status := round.Status(now)
		if status == domain.RoundStatusUpcoming || status == domain.RoundStatusOpen {
			uc.logger.Warn("ResetRoundAllocation: round id=%d has not entered allocation (status=%s)", round.ID, status)
			return ErrRoundNotStarted
		}

		// Сезонные брони удаляются раньше слотов: они ссылаются на них
		wasHandled := round.HandledDate != nil
		if wasHandled {
			deleted, err := uc.reservationRepo.DeleteSeasonalByRoundID(txCtx, round.ID)
			if err != nil {
				uc.logger.Error("ResetRoundAllocation: failed to delete seasonal reservations for round id=%d: %v", round.ID, err)
				return fmt.Errorf("%w: failed to delete seasonal reservations: %v", ErrInternal, err)
			}
			resp.DeletedReservations = deleted
		}

		deletedSlots, err := uc.allocationRepo.DeleteByRoundID(txCtx, round.ID)
		if err != nil {
			uc.logger.Error("ResetRoundAllocation: failed to delete slots for round id=%d: %v", round.ID, err)
			return fmt.Errorf("%w: failed to delete slots: %v", ErrInternal, err)
		}
		resp.DeletedSlots = deletedSlots

		if err := uc.optionRepo.ClearFlagsByRoundID(txCtx, round.ID); err != nil {
			uc.logger.Error("ResetRoundAllocation: failed to clear option flags for round id=%d: %v", round.ID, err)
			return fmt.Errorf("%w: failed to clear option flags: %v", ErrInternal, err)
		}

		if err := uc.roundRepo.ClearResultDates(txCtx, round.ID); err != nil {
			uc.logger.Error("ResetRoundAllocation: failed to clear result dates for round id=%d: %v", round.ID, err)
			return fmt.Errorf("%w: failed to clear result dates: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("ResetRoundAllocation: round id=%d reset, slots=%d, reservations=%d",
		req.RoundID, resp.DeletedSlots, resp.DeletedReservations)

	if pubErr := uc.eventPublisher.PublishRoundReset(ctx, events.RoundResetEvent{
		ApplicationRoundID: req.RoundID,
		DeletedSlots:       resp.DeletedSlots,
		ResetAt:            now,
	}); pubErr != nil {
		uc.logger.Warn("ResetRoundAllocation: failed to publish event for round id=%d: %v", req.RoundID, pubErr)
	}
	return resp, nil
}

func (uc *UseCase) authorize(ctx context.Context, actor domain.Actor, round *domain.ApplicationRound) error {
	target := permissions.Target{}
	unitIDs := make(map[int64]bool)
	for _, id := range round.ReservationUnitIDs {
		if unit, ok := uc.hierarchy.Unit(id); ok {
			unitIDs[unit.UnitID] = true
		}
	}
	for id := range unitIDs {
		target.UnitIDs = append(target.UnitIDs, id)
	}

	if err := uc.permissions.Authorize(ctx, actor, permissions.ActionResetAllocation, target); err != nil {
		if errors.Is(err, permissions.ErrAccessDenied) {
			uc.logger.Warn("ResetRoundAllocation: access denied for user=%d", actor.UserID)
			return ErrAccessDenied
		}
		return fmt.Errorf("%w: authorization failed: %v", ErrInternal, err)
	}
	return nil
}
