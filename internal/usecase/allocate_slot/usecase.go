package allocate_slot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SeasonalService/internal/domain"
	optionRepo "github.com/m04kA/SMC-SeasonalService/internal/infra/storage/option"
	"github.com/m04kA/SMC-SeasonalService/internal/service/events"
	"github.com/m04kA/SMC-SeasonalService/internal/service/permissions"
	"github.com/m04kA/SMC-SeasonalService/internal/service/timespans"
)

// UseCase use case ручного выделения слота обработчиком
type UseCase struct {
	roundRepo       RoundRepository
	applicationRepo ApplicationRepository
	sectionRepo     SectionRepository
	optionRepo      OptionRepository
	allocationRepo  AllocationRepository
	timespanSvc     TimespanService
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
	timespanSvc TimespanService,
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
		timespanSvc:     timespanSvc,
		hierarchy:       hierarchy,
		permissions:     permissionSvc,
		eventPublisher:  eventPublisher,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case выделения слота.
// Все проверки и запись выполняются в одной сериализуемой транзакции:
// вариант и секция блокируются FOR UPDATE, пересечения проверяются по
// конфликтному множеству единицы после разворачивания недельных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("AllocateSlot: user=%d, option=%d, day=%s, time=%s-%s",
		req.Actor.UserID, req.ReservationUnitOptionID, req.DayOfTheWeek, req.BeginTime, req.EndTime)

	// 1. Структурная валидация запроса
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("AllocateSlot: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем права: аллокация доступна админу и обработчику
	// организационной единицы
	option, err := uc.getOption(ctx, req.ReservationUnitOptionID)
	if err != nil {
		return nil, err
	}
	if err := uc.authorize(ctx, req.Actor, option.ReservationUnitID); err != nil {
		return nil, err
	}

	now := uc.timeProvider.Now()
	var result *domain.AllocatedTimeSlot

	// 3. Проверки и запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Перечитываем вариант с блокировкой
		option, err = uc.getOption(txCtx, req.ReservationUnitOptionID)
		if err != nil {
			return err
		}
		if option.Rejected {
			uc.logger.Warn("AllocateSlot: option id=%d is rejected", option.ID)
			return ErrOptionRejected
		}
		if option.Locked {
			uc.logger.Warn("AllocateSlot: option id=%d is locked", option.ID)
			return ErrOptionLocked
		}

		// 3.2. Загружаем секцию, заявку и раунд
		section, err := uc.sectionRepo.GetByID(txCtx, option.ApplicationSectionID)
		if err != nil {
			uc.logger.Error("AllocateSlot: failed to get section id=%d: %v", option.ApplicationSectionID, err)
			return fmt.Errorf("%w: failed to get section: %v", ErrInternal, err)
		}
		application, err := uc.applicationRepo.GetByID(txCtx, section.ApplicationID)
		if err != nil {
			uc.logger.Error("AllocateSlot: failed to get application id=%d: %v", section.ApplicationID, err)
			return fmt.Errorf("%w: failed to get application: %v", ErrInternal, err)
		}
		round, err := uc.roundRepo.GetByID(txCtx, application.ApplicationRoundID)
		if err != nil {
			uc.logger.Error("AllocateSlot: failed to get round id=%d: %v", application.ApplicationRoundID, err)
			return fmt.Errorf("%w: failed to get round: %v", ErrInternal, err)
		}

		// 3.3. Слоты выделяются только в фазе аллокации раунда
		if !round.IsInAllocation(now) {
			uc.logger.Warn("AllocateSlot: round id=%d is not in allocation (status=%s)", round.ID, round.Status(now))
			return ErrRoundNotInAllocation
		}

		// 3.4. Длительность против границ секции
		if err := validateDuration(req, section); err != nil {
			uc.logger.Warn("AllocateSlot: duration validation failed: %v", err)
			return err
		}

		// 3.5. Квота: не более одного слота на день недели и не больше
		// заявленного числа слотов в неделю
		existing, err := uc.allocationRepo.GetBySectionID(txCtx, section.ID)
		if err != nil {
			uc.logger.Error("AllocateSlot: failed to get existing slots for section id=%d: %v", section.ID, err)
			return fmt.Errorf("%w: failed to get existing slots: %v", ErrInternal, err)
		}
		allocatedDays := domain.DistinctAllocatedWeekdays(existing)
		if allocatedDays[req.DayOfTheWeek] {
			uc.logger.Warn("AllocateSlot: section id=%d already allocated on %s", section.ID, req.DayOfTheWeek)
			return ErrDayAlreadyAllocated
		}
		if len(allocatedDays) >= section.AppliedReservationsPerWeek {
			uc.logger.Warn("AllocateSlot: section id=%d quota reached (%d/%d)",
				section.ID, len(allocatedDays), section.AppliedReservationsPerWeek)
			return ErrQuotaReached
		}

		// 3.6. Проверка пересечений по конфликтному множеству единицы
		if err := uc.checkOverlap(txCtx, req, option.ReservationUnitID, section, round); err != nil {
			return err
		}

		// 3.7. Создаем слот
		slot := &domain.AllocatedTimeSlot{
			ReservationUnitOptionID: option.ID,
			DayOfTheWeek:            req.DayOfTheWeek,
			BeginTime:               req.BeginTime,
			EndTime:                 req.EndTime,
		}
		result, err = uc.allocationRepo.Create(txCtx, slot)
		if err != nil {
			uc.logger.Error("AllocateSlot: failed to create slot: %v", err)
			return fmt.Errorf("%w: failed to create slot: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("AllocateSlot: created slot id=%d for option id=%d", result.ID, option.ID)

	// 4. Событие публикуется вне транзакции, ошибка не прерывает запрос
	if pubErr := uc.eventPublisher.PublishAllocationCreated(ctx, events.AllocationCreatedEvent{
		AllocationID:         result.ID,
		ApplicationSectionID: option.ApplicationSectionID,
		ReservationUnitID:    option.ReservationUnitID,
		DayOfTheWeek:         string(result.DayOfTheWeek),
		BeginTime:            result.BeginTime.String(),
		EndTime:              result.EndTime.String(),
		CreatedAt:            result.CreatedAt,
	}); pubErr != nil {
		uc.logger.Warn("AllocateSlot: failed to publish event for slot id=%d: %v", result.ID, pubErr)
	}

	return &Response{
		ID:                      result.ID,
		ReservationUnitOptionID: result.ReservationUnitOptionID,
		ApplicationSectionID:    option.ApplicationSectionID,
		ReservationUnitID:       option.ReservationUnitID,
		DayOfTheWeek:            result.DayOfTheWeek,
		BeginTime:               result.BeginTime,
		EndTime:                 result.EndTime,
		CreatedAt:               result.CreatedAt,
	}, nil
}

func (uc *UseCase) getOption(ctx context.Context, id int64) (*domain.ReservationUnitOption, error) {
	option, err := uc.optionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, optionRepo.ErrOptionNotFound) {
			uc.logger.Warn("AllocateSlot: option id=%d not found", id)
			return nil, ErrOptionNotFound
		}
		uc.logger.Error("AllocateSlot: failed to get option id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get option: %v", ErrInternal, err)
	}
	return option, nil
}

func (uc *UseCase) authorize(ctx context.Context, actor domain.Actor, reservationUnitID int64) error {
	target := permissions.Target{}
	if unit, ok := uc.hierarchy.Unit(reservationUnitID); ok {
		target.UnitIDs = []int64{unit.UnitID}
	}
	if err := uc.permissions.Authorize(ctx, actor, permissions.ActionCreateAllocation, target); err != nil {
		if errors.Is(err, permissions.ErrAccessDenied) {
			return ErrAccessDenied
		}
		return fmt.Errorf("%w: authorization failed: %v", ErrInternal, err)
	}
	return nil
}

// checkOverlap разворачивает кандидата в конкретные интервалы на окне
// секции, обрезанном периодом резервирования раунда, и сверяет их с
// занятостью конфликтного множества единицы
func (uc *UseCase) checkOverlap(ctx context.Context, req *Request, unitID int64, section *domain.ApplicationSection, round *domain.ApplicationRound) error {
	windowBegin := section.ReservationsBeginDate
	if round.ReservationPeriodBegin.After(windowBegin) {
		windowBegin = round.ReservationPeriodBegin
	}
	windowEnd := section.ReservationsEndDate
	if round.ReservationPeriodEnd.Before(windowEnd) {
		windowEnd = round.ReservationPeriodEnd
	}

	candidate := &domain.AllocatedSlotWindow{
		ReservationUnitID: unitID,
		DayOfTheWeek:      req.DayOfTheWeek,
		BeginTime:         req.BeginTime,
		EndTime:           req.EndTime,
		WindowBegin:       windowBegin,
		WindowEnd:         windowEnd,
	}

	// Последний день окна покрывается целиком
	rangeEnd := windowEnd.AddDate(0, 0, 1)

	candidateSpans, err := candidate.Expand(windowBegin, rangeEnd)
	if err != nil {
		return fmt.Errorf("%w: failed to expand candidate slot: %v", ErrInternal, err)
	}

	busy, err := uc.timespanSvc.AffectingSpans(ctx, unitID, windowBegin, rangeEnd, timespans.Options{})
	if err != nil {
		uc.logger.Error("AllocateSlot: failed to get affecting spans for unit=%d: %v", unitID, err)
		return fmt.Errorf("%w: failed to get affecting spans: %v", ErrInternal, err)
	}

	for _, cand := range candidateSpans {
		for _, span := range busy {
			if cand.Overlaps(span) {
				uc.logger.Warn("AllocateSlot: candidate %s-%s overlaps busy span %s-%s on unit=%d",
					cand.Start.Format(time.RFC3339), cand.End.Format(time.RFC3339),
					span.Start.Format(time.RFC3339), span.End.Format(time.RFC3339), unitID)
				return ErrOverlap
			}
		}
	}
	return nil
}
