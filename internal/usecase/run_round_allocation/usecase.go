package run_round_allocation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SeasonalService/internal/domain"
	roundRepo "github.com/m04kA/SMC-SeasonalService/internal/infra/storage/round"
	"github.com/m04kA/SMC-SeasonalService/internal/service/events"
	"github.com/m04kA/SMC-SeasonalService/internal/service/permissions"
	"github.com/m04kA/SMC-SeasonalService/internal/service/timespans"
	"github.com/m04kA/SMC-SeasonalService/pkg/types"
)

// UseCase use case массовой аллокации раунда.
//
// Движок проходит секции раунда и выделяет слоты автоматически:
// PRIMARY-диапазоны раньше SECONDARY, внутри приоритета варианты в порядке
// preferred_order, не более одного слота на день недели и не больше
// заявленной недельной квоты секции. Исчерпанные варианты блокируются.
// По завершении раунд помечается обработанным и из слотов генерируются
// сезонные брони
type UseCase struct {
	roundRepo       RoundRepository
	sectionRepo     SectionRepository
	optionRepo      OptionRepository
	allocationRepo  AllocationRepository
	reservationRepo ReservationRepository
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
	roundRepository RoundRepository,
	sectionRepo SectionRepository,
	optionRepo OptionRepository,
	allocationRepo AllocationRepository,
	reservationRepo ReservationRepository,
	timespanSvc TimespanService,
	hierarchy HierarchyIndex,
	permissionSvc PermissionService,
	eventPublisher EventPublisher,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		roundRepo:       roundRepository,
		sectionRepo:     sectionRepo,
		optionRepo:      optionRepo,
		allocationRepo:  allocationRepo,
		reservationRepo: reservationRepo,
		timespanSvc:     timespanSvc,
		hierarchy:       hierarchy,
		permissions:     permissionSvc,
		eventPublisher:  eventPublisher,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет массовую аллокацию раунда в одной сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RunRoundAllocation: user=%d, round=%d", req.Actor.UserID, req.RoundID)

	now := uc.timeProvider.Now()
	resp := &Response{RoundID: req.RoundID}

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Раунд блокируется FOR UPDATE на всю длительность прохода
		round, err := uc.roundRepo.GetByID(txCtx, req.RoundID)
		if err != nil {
			if errors.Is(err, roundRepo.ErrRoundNotFound) {
				uc.logger.Warn("RunRoundAllocation: round id=%d not found", req.RoundID)
				return ErrRoundNotFound
			}
			uc.logger.Error("RunRoundAllocation: failed to get round id=%d: %v", req.RoundID, err)
			return fmt.Errorf("%w: failed to get round: %v", ErrInternal, err)
		}

		if err := uc.authorize(txCtx, req.Actor, round); err != nil {
			return err
		}

		if !round.IsInAllocation(now) {
			uc.logger.Warn("RunRoundAllocation: round id=%d is not in allocation (status=%s)", round.ID, round.Status(now))
			return ErrRoundNotInAllocation
		}

		// 2. Секции отправленных, неотмененных заявок раунда
		sections, err := uc.sectionRepo.GetByRoundID(txCtx, round.ID)
		if err != nil {
			uc.logger.Error("RunRoundAllocation: failed to get sections for round id=%d: %v", round.ID, err)
			return fmt.Errorf("%w: failed to get sections: %v", ErrInternal, err)
		}

		for _, section := range sections {
			allocated, locked, err := uc.allocateSection(txCtx, round, section)
			if err != nil {
				return err
			}
			resp.AllocatedSlots += allocated
			resp.LockedOptions += locked
		}

		// 3. Раунд помечается обработанным, слоты замораживаются
		if err := uc.roundRepo.SetHandledDate(txCtx, round.ID); err != nil {
			uc.logger.Error("RunRoundAllocation: failed to set handled date for round id=%d: %v", round.ID, err)
			return fmt.Errorf("%w: failed to set handled date: %v", ErrInternal, err)
		}
		resp.HandledDate = now

		// 4. Из всех слотов раунда генерируются сезонные брони
		generated, err := uc.generateReservations(txCtx, round, sections)
		if err != nil {
			return err
		}
		resp.GeneratedReservations = generated
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("RunRoundAllocation: round id=%d handled, slots=%d, locked=%d, reservations=%d",
		req.RoundID, resp.AllocatedSlots, resp.LockedOptions, resp.GeneratedReservations)

	if pubErr := uc.eventPublisher.PublishRoundHandled(ctx, events.RoundHandledEvent{
		ApplicationRoundID: req.RoundID,
		AllocatedSlots:     resp.AllocatedSlots,
		HandledAt:          resp.HandledDate,
	}); pubErr != nil {
		uc.logger.Warn("RunRoundAllocation: failed to publish event for round id=%d: %v", req.RoundID, pubErr)
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

	if err := uc.permissions.Authorize(ctx, actor, permissions.ActionRunAllocation, target); err != nil {
		if errors.Is(err, permissions.ErrAccessDenied) {
			uc.logger.Warn("RunRoundAllocation: access denied for user=%d", actor.UserID)
			return ErrAccessDenied
		}
		return fmt.Errorf("%w: authorization failed: %v", ErrInternal, err)
	}
	return nil
}

// allocateSection проходит подходящие диапазоны секции в порядке приоритета
// и пытается выделить слот на каждый еще не занятый день недели.
// Возвращает число выделенных слотов и заблокированных вариантов
func (uc *UseCase) allocateSection(ctx context.Context, round *domain.ApplicationRound, section *domain.ApplicationSection) (int, int, error) {
	ranges, err := uc.sectionRepo.GetTimeRanges(ctx, section.ID)
	if err != nil {
		uc.logger.Error("RunRoundAllocation: failed to get time ranges for section id=%d: %v", section.ID, err)
		return 0, 0, fmt.Errorf("%w: failed to get time ranges: %v", ErrInternal, err)
	}

	// Варианты блокируются FOR UPDATE, порядок preferred_order ASC
	options, err := uc.optionRepo.GetBySectionID(ctx, section.ID)
	if err != nil {
		uc.logger.Error("RunRoundAllocation: failed to get options for section id=%d: %v", section.ID, err)
		return 0, 0, fmt.Errorf("%w: failed to get options: %v", ErrInternal, err)
	}

	existing, err := uc.allocationRepo.GetBySectionID(ctx, section.ID)
	if err != nil {
		uc.logger.Error("RunRoundAllocation: failed to get slots for section id=%d: %v", section.ID, err)
		return 0, 0, fmt.Errorf("%w: failed to get slots: %v", ErrInternal, err)
	}
	allocatedDays := domain.DistinctAllocatedWeekdays(existing)

	allocated := 0
	// Диапазоны уже упорядочены: primary раньше secondary
	for _, tr := range ranges {
		if len(allocatedDays) >= section.AppliedReservationsPerWeek {
			break
		}
		if allocatedDays[tr.DayOfTheWeek] {
			continue
		}

		for _, opt := range options {
			if !opt.IsUsable() {
				continue
			}
			slot, err := uc.tryPlace(ctx, round, section, opt, tr)
			if err != nil {
				return 0, 0, err
			}
			if slot != nil {
				allocatedDays[tr.DayOfTheWeek] = true
				allocated++
				break
			}
		}
	}

	// Квота не добрана: проход исчерпал все варианты, дальше слотов не будет.
	// Блокировка двигает статус секции в HANDLED (есть слоты) или REJECTED (нет)
	locked := 0
	if len(allocatedDays) < section.AppliedReservationsPerWeek {
		for _, opt := range options {
			if !opt.IsUsable() {
				continue
			}
			if err := uc.optionRepo.SetLocked(ctx, opt.ID, true); err != nil {
				uc.logger.Error("RunRoundAllocation: failed to lock option id=%d: %v", opt.ID, err)
				return 0, 0, fmt.Errorf("%w: failed to lock option: %v", ErrInternal, err)
			}
			locked++
		}
	}

	uc.logger.Info("RunRoundAllocation: section id=%d allocated=%d days=%d/%d locked=%d",
		section.ID, allocated, len(allocatedDays), section.AppliedReservationsPerWeek, locked)
	return allocated, locked, nil
}

// tryPlace ищет свободное окно минимальной длительности секции внутри
// подходящего диапазона, сдвигаясь шагами по 30 минут. Возвращает nil
// без ошибки, если места нет
func (uc *UseCase) tryPlace(ctx context.Context, round *domain.ApplicationRound, section *domain.ApplicationSection, opt *domain.ReservationUnitOption, tr *domain.SuitableTimeRange) (*domain.AllocatedTimeSlot, error) {
	duration := section.ReservationMinDurationMinutes
	if duration <= 0 {
		duration = domain.DurationStepMinutes
	}

	rangeEnd, err := tr.EndTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid range end time: %v", ErrInternal, err)
	}

	begin := tr.BeginTime
	for {
		beginMinutes, err := begin.Minutes()
		if err != nil {
			return nil, fmt.Errorf("%w: invalid range begin time: %v", ErrInternal, err)
		}
		if beginMinutes+duration > rangeEnd {
			return nil, nil
		}
		end, err := begin.AddMinutes(duration)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to compute slot end: %v", ErrInternal, err)
		}

		free, err := uc.isFree(ctx, round, section, opt.ReservationUnitID, tr.DayOfTheWeek, begin, end)
		if err != nil {
			return nil, err
		}
		if free {
			slot := &domain.AllocatedTimeSlot{
				ReservationUnitOptionID: opt.ID,
				DayOfTheWeek:            tr.DayOfTheWeek,
				BeginTime:               begin,
				EndTime:                 end,
			}
			created, err := uc.allocationRepo.Create(ctx, slot)
			if err != nil {
				uc.logger.Error("RunRoundAllocation: failed to create slot for option id=%d: %v", opt.ID, err)
				return nil, fmt.Errorf("%w: failed to create slot: %v", ErrInternal, err)
			}
			return created, nil
		}

		begin, err = begin.AddMinutes(domain.DurationStepMinutes)
		if err != nil {
			return nil, nil
		}
	}
}

func (uc *UseCase) isFree(ctx context.Context, round *domain.ApplicationRound, section *domain.ApplicationSection, unitID int64, day domain.Weekday, begin, end types.TimeString) (bool, error) {
	windowBegin, windowEnd := sectionWindow(round, section)
	rangeEnd := windowEnd.AddDate(0, 0, 1)

	candidate := &domain.AllocatedSlotWindow{
		ReservationUnitID: unitID,
		DayOfTheWeek:      day,
		BeginTime:         begin,
		EndTime:           end,
		WindowBegin:       windowBegin,
		WindowEnd:         windowEnd,
	}
	candidateSpans, err := candidate.Expand(windowBegin, rangeEnd)
	if err != nil {
		return false, fmt.Errorf("%w: failed to expand candidate slot: %v", ErrInternal, err)
	}

	busy, err := uc.timespanSvc.AffectingSpans(ctx, unitID, windowBegin, rangeEnd, timespans.Options{})
	if err != nil {
		uc.logger.Error("RunRoundAllocation: failed to get affecting spans for unit=%d: %v", unitID, err)
		return false, fmt.Errorf("%w: failed to get affecting spans: %v", ErrInternal, err)
	}

	for _, cand := range candidateSpans {
		for _, span := range busy {
			if cand.Overlaps(span) {
				return false, nil
			}
		}
	}
	return true, nil
}

// generateReservations создает сезонные брони из всех слотов раунда
func (uc *UseCase) generateReservations(ctx context.Context, round *domain.ApplicationRound, sections []*domain.ApplicationSection) (int, error) {
	reservations := make([]*domain.Reservation, 0)

	for _, section := range sections {
		slots, err := uc.allocationRepo.GetBySectionID(ctx, section.ID)
		if err != nil {
			uc.logger.Error("RunRoundAllocation: failed to get slots for section id=%d: %v", section.ID, err)
			return 0, fmt.Errorf("%w: failed to get slots: %v", ErrInternal, err)
		}

		options, err := uc.optionRepo.GetBySectionID(ctx, section.ID)
		if err != nil {
			return 0, fmt.Errorf("%w: failed to get options: %v", ErrInternal, err)
		}
		unitByOption := make(map[int64]int64, len(options))
		for _, opt := range options {
			unitByOption[opt.ID] = opt.ReservationUnitID
		}

		windowBegin, windowEnd := sectionWindow(round, section)
		rangeEnd := windowEnd.AddDate(0, 0, 1)

		for _, slot := range slots {
			unitID, ok := unitByOption[slot.ReservationUnitOptionID]
			if !ok {
				return 0, fmt.Errorf("%w: option %d not found in section %d", ErrInternal, slot.ReservationUnitOptionID, section.ID)
			}
			window := &domain.AllocatedSlotWindow{
				AllocationID:      slot.ID,
				ReservationUnitID: unitID,
				DayOfTheWeek:      slot.DayOfTheWeek,
				BeginTime:         slot.BeginTime,
				EndTime:           slot.EndTime,
				WindowBegin:       windowBegin,
				WindowEnd:         windowEnd,
			}
			spans, err := window.Expand(windowBegin, rangeEnd)
			if err != nil {
				return 0, fmt.Errorf("%w: failed to expand slot id=%d: %v", ErrInternal, slot.ID, err)
			}
			slotID := slot.ID
			for _, span := range spans {
				reservations = append(reservations, &domain.Reservation{
					ReservationUnitID:   unitID,
					Begin:               span.Start,
					End:                 span.End,
					Type:                domain.ReservationTypeSeasonal,
					State:               domain.ReservationStateConfirmed,
					AllocatedTimeSlotID: &slotID,
				})
			}
		}
	}

	if len(reservations) == 0 {
		return 0, nil
	}
	if err := uc.reservationRepo.CreateBatch(ctx, reservations); err != nil {
		uc.logger.Error("RunRoundAllocation: failed to create seasonal reservations: %v", err)
		return 0, fmt.Errorf("%w: failed to create seasonal reservations: %v", ErrInternal, err)
	}
	return len(reservations), nil
}

func sectionWindow(round *domain.ApplicationRound, section *domain.ApplicationSection) (time.Time, time.Time) {
	begin := section.ReservationsBeginDate
	if round.ReservationPeriodBegin.After(begin) {
		begin = round.ReservationPeriodBegin
	}
	end := section.ReservationsEndDate
	if round.ReservationPeriodEnd.Before(end) {
		end = round.ReservationPeriodEnd
	}
	return begin, end
}
