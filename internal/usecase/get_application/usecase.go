package get_application

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SeasonalService/internal/domain"
	applicationRepo "github.com/m04kA/SMC-SeasonalService/internal/infra/storage/application"
	"github.com/m04kA/SMC-SeasonalService/internal/service/permissions"
)

// UseCase use case чтения заявки с производными статусами
type UseCase struct {
	roundRepo       RoundRepository
	applicationRepo ApplicationRepository
	sectionRepo     SectionRepository
	optionRepo      OptionRepository
	allocationRepo  AllocationRepository
	permissions     PermissionService
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	roundRepository RoundRepository,
	applicationRepository ApplicationRepository,
	sectionRepo SectionRepository,
	optionRepo OptionRepository,
	allocationRepo AllocationRepository,
	permissionSvc PermissionService,
	logger Logger,
) *UseCase {
	return &UseCase{
		roundRepo:       roundRepository,
		applicationRepo: applicationRepository,
		sectionRepo:     sectionRepo,
		optionRepo:      optionRepo,
		allocationRepo:  allocationRepo,
		permissions:     permissionSvc,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute возвращает заявку с секциями и производными статусами.
// Статусы нигде не хранятся: они вычисляются из дат раунда, слотов и
// флагов вариантов на момент запроса
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetApplication: user=%d, application=%d", req.Actor.UserID, req.ApplicationID)

	application, err := uc.applicationRepo.GetByID(ctx, req.ApplicationID)
	if err != nil {
		if errors.Is(err, applicationRepo.ErrApplicationNotFound) {
			uc.logger.Warn("GetApplication: application id=%d not found", req.ApplicationID)
			return nil, ErrApplicationNotFound
		}
		uc.logger.Error("GetApplication: failed to get application id=%d: %v", req.ApplicationID, err)
		return nil, fmt.Errorf("%w: failed to get application: %v", ErrInternal, err)
	}

	round, err := uc.roundRepo.GetByID(ctx, application.ApplicationRoundID)
	if err != nil {
		uc.logger.Error("GetApplication: failed to get round id=%d: %v", application.ApplicationRoundID, err)
		return nil, fmt.Errorf("%w: failed to get round: %v", ErrInternal, err)
	}

	sections, err := uc.sectionRepo.GetByApplicationID(ctx, application.ID)
	if err != nil {
		uc.logger.Error("GetApplication: failed to get sections for application id=%d: %v", application.ID, err)
		return nil, fmt.Errorf("%w: failed to get sections: %v", ErrInternal, err)
	}

	if err := uc.authorize(ctx, req.Actor, application); err != nil {
		return nil, err
	}

	now := uc.timeProvider.Now()
	roundStatus := round.Status(now)

	sectionViews := make([]SectionView, 0, len(sections))
	sectionStatuses := make([]domain.SectionStatus, 0, len(sections))
	for _, section := range sections {
		view, err := uc.buildSectionView(ctx, section, roundStatus)
		if err != nil {
			return nil, err
		}
		sectionViews = append(sectionViews, *view)
		sectionStatuses = append(sectionStatuses, view.Status)
	}

	status := domain.DeriveApplicationStatus(domain.ApplicationStatusInput{
		CancelledDate:   application.CancelledDate,
		SentDate:        application.SentDate,
		RoundStatus:     roundStatus,
		SectionStatuses: sectionStatuses,
	})

	return &Response{
		ID:                 application.ID,
		ApplicationRoundID: application.ApplicationRoundID,
		UserID:             application.UserID,
		ApplicantType:      application.ApplicantType,
		ContactName:        application.ContactName,
		ContactEmail:       application.ContactEmail,
		Status:             status,
		SentDate:           application.SentDate,
		Sections:           sectionViews,
		CreatedAt:          application.CreatedAt,
	}, nil
}

func (uc *UseCase) authorize(ctx context.Context, actor domain.Actor, application *domain.Application) error {
	target := permissions.Target{ApplicationOwnerID: &application.UserID}
	if err := uc.permissions.Authorize(ctx, actor, permissions.ActionViewApplication, target); err != nil {
		if errors.Is(err, permissions.ErrAccessDenied) {
			uc.logger.Warn("GetApplication: access denied for user=%d", actor.UserID)
			return ErrAccessDenied
		}
		return fmt.Errorf("%w: authorization failed: %v", ErrInternal, err)
	}
	return nil
}

func (uc *UseCase) buildSectionView(ctx context.Context, section *domain.ApplicationSection, roundStatus domain.RoundStatus) (*SectionView, error) {
	options, err := uc.optionRepo.GetBySectionID(ctx, section.ID)
	if err != nil {
		uc.logger.Error("GetApplication: failed to get options for section id=%d: %v", section.ID, err)
		return nil, fmt.Errorf("%w: failed to get options: %v", ErrInternal, err)
	}
	slots, err := uc.allocationRepo.GetBySectionID(ctx, section.ID)
	if err != nil {
		uc.logger.Error("GetApplication: failed to get slots for section id=%d: %v", section.ID, err)
		return nil, fmt.Errorf("%w: failed to get slots: %v", ErrInternal, err)
	}
	ranges, err := uc.sectionRepo.GetTimeRanges(ctx, section.ID)
	if err != nil {
		uc.logger.Error("GetApplication: failed to get time ranges for section id=%d: %v", section.ID, err)
		return nil, fmt.Errorf("%w: failed to get time ranges: %v", ErrInternal, err)
	}

	usable := 0
	for _, opt := range options {
		if opt.IsUsable() {
			usable++
		}
	}
	allocatedDays := domain.DistinctAllocatedWeekdays(slots)

	status := domain.DeriveSectionStatus(domain.SectionStatusInput{
		RoundStatus:                roundStatus,
		AppliedReservationsPerWeek: section.AppliedReservationsPerWeek,
		AllocatedWeekdayCount:      len(allocatedDays),
		UsableOptionCount:          usable,
		TotalOptionCount:           len(options),
	})

	view := &SectionView{
		ID:                         section.ID,
		Name:                       section.Name,
		Status:                     status,
		AppliedReservationsPerWeek: section.AppliedReservationsPerWeek,
	}
	for _, tr := range ranges {
		view.SuitableTimeRanges = append(view.SuitableTimeRanges, TimeRangeView{
			ID:           tr.ID,
			DayOfTheWeek: tr.DayOfTheWeek,
			BeginTime:    tr.BeginTime,
			EndTime:      tr.EndTime,
			Priority:     tr.Priority,
			Fulfilled:    tr.IsFulfilled(allocatedDays, status),
		})
	}
	for _, opt := range options {
		view.Options = append(view.Options, OptionView{
			ID:                opt.ID,
			ReservationUnitID: opt.ReservationUnitID,
			PreferredOrder:    opt.PreferredOrder,
			Locked:            opt.Locked,
			Rejected:          opt.Rejected,
		})
	}
	for _, slot := range slots {
		view.AllocatedTimeSlots = append(view.AllocatedTimeSlots, SlotView{
			ID:                      slot.ID,
			ReservationUnitOptionID: slot.ReservationUnitOptionID,
			DayOfTheWeek:            slot.DayOfTheWeek,
			BeginTime:               slot.BeginTime,
			EndTime:                 slot.EndTime,
		})
	}
	return view, nil
}
