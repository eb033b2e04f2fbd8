package create_section

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SeasonalService/internal/domain"
	applicationRepo "github.com/m04kA/SMC-SeasonalService/internal/infra/storage/application"
	"github.com/m04kA/SMC-SeasonalService/internal/service/permissions"
)

// UseCase use case создания секции заявки с окнами и вариантами
type UseCase struct {
	roundRepo       RoundRepository
	applicationRepo ApplicationRepository
	sectionRepo     SectionRepository
	optionRepo      OptionRepository
	permissions     PermissionService
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	roundRepository RoundRepository,
	applicationRepository ApplicationRepository,
	sectionRepo SectionRepository,
	optionRepo OptionRepository,
	permissionSvc PermissionService,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		roundRepo:       roundRepository,
		applicationRepo: applicationRepository,
		sectionRepo:     sectionRepo,
		optionRepo:      optionRepo,
		permissions:     permissionSvc,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания секции.
// Секция, её окна и варианты записываются в одной транзакции:
// при ошибке валидации ни одна строка не создается
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateSection: user=%d, application=%d, name=%q",
		req.Actor.UserID, req.ApplicationID, req.Name)

	application, err := uc.applicationRepo.GetByID(ctx, req.ApplicationID)
	if err != nil {
		if errors.Is(err, applicationRepo.ErrApplicationNotFound) {
			uc.logger.Warn("CreateSection: application id=%d not found", req.ApplicationID)
			return nil, ErrApplicationNotFound
		}
		uc.logger.Error("CreateSection: failed to get application id=%d: %v", req.ApplicationID, err)
		return nil, fmt.Errorf("%w: failed to get application: %v", ErrInternal, err)
	}
	if application.IsCancelled() {
		uc.logger.Warn("CreateSection: application id=%d is cancelled", application.ID)
		return nil, ErrApplicationCancelled
	}

	target := permissions.Target{ApplicationOwnerID: &application.UserID}
	if err := uc.permissions.Authorize(ctx, req.Actor, permissions.ActionCreateSection, target); err != nil {
		if errors.Is(err, permissions.ErrAccessDenied) {
			uc.logger.Warn("CreateSection: access denied for user=%d", req.Actor.UserID)
			return nil, ErrAccessDenied
		}
		return nil, fmt.Errorf("%w: authorization failed: %v", ErrInternal, err)
	}

	round, err := uc.roundRepo.GetByID(ctx, application.ApplicationRoundID)
	if err != nil {
		uc.logger.Error("CreateSection: failed to get round id=%d: %v", application.ApplicationRoundID, err)
		return nil, fmt.Errorf("%w: failed to get round: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now()
	if round.Status(now) != domain.RoundStatusOpen {
		uc.logger.Warn("CreateSection: round id=%d is not open (status=%s)", round.ID, round.Status(now))
		return nil, ErrRoundNotOpen
	}

	if err := validateRequest(req, round); err != nil {
		uc.logger.Warn("CreateSection: validation failed: %v", err)
		return nil, err
	}

	section := &domain.ApplicationSection{
		ApplicationID:                 application.ID,
		Name:                          req.Name,
		AppliedReservationsPerWeek:    req.AppliedReservationsPerWeek,
		ReservationMinDurationMinutes: req.ReservationMinDurationMinutes,
		ReservationMaxDurationMinutes: req.ReservationMaxDurationMinutes,
		ReservationsBeginDate:         req.ReservationsBeginDate,
		ReservationsEndDate:           req.ReservationsEndDate,
	}
	ranges := make([]*domain.SuitableTimeRange, 0, len(req.SuitableTimeRanges))
	for _, tr := range req.SuitableTimeRanges {
		ranges = append(ranges, &domain.SuitableTimeRange{
			DayOfTheWeek: tr.DayOfTheWeek,
			BeginTime:    tr.BeginTime,
			EndTime:      tr.EndTime,
			Priority:     tr.Priority,
		})
	}

	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		created, err := uc.sectionRepo.Create(txCtx, section, ranges)
		if err != nil {
			uc.logger.Error("CreateSection: failed to create section: %v", err)
			return fmt.Errorf("%w: failed to create section: %v", ErrInternal, err)
		}
		section = created

		options := make([]*domain.ReservationUnitOption, 0, len(req.Options))
		for _, opt := range req.Options {
			options = append(options, &domain.ReservationUnitOption{
				ApplicationSectionID: created.ID,
				ReservationUnitID:    opt.ReservationUnitID,
				PreferredOrder:       opt.PreferredOrder,
			})
		}
		if err := uc.optionRepo.CreateBatch(txCtx, options); err != nil {
			uc.logger.Error("CreateSection: failed to create options: %v", err)
			return fmt.Errorf("%w: failed to create options: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	status := domain.DeriveSectionStatus(domain.SectionStatusInput{
		RoundStatus:                round.Status(now),
		AppliedReservationsPerWeek: section.AppliedReservationsPerWeek,
		UsableOptionCount:          len(req.Options),
		TotalOptionCount:           len(req.Options),
	})

	uc.logger.Info("CreateSection: created section id=%d (status=%s)", section.ID, status)
	return &Response{
		ID:            section.ID,
		ApplicationID: section.ApplicationID,
		Name:          section.Name,
		Status:        status,
		CreatedAt:     section.CreatedAt,
	}, nil
}
