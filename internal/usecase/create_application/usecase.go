package create_application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SeasonalService/internal/domain"
	roundRepo "github.com/m04kA/SMC-SeasonalService/internal/infra/storage/round"
	"github.com/m04kA/SMC-SeasonalService/internal/service/permissions"
)

// UseCase use case создания заявки на раунд
type UseCase struct {
	roundRepo       RoundRepository
	applicationRepo ApplicationRepository
	permissions     PermissionService
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	roundRepository RoundRepository,
	applicationRepo ApplicationRepository,
	permissionSvc PermissionService,
	logger Logger,
) *UseCase {
	return &UseCase{
		roundRepo:       roundRepository,
		applicationRepo: applicationRepo,
		permissions:     permissionSvc,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания заявки.
// Заявки принимаются только пока период подачи раунда открыт
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateApplication: user=%d, round=%d, submit=%t",
		req.Actor.UserID, req.ApplicationRoundID, req.Submit)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateApplication: validation failed: %v", err)
		return nil, err
	}

	if err := uc.permissions.Authorize(ctx, req.Actor, permissions.ActionCreateApplication, permissions.Target{}); err != nil {
		if errors.Is(err, permissions.ErrAccessDenied) {
			uc.logger.Warn("CreateApplication: access denied for user=%d", req.Actor.UserID)
			return nil, ErrAccessDenied
		}
		return nil, fmt.Errorf("%w: authorization failed: %v", ErrInternal, err)
	}

	round, err := uc.roundRepo.GetByID(ctx, req.ApplicationRoundID)
	if err != nil {
		if errors.Is(err, roundRepo.ErrRoundNotFound) {
			uc.logger.Warn("CreateApplication: round id=%d not found", req.ApplicationRoundID)
			return nil, ErrRoundNotFound
		}
		uc.logger.Error("CreateApplication: failed to get round id=%d: %v", req.ApplicationRoundID, err)
		return nil, fmt.Errorf("%w: failed to get round: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now()
	if round.Status(now) != domain.RoundStatusOpen {
		uc.logger.Warn("CreateApplication: round id=%d is not open (status=%s)", round.ID, round.Status(now))
		return nil, ErrRoundNotOpen
	}

	app := &domain.Application{
		ApplicationRoundID:    round.ID,
		UserID:                req.Actor.UserID,
		ApplicantType:         req.ApplicantType,
		ContactName:           req.ContactName,
		ContactEmail:          req.ContactEmail,
		ContactPhone:          req.ContactPhone,
		AdditionalInformation: req.AdditionalInformation,
	}
	if req.Submit {
		app.SentDate = &now
	}

	created, err := uc.applicationRepo.Create(ctx, app)
	if err != nil {
		uc.logger.Error("CreateApplication: failed to create application: %v", err)
		return nil, fmt.Errorf("%w: failed to create application: %v", ErrInternal, err)
	}

	status := domain.DeriveApplicationStatus(domain.ApplicationStatusInput{
		SentDate:    created.SentDate,
		RoundStatus: round.Status(now),
	})

	uc.logger.Info("CreateApplication: created application id=%d (status=%s)", created.ID, status)
	return &Response{
		ID:                 created.ID,
		ApplicationRoundID: created.ApplicationRoundID,
		UserID:             created.UserID,
		Status:             status,
		SentDate:           created.SentDate,
		CreatedAt:          created.CreatedAt,
	}, nil
}

func validateRequest(req *Request) error {
	if req.ApplicationRoundID <= 0 {
		return fmt.Errorf("%w: application_round_id is required", ErrInvalidInput)
	}
	switch req.ApplicantType {
	case domain.ApplicantIndividual, domain.ApplicantCompany, domain.ApplicantAssociation, domain.ApplicantCommunity:
	default:
		return fmt.Errorf("%w: invalid applicant_type %q", ErrInvalidInput, req.ApplicantType)
	}
	if strings.TrimSpace(req.ContactName) == "" {
		return fmt.Errorf("%w: contact_name is required", ErrInvalidInput)
	}
	if !strings.Contains(req.ContactEmail, "@") {
		return fmt.Errorf("%w: invalid contact_email", ErrInvalidInput)
	}
	return nil
}
