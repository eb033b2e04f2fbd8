package get_application_round

import (
	"context"
	"errors"
	"fmt"

	roundRepo "github.com/m04kA/SMC-SeasonalService/internal/infra/storage/round"
)

// UseCase use case чтения раунда с производным статусом
type UseCase struct {
	roundRepo      RoundRepository
	allocationRepo AllocationRepository
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(roundRepository RoundRepository, allocationRepo AllocationRepository, logger Logger) *UseCase {
	return &UseCase{
		roundRepo:      roundRepository,
		allocationRepo: allocationRepo,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute возвращает раунд с его производным статусом
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	round, err := uc.roundRepo.GetByID(ctx, req.RoundID)
	if err != nil {
		if errors.Is(err, roundRepo.ErrRoundNotFound) {
			uc.logger.Warn("GetApplicationRound: round id=%d not found", req.RoundID)
			return nil, ErrRoundNotFound
		}
		uc.logger.Error("GetApplicationRound: failed to get round id=%d: %v", req.RoundID, err)
		return nil, fmt.Errorf("%w: failed to get round: %v", ErrInternal, err)
	}

	allocated, err := uc.allocationRepo.CountByRoundID(ctx, round.ID)
	if err != nil {
		uc.logger.Error("GetApplicationRound: failed to count slots for round id=%d: %v", round.ID, err)
		return nil, fmt.Errorf("%w: failed to count slots: %v", ErrInternal, err)
	}

	return &Response{
		ID:                     round.ID,
		Name:                   round.Name,
		Status:                 round.Status(uc.timeProvider.Now()),
		ApplicationPeriodBegin: round.ApplicationPeriodBegin,
		ApplicationPeriodEnd:   round.ApplicationPeriodEnd,
		ReservationPeriodBegin: round.ReservationPeriodBegin,
		ReservationPeriodEnd:   round.ReservationPeriodEnd,
		HandledDate:            round.HandledDate,
		SentDate:               round.SentDate,
		ReservationUnitIDs:     round.ReservationUnitIDs,
		AllocatedSlots:         allocated,
	}, nil
}
