package get_affecting_spans

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SeasonalService/internal/service/timespans"
)

// MaxRangeDays максимальная длина запрашиваемого периода
const MaxRangeDays = 730

// UseCase use case чтения занятых интервалов площадки
type UseCase struct {
	timeSpans TimeSpanService
	hierarchy HierarchyIndex
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(timeSpans TimeSpanService, hierarchy HierarchyIndex, logger Logger) *UseCase {
	return &UseCase{
		timeSpans: timeSpans,
		hierarchy: hierarchy,
		logger:    logger,
	}
}

// Execute возвращает слитые интервалы, занимающие площадку и её
// конфликтное множество на периоде [from, to)
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	if uc.hierarchy.RefreshedAt().IsZero() {
		uc.logger.Warn("GetAffectingSpans: hierarchy index is not ready")
		return nil, ErrIndexNotReady
	}

	if _, ok := uc.hierarchy.Unit(req.ReservationUnitID); !ok {
		uc.logger.Warn("GetAffectingSpans: unit id=%d not found in hierarchy index", req.ReservationUnitID)
		return nil, ErrUnitNotFound
	}

	spans, err := uc.timeSpans.AffectingSpans(ctx, req.ReservationUnitID, req.From, req.To, timespans.Options{
		ExcludeReservationID:    req.ExcludeReservationID,
		ExcludeAllocationID:     req.ExcludeAllocationID,
		ExcludeReservationTypes: req.ExcludeReservationTypes,
	})
	if err != nil {
		uc.logger.Error("GetAffectingSpans: failed for unit id=%d: %v", req.ReservationUnitID, err)
		return nil, fmt.Errorf("%w: failed to collect spans: %v", ErrInternal, err)
	}

	return &Response{
		ReservationUnitID: req.ReservationUnitID,
		Spans:             spans,
	}, nil
}

func validateRequest(req *Request) error {
	if req.ReservationUnitID <= 0 {
		return fmt.Errorf("%w: reservation unit id must be positive", ErrInvalidRange)
	}
	if req.From.IsZero() || req.To.IsZero() {
		return fmt.Errorf("%w: from and to are required", ErrInvalidRange)
	}
	if !req.To.After(req.From) {
		return fmt.Errorf("%w: to must be after from", ErrInvalidRange)
	}
	if req.To.Sub(req.From) > MaxRangeDays*24*time.Hour {
		return fmt.Errorf("%w: period must not exceed %d days", ErrInvalidRange, MaxRangeDays)
	}
	return nil
}
