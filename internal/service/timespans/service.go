package timespans

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-SeasonalService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-SeasonalService/internal/infra/storage/reservation"
)

// Service сервис расчета занятых интервалов единицы бронирования.
//
// Занятость единицы складывается из прямых броней и выделенных слотов
// на всех единицах её конфликтного множества. Недельные слоты
// разворачиваются в конкретные даты, пересекающиеся интервалы сливаются
type Service struct {
	hierarchy       HierarchyIndex
	reservationRepo ReservationRepository
	allocationRepo  AllocationRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса занятых интервалов
func NewService(
	hierarchy HierarchyIndex,
	reservationRepo ReservationRepository,
	allocationRepo AllocationRepository,
	logger Logger,
) *Service {
	return &Service{
		hierarchy:       hierarchy,
		reservationRepo: reservationRepo,
		allocationRepo:  allocationRepo,
		logger:          logger,
	}
}

// AffectingSpans возвращает отсортированный список слитых интервалов,
// занимающих единицу unitID на периоде [from, to). Пустой период дает
// пустой результат
func (s *Service) AffectingSpans(ctx context.Context, unitID int64, from, to time.Time, opts Options) ([]domain.TimeSpan, error) {
	if !to.After(from) {
		return []domain.TimeSpan{}, nil
	}

	conflictSet, err := s.hierarchy.ConflictSet(unitID)
	if err != nil {
		s.logger.Error("AffectingSpans: conflict set lookup failed for unit=%d: %v", unitID, err)
		return nil, fmt.Errorf("%w: AffectingSpans - conflict set: %v", ErrInternal, err)
	}

	spans := make([]domain.TimeSpan, 0)

	reservationSpans, err := s.reservationSpans(ctx, conflictSet, from, to, opts)
	if err != nil {
		return nil, err
	}
	spans = append(spans, reservationSpans...)

	allocationSpans, err := s.allocationSpans(ctx, conflictSet, from, to, opts)
	if err != nil {
		return nil, err
	}
	spans = append(spans, allocationSpans...)

	return mergeSpans(clampSpans(spans, from, to)), nil
}

func (s *Service) reservationSpans(ctx context.Context, conflictSet []int64, from, to time.Time, opts Options) ([]domain.TimeSpan, error) {
	// Расширяем окно выборки на максимальный буфер единиц множества:
	// бронь за его пределами может дотянуться буфером до периода
	maxBuffer := s.maxBufferMinutes(conflictSet)
	filter := reservationRepo.Filter{
		ReservationUnitIDs:   conflictSet,
		From:                 from.Add(-time.Duration(maxBuffer) * time.Minute),
		To:                   to.Add(time.Duration(maxBuffer) * time.Minute),
		ExcludeReservationID: opts.ExcludeReservationID,
		ExcludeTypes:         opts.ExcludeReservationTypes,
	}

	reservations, err := s.reservationRepo.GetActiveWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("AffectingSpans: failed to load reservations: %v", err)
		return nil, fmt.Errorf("%w: AffectingSpans - load reservations: %v", ErrInternal, err)
	}

	spans := make([]domain.TimeSpan, 0, len(reservations))
	for _, res := range reservations {
		start := res.Begin
		end := res.End
		if unit, ok := s.hierarchy.Unit(res.ReservationUnitID); ok {
			start = start.Add(-time.Duration(unit.BufferTimeBeforeMinutes) * time.Minute)
			end = end.Add(time.Duration(unit.BufferTimeAfterMinutes) * time.Minute)
		}
		spans = append(spans, domain.TimeSpan{Start: start, End: end})
	}
	return spans, nil
}

// Буферы единиц к слотам не применяются: слот получает их через
// сезонную бронь после обработки раунда
func (s *Service) allocationSpans(ctx context.Context, conflictSet []int64, from, to time.Time, opts Options) ([]domain.TimeSpan, error) {
	windows, err := s.allocationRepo.GetWindowsByUnitIDs(ctx, conflictSet, opts.ExcludeAllocationID)
	if err != nil {
		s.logger.Error("AffectingSpans: failed to load allocated slots: %v", err)
		return nil, fmt.Errorf("%w: AffectingSpans - load allocated slots: %v", ErrInternal, err)
	}

	spans := make([]domain.TimeSpan, 0)
	for _, w := range windows {
		expanded, err := w.Expand(from, to)
		if err != nil {
			s.logger.Error("AffectingSpans: failed to expand slot id=%d: %v", w.AllocationID, err)
			return nil, fmt.Errorf("%w: AffectingSpans - expand slot: %v", ErrInternal, err)
		}
		spans = append(spans, expanded...)
	}
	return spans, nil
}

func (s *Service) maxBufferMinutes(conflictSet []int64) int {
	maxBuffer := 0
	for _, id := range conflictSet {
		unit, ok := s.hierarchy.Unit(id)
		if !ok {
			continue
		}
		if unit.BufferTimeBeforeMinutes > maxBuffer {
			maxBuffer = unit.BufferTimeBeforeMinutes
		}
		if unit.BufferTimeAfterMinutes > maxBuffer {
			maxBuffer = unit.BufferTimeAfterMinutes
		}
	}
	return maxBuffer
}

func clampSpans(spans []domain.TimeSpan, from, to time.Time) []domain.TimeSpan {
	clamped := make([]domain.TimeSpan, 0, len(spans))
	for _, span := range spans {
		if !span.End.After(from) || !span.Start.Before(to) {
			continue
		}
		if span.Start.Before(from) {
			span.Start = from
		}
		if span.End.After(to) {
			span.End = to
		}
		clamped = append(clamped, span)
	}
	return clamped
}

// mergeSpans сливает пересекающиеся и соприкасающиеся интервалы
func mergeSpans(spans []domain.TimeSpan) []domain.TimeSpan {
	if len(spans) == 0 {
		return []domain.TimeSpan{}
	}

	sort.Slice(spans, func(i, j int) bool {
		if spans[i].Start.Equal(spans[j].Start) {
			return spans[i].End.Before(spans[j].End)
		}
		return spans[i].Start.Before(spans[j].Start)
	})

	merged := make([]domain.TimeSpan, 0, len(spans))
	current := spans[0]
	for _, span := range spans[1:] {
		if !span.Start.After(current.End) {
			if span.End.After(current.End) {
				current.End = span.End
			}
			continue
		}
		merged = append(merged, current)
		current = span
	}
	merged = append(merged, current)
	return merged
}
