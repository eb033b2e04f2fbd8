package create_section

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SeasonalService/internal/domain"
)

// validateRequest проверяет структурные инварианты секции до записи
func validateRequest(req *Request, round *domain.ApplicationRound) error {
	if req.ApplicationID <= 0 {
		return fmt.Errorf("%w: application_id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(req.Name) > domain.MaxSectionNameLength {
		return fmt.Errorf("%w: name is longer than %d characters", ErrInvalidInput, domain.MaxSectionNameLength)
	}
	if req.AppliedReservationsPerWeek < 1 || req.AppliedReservationsPerWeek > domain.MaxAppliedReservationsPerWeek {
		return fmt.Errorf("%w: applied_reservations_per_week must be between 1 and %d",
			ErrInvalidInput, domain.MaxAppliedReservationsPerWeek)
	}

	if err := validateDurations(req); err != nil {
		return err
	}
	if err := validateDates(req, round); err != nil {
		return err
	}
	if err := validateTimeRanges(req.SuitableTimeRanges); err != nil {
		return err
	}
	return validateOptions(req, round)
}

func validateDurations(req *Request) error {
	minDur := req.ReservationMinDurationMinutes
	maxDur := req.ReservationMaxDurationMinutes

	if minDur <= 0 || maxDur <= 0 {
		return fmt.Errorf("%w: durations must be positive", ErrInvalidDuration)
	}
	if minDur > maxDur {
		return fmt.Errorf("%w: min duration %dm exceeds max duration %dm", ErrInvalidDuration, minDur, maxDur)
	}
	if minDur%domain.DurationStepMinutes != 0 || maxDur%domain.DurationStepMinutes != 0 {
		return fmt.Errorf("%w: durations must be multiples of %d minutes", ErrInvalidDuration, domain.DurationStepMinutes)
	}
	if maxDur > domain.MaxSectionDurationMinutes {
		return fmt.Errorf("%w: max duration exceeds %d minutes", ErrInvalidDuration, domain.MaxSectionDurationMinutes)
	}
	return nil
}

func validateDates(req *Request, round *domain.ApplicationRound) error {
	if req.ReservationsEndDate.Before(req.ReservationsBeginDate) {
		return fmt.Errorf("%w: reservations_end_date is before reservations_begin_date", ErrInvalidInput)
	}
	if !round.ContainsPeriod(req.ReservationsBeginDate, req.ReservationsEndDate) {
		return fmt.Errorf("%w: section window %s..%s, round period %s..%s",
			ErrDatesOutsideRound,
			req.ReservationsBeginDate.Format(domain.DateFormat),
			req.ReservationsEndDate.Format(domain.DateFormat),
			round.ReservationPeriodBegin.Format(domain.DateFormat),
			round.ReservationPeriodEnd.Format(domain.DateFormat))
	}
	return nil
}

func validateTimeRanges(ranges []TimeRangeInput) error {
	if len(ranges) == 0 {
		return fmt.Errorf("%w: at least one suitable time range is required", ErrInvalidInput)
	}
	for _, tr := range ranges {
		if _, err := domain.ParseWeekday(string(tr.DayOfTheWeek)); err != nil {
			return fmt.Errorf("%w: invalid day_of_the_week %q", ErrInvalidInput, tr.DayOfTheWeek)
		}
		if err := tr.BeginTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid begin_time: %v", ErrInvalidInput, err)
		}
		if err := tr.EndTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid end_time: %v", ErrInvalidInput, err)
		}
		if !tr.BeginTime.IsBefore(tr.EndTime) {
			return fmt.Errorf("%w: begin_time must be before end_time", ErrInvalidInput)
		}
		if tr.Priority != domain.PriorityPrimary && tr.Priority != domain.PrioritySecondary {
			return fmt.Errorf("%w: invalid priority %q", ErrInvalidInput, tr.Priority)
		}
	}
	return nil
}

func validateOptions(req *Request, round *domain.ApplicationRound) error {
	if len(req.Options) == 0 {
		return fmt.Errorf("%w: at least one reservation unit option is required", ErrInvalidInput)
	}

	roundUnits := make(map[int64]bool, len(round.ReservationUnitIDs))
	for _, id := range round.ReservationUnitIDs {
		roundUnits[id] = true
	}

	seenUnits := make(map[int64]bool, len(req.Options))
	seenOrders := make(map[int]bool, len(req.Options))
	for _, opt := range req.Options {
		if !roundUnits[opt.ReservationUnitID] {
			return fmt.Errorf("%w: unit %d", ErrUnitNotInRound, opt.ReservationUnitID)
		}
		if seenUnits[opt.ReservationUnitID] {
			return fmt.Errorf("%w: unit %d listed twice", ErrInvalidInput, opt.ReservationUnitID)
		}
		seenUnits[opt.ReservationUnitID] = true
		if opt.PreferredOrder < 0 || opt.PreferredOrder >= len(req.Options) {
			return fmt.Errorf("%w: preferred_order %d is out of range 0..%d",
				ErrInvalidInput, opt.PreferredOrder, len(req.Options)-1)
		}
		if seenOrders[opt.PreferredOrder] {
			return fmt.Errorf("%w: duplicate preferred_order %d", ErrInvalidInput, opt.PreferredOrder)
		}
		seenOrders[opt.PreferredOrder] = true
	}
	return nil
}
