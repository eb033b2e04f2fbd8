package allocate_slot

import (
	"fmt"

	"github.com/m04kA/SMC-SeasonalService/internal/domain"
)

// validateRequest проверяет структурную корректность запроса
func validateRequest(req *Request) error {
	if req.ReservationUnitOptionID <= 0 {
		return fmt.Errorf("%w: reservation_unit_option_id is required", ErrInvalidInput)
	}
	if _, err := domain.ParseWeekday(string(req.DayOfTheWeek)); err != nil {
		return fmt.Errorf("%w: invalid day_of_the_week %q", ErrInvalidInput, req.DayOfTheWeek)
	}
	if err := req.BeginTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid begin_time: %v", ErrInvalidInput, err)
	}
	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid end_time: %v", ErrInvalidInput, err)
	}
	if !req.BeginTime.IsBefore(req.EndTime) {
		return fmt.Errorf("%w: begin_time must be before end_time", ErrInvalidInput)
	}
	return nil
}

// validateDuration проверяет длительность слота против границ секции
func validateDuration(req *Request, section *domain.ApplicationSection) error {
	begin, err := req.BeginTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: invalid begin_time: %v", ErrInvalidInput, err)
	}
	end, err := req.EndTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: invalid end_time: %v", ErrInvalidInput, err)
	}

	duration := end - begin
	if duration%domain.DurationStepMinutes != 0 {
		return fmt.Errorf("%w: duration must be a multiple of %d minutes", ErrInvalidDuration, domain.DurationStepMinutes)
	}
	if duration < section.ReservationMinDurationMinutes {
		return fmt.Errorf("%w: duration %dm is below the section minimum %dm",
			ErrInvalidDuration, duration, section.ReservationMinDurationMinutes)
	}
	if duration > section.ReservationMaxDurationMinutes {
		return fmt.Errorf("%w: duration %dm exceeds the section maximum %dm",
			ErrInvalidDuration, duration, section.ReservationMaxDurationMinutes)
	}
	return nil
}
