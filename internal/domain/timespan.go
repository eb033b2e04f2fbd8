package domain

import (
	"time"

	"github.com/m04kA/SMC-SeasonalService/pkg/types"
)

// AllocatedSlotWindow an allocated time slot joined with the date window it
// repeats over (the section's date window intersected with the round's
// reservation period). Used to expand weekly slots into concrete intervals
// for conflict checks.
type AllocatedSlotWindow struct {
	AllocationID      int64
	ReservationUnitID int64

	DayOfTheWeek Weekday
	BeginTime    types.TimeString
	EndTime      types.TimeString

	WindowBegin time.Time
	WindowEnd   time.Time
}

// Expand converts the weekly slot into concrete time spans, one per
// occurrence of the weekday inside the window clamped to [from, to]
func (w *AllocatedSlotWindow) Expand(from, to time.Time) ([]TimeSpan, error) {
	begin := w.WindowBegin
	if from.After(begin) {
		begin = from
	}
	end := w.WindowEnd
	if to.Before(end) {
		end = to
	}

	spans := make([]TimeSpan, 0)
	for _, date := range w.DayOfTheWeek.DatesBetween(begin, end) {
		start, err := w.BeginTime.OnDate(date)
		if err != nil {
			return nil, err
		}
		stop, err := w.EndTime.OnDate(date)
		if err != nil {
			return nil, err
		}
		spans = append(spans, TimeSpan{Start: start, End: stop})
	}
	return spans, nil
}
