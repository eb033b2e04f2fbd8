package domain

import (
	"time"

	"github.com/m04kA/SMC-SeasonalService/pkg/types"
)

// TimeRangePriority priority of a suitable time range
type TimeRangePriority string

const (
	PriorityPrimary   TimeRangePriority = "primary"
	PrioritySecondary TimeRangePriority = "secondary"
)

// ApplicationSection one recurring need within an application, e.g.
// "2 reservations per week, Mon/Wed evenings, 1-2 hours, for the season".
// Owns suitable time ranges and ranked reservation unit options.
type ApplicationSection struct {
	ID            int64
	ApplicationID int64

	Name string

	AppliedReservationsPerWeek int

	ReservationMinDurationMinutes int
	ReservationMaxDurationMinutes int

	// Date window the applicant wants covered; must lie inside the
	// owning round's reservation period
	ReservationsBeginDate time.Time
	ReservationsEndDate   time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SuitableTimeRange one acceptable day/time window for a section.
// Fulfilled is derived, not stored: the range is fulfilled once an allocated
// slot exists on its weekday or the whole section is handled.
type SuitableTimeRange struct {
	ID                   int64
	ApplicationSectionID int64

	DayOfTheWeek Weekday
	BeginTime    types.TimeString
	EndTime      types.TimeString
	Priority     TimeRangePriority

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsFulfilled reports whether the range is satisfied given the weekdays that
// already received an allocation and the derived section status
func (r *SuitableTimeRange) IsFulfilled(allocatedWeekdays map[Weekday]bool, sectionStatus SectionStatus) bool {
	if sectionStatus == SectionStatusHandled {
		return true
	}
	return allocatedWeekdays[r.DayOfTheWeek]
}

// DurationMinutes length of the window in minutes
func (r *SuitableTimeRange) DurationMinutes() (int, error) {
	begin, err := r.BeginTime.Minutes()
	if err != nil {
		return 0, err
	}
	end, err := r.EndTime.Minutes()
	if err != nil {
		return 0, err
	}
	return end - begin, nil
}
