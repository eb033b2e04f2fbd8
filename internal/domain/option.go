package domain

import (
	"time"

	"github.com/m04kA/SMC-SeasonalService/pkg/types"
)

// ReservationUnitOption a ranked candidate reservation unit for a section.
// PreferredOrder values within one section are unique and form a gapless
// 0-based sequence.
type ReservationUnitOption struct {
	ID                   int64
	ApplicationSectionID int64
	ReservationUnitID    int64

	PreferredOrder int

	// Locked: the allocation engine determined no further slots can be
	// placed on this option
	Locked bool
	// Rejected: the applicant or a handler declined the option
	Rejected bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsUsable returns true if the option may still receive allocations
func (o *ReservationUnitOption) IsUsable() bool {
	return !o.Locked && !o.Rejected
}

// AllocatedTimeSlot one concrete weekly assignment produced by allocation
type AllocatedTimeSlot struct {
	ID                      int64
	ReservationUnitOptionID int64

	DayOfTheWeek Weekday
	BeginTime    types.TimeString
	EndTime      types.TimeString

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DurationMinutes length of the slot in minutes
func (s *AllocatedTimeSlot) DurationMinutes() (int, error) {
	begin, err := s.BeginTime.Minutes()
	if err != nil {
		return 0, err
	}
	end, err := s.EndTime.Minutes()
	if err != nil {
		return 0, err
	}
	return end - begin, nil
}

// DistinctAllocatedWeekdays returns the set of weekdays covered by the slots
func DistinctAllocatedWeekdays(slots []*AllocatedTimeSlot) map[Weekday]bool {
	days := make(map[Weekday]bool, len(slots))
	for _, s := range slots {
		days[s.DayOfTheWeek] = true
	}
	return days
}
