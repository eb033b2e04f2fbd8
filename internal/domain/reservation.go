package domain

import "time"

// ReservationType distinguishes real bookings from capacity blocks
type ReservationType string

const (
	ReservationTypeNormal   ReservationType = "normal"
	ReservationTypeBlocked  ReservationType = "blocked"
	ReservationTypeSeasonal ReservationType = "seasonal" // generated from an allocated time slot
)

// ReservationState lifecycle state of a direct reservation
type ReservationState string

const (
	ReservationStateConfirmed ReservationState = "confirmed"
	ReservationStateCancelled ReservationState = "cancelled"
	ReservationStateDenied    ReservationState = "denied"
)

// Reservation a direct (non-seasonal) booking of a reservation unit.
// Shares physical capacity with allocated time slots: both feed the same
// conflict checks.
type Reservation struct {
	ID                int64
	ReservationUnitID int64

	Begin time.Time
	End   time.Time

	Type  ReservationType
	State ReservationState

	// AllocatedTimeSlotID set for reservations generated from a seasonal
	// allocation when the round was handled
	AllocatedTimeSlotID *int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the reservation occupies capacity
func (r *Reservation) IsActive() bool {
	for _, s := range InactiveReservationStates {
		if r.State == s {
			return false
		}
	}
	return true
}

// TimeSpan a closed (non-reservable) interval on a reservation unit
type TimeSpan struct {
	Start        time.Time
	End          time.Time
	IsReservable bool
}

// Overlaps reports whether two half-open intervals [Start, End) intersect
func (s TimeSpan) Overlaps(other TimeSpan) bool {
	return s.Start.Before(other.End) && other.Start.Before(s.End)
}
