package domain

import "time"

// ApplicationRound represents one seasonal cycle: applications are collected
// while the application period is open and allocated after it closes.
// Status is never stored; it is derived from the dates below.
type ApplicationRound struct {
	ID int64

	Name string

	// Application period: when applications can be submitted
	ApplicationPeriodBegin time.Time
	ApplicationPeriodEnd   time.Time

	// Reservation period: the date window the allocated slots cover
	ReservationPeriodBegin time.Time
	ReservationPeriodEnd   time.Time

	// HandledDate set when allocation results are finalized
	HandledDate *time.Time
	// SentDate set when results have been sent to applicants
	SentDate *time.Time

	// ReservationUnitIDs units eligible for allocation in this round
	ReservationUnitIDs []int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Status derives the round status at the given moment
func (r *ApplicationRound) Status(now time.Time) RoundStatus {
	return DeriveRoundStatus(now, r.ApplicationPeriodBegin, r.ApplicationPeriodEnd, r.HandledDate, r.SentDate)
}

// IsInAllocation returns true if handlers may allocate slots for this round
func (r *ApplicationRound) IsInAllocation(now time.Time) bool {
	return r.Status(now) == RoundStatusInAllocation
}

// IsFinal returns true once allocations are frozen (handled or results sent)
func (r *ApplicationRound) IsFinal(now time.Time) bool {
	s := r.Status(now)
	return s == RoundStatusHandled || s == RoundStatusResultsSent
}

// ContainsPeriod reports whether [begin, end] lies inside the reservation period
func (r *ApplicationRound) ContainsPeriod(begin, end time.Time) bool {
	return !begin.Before(r.ReservationPeriodBegin) && !end.After(r.ReservationPeriodEnd)
}
