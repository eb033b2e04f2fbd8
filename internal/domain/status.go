package domain

import "time"

// RoundStatus derived status of an application round
type RoundStatus string

const (
	RoundStatusUpcoming     RoundStatus = "upcoming"
	RoundStatusOpen         RoundStatus = "open"
	RoundStatusInAllocation RoundStatus = "in_allocation"
	RoundStatusHandled      RoundStatus = "handled"
	RoundStatusResultsSent  RoundStatus = "results_sent"
)

// SectionStatus derived status of an application section
type SectionStatus string

const (
	SectionStatusUnallocated  SectionStatus = "unallocated"
	SectionStatusInAllocation SectionStatus = "in_allocation"
	SectionStatusHandled      SectionStatus = "handled"
	SectionStatusRejected     SectionStatus = "rejected"
)

// ApplicationStatus derived status of an application
type ApplicationStatus string

const (
	ApplicationStatusDraft        ApplicationStatus = "draft"
	ApplicationStatusCancelled    ApplicationStatus = "cancelled"
	ApplicationStatusExpired      ApplicationStatus = "expired"
	ApplicationStatusReceived     ApplicationStatus = "received"
	ApplicationStatusInAllocation ApplicationStatus = "in_allocation"
	ApplicationStatusHandled      ApplicationStatus = "handled"
	ApplicationStatusResultSent   ApplicationStatus = "result_sent"
)

// DeriveRoundStatus computes the round status from its dates.
// Transitions are monotonic: setting sent_date wins over handled_date,
// handled_date wins over the application period having ended.
func DeriveRoundStatus(now, applicationBegin, applicationEnd time.Time, handledDate, sentDate *time.Time) RoundStatus {
	switch {
	case sentDate != nil:
		return RoundStatusResultsSent
	case handledDate != nil:
		return RoundStatusHandled
	case !now.Before(applicationEnd):
		return RoundStatusInAllocation
	case !now.Before(applicationBegin):
		return RoundStatusOpen
	default:
		return RoundStatusUpcoming
	}
}

// SectionStatusInput the persisted facts a section status is derived from
type SectionStatusInput struct {
	RoundStatus                RoundStatus
	AppliedReservationsPerWeek int
	// AllocatedWeekdayCount number of distinct weekdays with an allocation
	AllocatedWeekdayCount int
	// UsableOptionCount options that are neither locked nor rejected
	UsableOptionCount int
	TotalOptionCount  int
}

// DeriveSectionStatus computes the section status:
// UNALLOCATED while the round has not entered allocation, HANDLED once the
// quota is met (or the round is finalized, or every option is exhausted but
// something was allocated), REJECTED when no usable option remains and
// nothing was allocated.
func DeriveSectionStatus(in SectionStatusInput) SectionStatus {
	switch in.RoundStatus {
	case RoundStatusUpcoming, RoundStatusOpen:
		return SectionStatusUnallocated
	case RoundStatusHandled, RoundStatusResultsSent:
		return SectionStatusHandled
	}

	// Round is in allocation
	if in.AllocatedWeekdayCount >= in.AppliedReservationsPerWeek {
		return SectionStatusHandled
	}
	if in.UsableOptionCount == 0 {
		if in.AllocatedWeekdayCount > 0 {
			return SectionStatusHandled
		}
		return SectionStatusRejected
	}
	return SectionStatusInAllocation
}

// ApplicationStatusInput the persisted facts an application status is derived from
type ApplicationStatusInput struct {
	CancelledDate   *time.Time
	SentDate        *time.Time
	RoundStatus     RoundStatus
	SectionStatuses []SectionStatus
}

// DeriveApplicationStatus aggregates section statuses with the application's
// own dates. A cancelled_date wins over everything else.
func DeriveApplicationStatus(in ApplicationStatusInput) ApplicationStatus {
	if in.CancelledDate != nil {
		return ApplicationStatusCancelled
	}

	roundOpen := in.RoundStatus == RoundStatusUpcoming || in.RoundStatus == RoundStatusOpen
	if in.SentDate == nil {
		// Never submitted: still editable while the round is open,
		// expired once allocation began without it
		if roundOpen {
			return ApplicationStatusDraft
		}
		return ApplicationStatusExpired
	}

	switch in.RoundStatus {
	case RoundStatusUpcoming, RoundStatusOpen:
		return ApplicationStatusReceived
	case RoundStatusResultsSent:
		return ApplicationStatusResultSent
	case RoundStatusHandled:
		return ApplicationStatusHandled
	}

	// Round is in allocation
	if len(in.SectionStatuses) == 0 {
		return ApplicationStatusExpired
	}
	for _, s := range in.SectionStatuses {
		if s != SectionStatusHandled && s != SectionStatusRejected {
			return ApplicationStatusInAllocation
		}
	}
	return ApplicationStatusHandled
}
