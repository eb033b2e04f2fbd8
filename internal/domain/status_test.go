package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SeasonalService/pkg/ptr"
)

func day(offset int) time.Time {
	base := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	return base.AddDate(0, 0, offset)
}

func TestDeriveRoundStatus(t *testing.T) {
	now := day(0)

	tests := []struct {
		name    string
		begin   time.Time
		end     time.Time
		handled *time.Time
		sent    *time.Time
		want    RoundStatus
	}{
		{name: "upcoming", begin: day(1), end: day(2), want: RoundStatusUpcoming},
		{name: "open", begin: day(-2), end: day(2), want: RoundStatusOpen},
		{name: "in allocation", begin: day(-2), end: day(-1), want: RoundStatusInAllocation},
		{name: "handled", begin: day(-2), end: day(-1), handled: ptr.Ptr(now), want: RoundStatusHandled},
		{name: "results sent", begin: day(-2), end: day(-1), handled: ptr.Ptr(now), sent: ptr.Ptr(now), want: RoundStatusResultsSent},
		{name: "sent without handled jumps past handled", begin: day(-2), end: day(-1), sent: ptr.Ptr(now), want: RoundStatusResultsSent},
		{name: "boundary - application end is exclusive", begin: day(-2), end: now, want: RoundStatusInAllocation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveRoundStatus(now, tt.begin, tt.end, tt.handled, tt.sent)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeriveSectionStatus(t *testing.T) {
	tests := []struct {
		name string
		in   SectionStatusInput
		want SectionStatus
	}{
		{
			name: "unallocated before the round opens allocation",
			in:   SectionStatusInput{RoundStatus: RoundStatusOpen, AppliedReservationsPerWeek: 2, UsableOptionCount: 1, TotalOptionCount: 1},
			want: SectionStatusUnallocated,
		},
		{
			name: "in allocation with zero allocations",
			in:   SectionStatusInput{RoundStatus: RoundStatusInAllocation, AppliedReservationsPerWeek: 2, AllocatedWeekdayCount: 0, UsableOptionCount: 1, TotalOptionCount: 1},
			want: SectionStatusInAllocation,
		},
		{
			name: "still in allocation after one of two allocations",
			in:   SectionStatusInput{RoundStatus: RoundStatusInAllocation, AppliedReservationsPerWeek: 2, AllocatedWeekdayCount: 1, UsableOptionCount: 1, TotalOptionCount: 1},
			want: SectionStatusInAllocation,
		},
		{
			name: "handled once the weekly quota is met",
			in:   SectionStatusInput{RoundStatus: RoundStatusInAllocation, AppliedReservationsPerWeek: 2, AllocatedWeekdayCount: 2, UsableOptionCount: 1, TotalOptionCount: 1},
			want: SectionStatusHandled,
		},
		{
			name: "handled when the round is handled despite missing quota",
			in:   SectionStatusInput{RoundStatus: RoundStatusHandled, AppliedReservationsPerWeek: 2, AllocatedWeekdayCount: 1, UsableOptionCount: 1, TotalOptionCount: 1},
			want: SectionStatusHandled,
		},
		{
			name: "rejected when the sole option is locked before any allocation",
			in:   SectionStatusInput{RoundStatus: RoundStatusInAllocation, AppliedReservationsPerWeek: 2, AllocatedWeekdayCount: 0, UsableOptionCount: 0, TotalOptionCount: 1},
			want: SectionStatusRejected,
		},
		{
			name: "handled when options are exhausted but something was allocated",
			in:   SectionStatusInput{RoundStatus: RoundStatusInAllocation, AppliedReservationsPerWeek: 2, AllocatedWeekdayCount: 1, UsableOptionCount: 0, TotalOptionCount: 2},
			want: SectionStatusHandled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveSectionStatus(tt.in))
		})
	}
}

func TestDeriveApplicationStatus(t *testing.T) {
	now := day(0)
	sent := ptr.Ptr(day(-1))

	tests := []struct {
		name string
		in   ApplicationStatusInput
		want ApplicationStatus
	}{
		{
			name: "cancelled wins over everything",
			in: ApplicationStatusInput{
				CancelledDate:   ptr.Ptr(now),
				SentDate:        sent,
				RoundStatus:     RoundStatusInAllocation,
				SectionStatuses: []SectionStatus{SectionStatusHandled},
			},
			want: ApplicationStatusCancelled,
		},
		{
			name: "draft while the round is open",
			in:   ApplicationStatusInput{RoundStatus: RoundStatusOpen},
			want: ApplicationStatusDraft,
		},
		{
			name: "unsent application expires once allocation begins",
			in:   ApplicationStatusInput{RoundStatus: RoundStatusInAllocation},
			want: ApplicationStatusExpired,
		},
		{
			name: "received after submission while open",
			in:   ApplicationStatusInput{SentDate: sent, RoundStatus: RoundStatusOpen},
			want: ApplicationStatusReceived,
		},
		{
			name: "in allocation while any section is pending",
			in: ApplicationStatusInput{
				SentDate:        sent,
				RoundStatus:     RoundStatusInAllocation,
				SectionStatuses: []SectionStatus{SectionStatusHandled, SectionStatusInAllocation},
			},
			want: ApplicationStatusInAllocation,
		},
		{
			name: "handled once every section is handled or rejected",
			in: ApplicationStatusInput{
				SentDate:        sent,
				RoundStatus:     RoundStatusInAllocation,
				SectionStatuses: []SectionStatus{SectionStatusHandled, SectionStatusRejected},
			},
			want: ApplicationStatusHandled,
		},
		{
			name: "result sent follows the round",
			in: ApplicationStatusInput{
				SentDate:        sent,
				RoundStatus:     RoundStatusResultsSent,
				SectionStatuses: []SectionStatus{SectionStatusHandled},
			},
			want: ApplicationStatusResultSent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveApplicationStatus(tt.in))
		})
	}
}
