package domain

// Business validation constants
const (
	// DurationStepMinutes section durations and allocations are aligned to half hours
	DurationStepMinutes = 30

	// MaxSectionDurationMinutes upper bound for one recurring reservation
	MaxSectionDurationMinutes = 24 * 60

	// MaxAppliedReservationsPerWeek one allocation per weekday at most
	MaxAppliedReservationsPerWeek = 7

	MaxSectionNameLength = 100
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveReservationStates список состояний, не занимающих физическую ёмкость
// Используется при построении занятых интервалов
var InactiveReservationStates = []ReservationState{
	ReservationStateCancelled,
	ReservationStateDenied,
}
