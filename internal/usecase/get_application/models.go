package get_application

import (
	"time"

	"github.com/m04kA/SMC-SeasonalService/internal/domain"
	"github.com/m04kA/SMC-SeasonalService/pkg/types"
)

// Request модель запроса заявки
type Request struct {
	Actor         domain.Actor
	ApplicationID int64
}

// SlotView выделенный слот секции
type SlotView struct {
	ID                      int64
	ReservationUnitOptionID int64
	DayOfTheWeek            domain.Weekday
	BeginTime               types.TimeString
	EndTime                 types.TimeString
}

// OptionView вариант единицы с его состоянием
type OptionView struct {
	ID                int64
	ReservationUnitID int64
	PreferredOrder    int
	Locked            bool
	Rejected          bool
}

// TimeRangeView подходящее окно с признаком исполненности
type TimeRangeView struct {
	ID           int64
	DayOfTheWeek domain.Weekday
	BeginTime    types.TimeString
	EndTime      types.TimeString
	Priority     domain.TimeRangePriority
	Fulfilled    bool
}

// SectionView секция с производным статусом
type SectionView struct {
	ID                         int64
	Name                       string
	Status                     domain.SectionStatus
	AppliedReservationsPerWeek int

	SuitableTimeRanges []TimeRangeView
	Options            []OptionView
	AllocatedTimeSlots []SlotView
}

// Response заявка с производными статусами
type Response struct {
	ID                 int64
	ApplicationRoundID int64
	UserID             int64
	ApplicantType      domain.ApplicantType
	ContactName        string
	ContactEmail       string

	Status   domain.ApplicationStatus
	SentDate *time.Time

	Sections []SectionView

	CreatedAt time.Time
}
