package create_section

import (
	"time"

	"github.com/m04kA/SMC-SeasonalService/internal/domain"
	"github.com/m04kA/SMC-SeasonalService/pkg/types"
)

// TimeRangeInput подходящее временное окно секции
type TimeRangeInput struct {
	DayOfTheWeek domain.Weekday
	BeginTime    types.TimeString
	EndTime      types.TimeString
	Priority     domain.TimeRangePriority
}

// OptionInput кандидат-единица секции с позицией в ранжировании
type OptionInput struct {
	ReservationUnitID int64
	PreferredOrder    int
}

// Request модель запроса на создание секции заявки
type Request struct {
	Actor         domain.Actor
	ApplicationID int64

	Name                          string
	AppliedReservationsPerWeek    int
	ReservationMinDurationMinutes int
	ReservationMaxDurationMinutes int
	ReservationsBeginDate         time.Time
	ReservationsEndDate           time.Time

	SuitableTimeRanges []TimeRangeInput
	Options            []OptionInput
}

// Response модель ответа с созданной секцией
type Response struct {
	ID            int64
	ApplicationID int64
	Name          string
	Status        domain.SectionStatus
	CreatedAt     time.Time
}
