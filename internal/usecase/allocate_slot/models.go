package allocate_slot

import (
	"time"

	"github.com/m04kA/SMC-SeasonalService/internal/domain"
	"github.com/m04kA/SMC-SeasonalService/pkg/types"
)

// Request модель запроса на выделение слота
type Request struct {
	Actor domain.Actor

	ReservationUnitOptionID int64
	DayOfTheWeek            domain.Weekday
	BeginTime               types.TimeString
	EndTime                 types.TimeString
}

// Response модель ответа с выделенным слотом
type Response struct {
	ID                      int64
	ReservationUnitOptionID int64
	ApplicationSectionID    int64
	ReservationUnitID       int64

	DayOfTheWeek domain.Weekday
	BeginTime    types.TimeString
	EndTime      types.TimeString

	CreatedAt time.Time
}
