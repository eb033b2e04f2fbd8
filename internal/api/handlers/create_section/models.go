package create_section

import (
	"time"

	"github.com/m04kA/SMC-SeasonalService/internal/domain"
	createSection "github.com/m04kA/SMC-SeasonalService/internal/usecase/create_section"
	"github.com/m04kA/SMC-SeasonalService/pkg/types"
)

// TimeRangeRequest подходящее временное окно секции
type TimeRangeRequest struct {
	DayOfTheWeek string `json:"dayOfTheWeek"`
	BeginTime    string `json:"beginTime"` // "10:00"
	EndTime      string `json:"endTime"`   // "14:00"
	Priority     string `json:"priority"`  // "primary" | "secondary"
}

// OptionRequest кандидат-единица секции
type OptionRequest struct {
	ReservationUnitID int64 `json:"reservationUnitId"`
	PreferredOrder    int   `json:"preferredOrder"`
}

// CreateSectionRequest HTTP request model
type CreateSectionRequest struct {
	Name                          string `json:"name"`
	AppliedReservationsPerWeek    int    `json:"appliedReservationsPerWeek"`
	ReservationMinDurationMinutes int    `json:"reservationMinDurationMinutes"`
	ReservationMaxDurationMinutes int    `json:"reservationMaxDurationMinutes"`
	ReservationsBeginDate         string `json:"reservationsBeginDate"` // "2025-09-01"
	ReservationsEndDate           string `json:"reservationsEndDate"`   // "2026-05-31"

	SuitableTimeRanges []TimeRangeRequest `json:"suitableTimeRanges"`
	Options            []OptionRequest    `json:"reservationUnitOptions"`
}

// SectionResponse HTTP response model
type SectionResponse struct {
	ID            int64  `json:"id"`
	ApplicationID int64  `json:"applicationId"`
	Name          string `json:"name"`
	Status        string `json:"status"`
	CreatedAt     string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case (с парсингом дат и времени)
func (r *CreateSectionRequest) ToUseCaseRequest(actor domain.Actor, applicationID int64) (*createSection.Request, error) {
	beginDate, err := time.Parse(domain.DateFormat, r.ReservationsBeginDate)
	if err != nil {
		return nil, err
	}
	endDate, err := time.Parse(domain.DateFormat, r.ReservationsEndDate)
	if err != nil {
		return nil, err
	}

	ranges := make([]createSection.TimeRangeInput, 0, len(r.SuitableTimeRanges))
	for _, tr := range r.SuitableTimeRanges {
		day, err := domain.ParseWeekday(tr.DayOfTheWeek)
		if err != nil {
			return nil, err
		}
		begin, err := types.NewTimeStringFromString(tr.BeginTime)
		if err != nil {
			return nil, err
		}
		end, err := types.NewTimeStringFromString(tr.EndTime)
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, createSection.TimeRangeInput{
			DayOfTheWeek: day,
			BeginTime:    begin,
			EndTime:      end,
			Priority:     domain.TimeRangePriority(tr.Priority),
		})
	}

	options := make([]createSection.OptionInput, 0, len(r.Options))
	for _, opt := range r.Options {
		options = append(options, createSection.OptionInput{
			ReservationUnitID: opt.ReservationUnitID,
			PreferredOrder:    opt.PreferredOrder,
		})
	}

	return &createSection.Request{
		Actor:                         actor,
		ApplicationID:                 applicationID,
		Name:                          r.Name,
		AppliedReservationsPerWeek:    r.AppliedReservationsPerWeek,
		ReservationMinDurationMinutes: r.ReservationMinDurationMinutes,
		ReservationMaxDurationMinutes: r.ReservationMaxDurationMinutes,
		ReservationsBeginDate:         beginDate,
		ReservationsEndDate:           endDate,
		SuitableTimeRanges:            ranges,
		Options:                       options,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createSection.Response) *SectionResponse {
	return &SectionResponse{
		ID:            resp.ID,
		ApplicationID: resp.ApplicationID,
		Name:          resp.Name,
		Status:        string(resp.Status),
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
	}
}
