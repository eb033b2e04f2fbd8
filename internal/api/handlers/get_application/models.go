package get_application

import (
	"time"

	getApplication "github.com/m04kA/SMC-SeasonalService/internal/usecase/get_application"
)

// SlotResponse выделенный слот секции
type SlotResponse struct {
	ID                      int64  `json:"id"`
	ReservationUnitOptionID int64  `json:"reservationUnitOptionId"`
	DayOfTheWeek            string `json:"dayOfTheWeek"`
	BeginTime               string `json:"beginTime"`
	EndTime                 string `json:"endTime"`
}

// OptionResponse вариант единицы с его состоянием
type OptionResponse struct {
	ID                int64 `json:"id"`
	ReservationUnitID int64 `json:"reservationUnitId"`
	PreferredOrder    int   `json:"preferredOrder"`
	Locked            bool  `json:"locked"`
	Rejected          bool  `json:"rejected"`
}

// TimeRangeResponse подходящее окно с признаком исполненности
type TimeRangeResponse struct {
	ID           int64  `json:"id"`
	DayOfTheWeek string `json:"dayOfTheWeek"`
	BeginTime    string `json:"beginTime"`
	EndTime      string `json:"endTime"`
	Priority     string `json:"priority"`
	Fulfilled    bool   `json:"fulfilled"`
}

// SectionResponse секция заявки с производным статусом
type SectionResponse struct {
	ID                         int64  `json:"id"`
	Name                       string `json:"name"`
	Status                     string `json:"status"`
	AppliedReservationsPerWeek int    `json:"appliedReservationsPerWeek"`

	SuitableTimeRanges []TimeRangeResponse `json:"suitableTimeRanges"`
	Options            []OptionResponse    `json:"reservationUnitOptions"`
	AllocatedTimeSlots []SlotResponse      `json:"allocatedTimeSlots"`
}

// ApplicationResponse HTTP response model
type ApplicationResponse struct {
	ID                 int64   `json:"id"`
	ApplicationRoundID int64   `json:"applicationRoundId"`
	UserID             int64   `json:"userId"`
	ApplicantType      string  `json:"applicantType"`
	ContactName        string  `json:"contactName"`
	ContactEmail       string  `json:"contactEmail"`
	Status             string  `json:"status"`
	SentDate           *string `json:"sentDate,omitempty"`

	Sections []SectionResponse `json:"applicationSections"`

	CreatedAt string `json:"createdAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getApplication.Response) *ApplicationResponse {
	out := &ApplicationResponse{
		ID:                 resp.ID,
		ApplicationRoundID: resp.ApplicationRoundID,
		UserID:             resp.UserID,
		ApplicantType:      string(resp.ApplicantType),
		ContactName:        resp.ContactName,
		ContactEmail:       resp.ContactEmail,
		Status:             string(resp.Status),
		Sections:           make([]SectionResponse, 0, len(resp.Sections)),
		CreatedAt:          resp.CreatedAt.Format(time.RFC3339),
	}
	if resp.SentDate != nil {
		sent := resp.SentDate.Format(time.RFC3339)
		out.SentDate = &sent
	}

	for _, section := range resp.Sections {
		view := SectionResponse{
			ID:                         section.ID,
			Name:                       section.Name,
			Status:                     string(section.Status),
			AppliedReservationsPerWeek: section.AppliedReservationsPerWeek,
			SuitableTimeRanges:         make([]TimeRangeResponse, 0, len(section.SuitableTimeRanges)),
			Options:                    make([]OptionResponse, 0, len(section.Options)),
			AllocatedTimeSlots:         make([]SlotResponse, 0, len(section.AllocatedTimeSlots)),
		}
		for _, tr := range section.SuitableTimeRanges {
			view.SuitableTimeRanges = append(view.SuitableTimeRanges, TimeRangeResponse{
				ID:           tr.ID,
				DayOfTheWeek: string(tr.DayOfTheWeek),
				BeginTime:    tr.BeginTime.String(),
				EndTime:      tr.EndTime.String(),
				Priority:     string(tr.Priority),
				Fulfilled:    tr.Fulfilled,
			})
		}
		for _, opt := range section.Options {
			view.Options = append(view.Options, OptionResponse{
				ID:                opt.ID,
				ReservationUnitID: opt.ReservationUnitID,
				PreferredOrder:    opt.PreferredOrder,
				Locked:            opt.Locked,
				Rejected:          opt.Rejected,
			})
		}
		for _, slot := range section.AllocatedTimeSlots {
			view.AllocatedTimeSlots = append(view.AllocatedTimeSlots, SlotResponse{
				ID:                      slot.ID,
				ReservationUnitOptionID: slot.ReservationUnitOptionID,
				DayOfTheWeek:            string(slot.DayOfTheWeek),
				BeginTime:               slot.BeginTime.String(),
				EndTime:                 slot.EndTime.String(),
			})
		}
		out.Sections = append(out.Sections, view)
	}

	return out
}
