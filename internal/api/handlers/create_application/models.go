package create_application

import (
	"time"

	"github.com/m04kA/SMC-SeasonalService/internal/domain"
	createApplication "github.com/m04kA/SMC-SeasonalService/internal/usecase/create_application"
)

// CreateApplicationRequest HTTP request model
type CreateApplicationRequest struct {
	ApplicationRoundID    int64   `json:"applicationRoundId"`
	ApplicantType         string  `json:"applicantType"`
	ContactName           string  `json:"contactName"`
	ContactEmail          string  `json:"contactEmail"`
	ContactPhone          *string `json:"contactPhone,omitempty"`
	AdditionalInformation *string `json:"additionalInformation,omitempty"`
	Submit                bool    `json:"submit"`
}

// ApplicationResponse HTTP response model
type ApplicationResponse struct {
	ID                 int64   `json:"id"`
	ApplicationRoundID int64   `json:"applicationRoundId"`
	UserID             int64   `json:"userId"`
	Status             string  `json:"status"`
	SentDate           *string `json:"sentDate,omitempty"`
	CreatedAt          string  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateApplicationRequest) ToUseCaseRequest(actor domain.Actor) *createApplication.Request {
	return &createApplication.Request{
		Actor:                 actor,
		ApplicationRoundID:    r.ApplicationRoundID,
		ApplicantType:         domain.ApplicantType(r.ApplicantType),
		ContactName:           r.ContactName,
		ContactEmail:          r.ContactEmail,
		ContactPhone:          r.ContactPhone,
		AdditionalInformation: r.AdditionalInformation,
		Submit:                r.Submit,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createApplication.Response) *ApplicationResponse {
	out := &ApplicationResponse{
		ID:                 resp.ID,
		ApplicationRoundID: resp.ApplicationRoundID,
		UserID:             resp.UserID,
		Status:             string(resp.Status),
		CreatedAt:          resp.CreatedAt.Format(time.RFC3339),
	}
	if resp.SentDate != nil {
		sent := resp.SentDate.Format(time.RFC3339)
		out.SentDate = &sent
	}
	return out
}
