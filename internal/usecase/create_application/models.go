package create_application

import (
	"time"

	"github.com/m04kA/SMC-SeasonalService/internal/domain"
)

// Request модель запроса на создание заявки
type Request struct {
	Actor domain.Actor

	ApplicationRoundID    int64
	ApplicantType         domain.ApplicantType
	ContactName           string
	ContactEmail          string
	ContactPhone          *string
	AdditionalInformation *string

	// Submit сразу отправить заявку (иначе остается черновиком)
	Submit bool
}

// Response модель ответа с созданной заявкой
type Response struct {
	ID                 int64
	ApplicationRoundID int64
	UserID             int64
	Status             domain.ApplicationStatus
	SentDate           *time.Time
	CreatedAt          time.Time
}
