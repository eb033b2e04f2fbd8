package domain

import "time"

// ApplicantType classification of the applicant
type ApplicantType string

const (
	ApplicantIndividual  ApplicantType = "individual"
	ApplicantCompany     ApplicantType = "company"
	ApplicantAssociation ApplicantType = "association"
	ApplicantCommunity   ApplicantType = "community"
)

// Application one applicant's submission for an application round.
// Owns many ApplicationSections; status is derived from the sections and
// the owning round, never stored.
type Application struct {
	ID                 int64
	ApplicationRoundID int64

	UserID        int64
	ApplicantType ApplicantType
	ContactName   string
	ContactEmail  string
	ContactPhone  *string

	AdditionalInformation *string

	// SentDate set when the applicant submits the application
	SentDate *time.Time
	// CancelledDate set when the applicant withdraws; overrides every other status
	CancelledDate *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsCancelled returns true if the applicant has withdrawn the application
func (a *Application) IsCancelled() bool {
	return a.CancelledDate != nil
}

// IsSent returns true once the application has been submitted
func (a *Application) IsSent() bool {
	return a.SentDate != nil
}
