package models

import (
	"time"

	"github.com/google/uuid"
)

// Person holds the identity fields shared by applicants and employers.
// The two roles are separate types carrying a Person core plus
// role-specific fields; there is no shared mutable base object.
type Person struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	PhotoURL  string    `json:"photo_url,omitempty"`
}

// FullName returns "First Last", or "Unknown" when both are blank.
func (p Person) FullName() string {
	name := p.FirstName
	if p.LastName != "" {
		if name != "" {
			name += " "
		}
		name += p.LastName
	}
	if name == "" {
		return "Unknown"
	}
	return name
}

// Applicant is a job seeker. Skills are free-text phrases, deduplicated
// and compared case-insensitively by the matching engine. LegacySkills
// is an older comma-separated form used only when Skills is empty.
type Applicant struct {
	Person
	ContactInfo  string   `json:"contact_info,omitempty"`
	Description  string   `json:"description,omitempty"`
	CVURL        string   `json:"cv_url,omitempty"`
	Skills       []string `json:"skills"`
	LegacySkills string   `json:"legacy_skills,omitempty"`
}

// Employer posts job offers, optionally on behalf of a company.
type Employer struct {
	Person
	Description    string     `json:"description,omitempty"`
	EnterpriseName string     `json:"enterprise_name,omitempty"`
	CompanyID      *uuid.UUID `json:"company_id,omitempty"`
}

// Company groups employers and offers. OwnerEmployerID is the only
// authoritative edge stored here; which employers and offers belong to a
// company is derived from foreign keys by the state projection.
type Company struct {
	ID              uuid.UUID  `json:"id"`
	OwnerEmployerID *uuid.UUID `json:"owner_employer_id,omitempty"`
	Name            string     `json:"name"`
	Location        string     `json:"location,omitempty"`
	Description     string     `json:"description,omitempty"`
}

// OfferStatus is the lifecycle state of a job offer.
type OfferStatus string

const (
	OfferDraft     OfferStatus = "Draft"
	OfferPublished OfferStatus = "Published"
	OfferClosed    OfferStatus = "Closed"
	OfferReopened  OfferStatus = "Reopened"
)

// ValidOfferStatus reports whether s is a known offer status.
func ValidOfferStatus(s OfferStatus) bool {
	switch s {
	case OfferDraft, OfferPublished, OfferClosed, OfferReopened:
		return true
	}
	return false
}

// JobOffer is posted by an employer, optionally for a company.
// RequiredSkills and RequiredQualifications feed the matching engine.
type JobOffer struct {
	ID                     uuid.UUID   `json:"id"`
	EmployerID             uuid.UUID   `json:"employer_id"`
	CompanyID              *uuid.UUID  `json:"company_id,omitempty"`
	Title                  string      `json:"title"`
	Description            string      `json:"description,omitempty"`
	EmploymentType         string      `json:"employment_type,omitempty"`
	Status                 OfferStatus `json:"status"`
	StartDate              *time.Time  `json:"start_date,omitempty"`
	EndDate                *time.Time  `json:"end_date,omitempty"`
	CreatedAt              time.Time   `json:"created_at"`
	RequiredSkills         []string    `json:"required_skills"`
	RequiredQualifications []string    `json:"required_qualifications"`
}

// ApplicationStatus is the lifecycle state of an application.
type ApplicationStatus string

const (
	ApplicationSubmitted ApplicationStatus = "Submitted"
	ApplicationInReview  ApplicationStatus = "In_review"
	ApplicationRejected  ApplicationStatus = "Rejected"
	ApplicationAccepted  ApplicationStatus = "Accepted"
	ApplicationWithdrawn ApplicationStatus = "Withdrawn"
)

// ValidApplicationStatus reports whether s is a known application status.
func ValidApplicationStatus(s ApplicationStatus) bool {
	switch s {
	case ApplicationSubmitted, ApplicationInReview, ApplicationRejected,
		ApplicationAccepted, ApplicationWithdrawn:
		return true
	}
	return false
}

// Application links an applicant to a job offer. JobOfferID and
// ApplicantID are pinned at creation and never repointed. MatchScore is
// nil until a score has been computed, then 0-100 with one decimal.
type Application struct {
	ID          uuid.UUID         `json:"id"`
	JobOfferID  uuid.UUID         `json:"job_offer_id"`
	ApplicantID uuid.UUID         `json:"applicant_id"`
	Status      ApplicationStatus `json:"status"`
	MatchScore  *float64          `json:"match_score,omitempty"`
	SubmittedAt time.Time         `json:"submitted_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// InterviewMode is how an interview is conducted.
type InterviewMode string

const (
	InterviewOnline   InterviewMode = "Online"
	InterviewInPerson InterviewMode = "In_person"
	InterviewPhone    InterviewMode = "Phone"
)

// ParseInterviewMode maps raw input to a mode, defaulting to Online.
func ParseInterviewMode(raw string) InterviewMode {
	switch InterviewMode(raw) {
	case InterviewOnline, InterviewInPerson, InterviewPhone:
		return InterviewMode(raw)
	}
	return InterviewOnline
}

// InterviewStatus is the lifecycle state of an interview.
type InterviewStatus string

const (
	InterviewScheduled InterviewStatus = "Scheduled"
	InterviewCompleted InterviewStatus = "Completed"
	InterviewCanceled  InterviewStatus = "Canceled"
	InterviewNoShow    InterviewStatus = "No_show"
)

// ValidInterviewStatus reports whether s is a known interview status.
func ValidInterviewStatus(s InterviewStatus) bool {
	switch s {
	case InterviewScheduled, InterviewCompleted, InterviewCanceled, InterviewNoShow:
		return true
	}
	return false
}

// Interview is scheduled between an applicant and a job offer's employer.
type Interview struct {
	ID             uuid.UUID       `json:"id"`
	JobOfferID     uuid.UUID       `json:"job_offer_id"`
	ApplicantID    uuid.UUID       `json:"applicant_id"`
	ScheduledAt    time.Time       `json:"scheduled_at"`
	Mode           InterviewMode   `json:"mode"`
	Status         InterviewStatus `json:"status"`
	LocationOrLink string          `json:"location_or_link,omitempty"`
}
