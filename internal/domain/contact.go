package domain

import (
	"context"
	"errors"
)

var (
	// ErrValidation marks a submission that is missing required fields.
	ErrValidation = errors.New("contact submission is invalid")
	// ErrAlreadySubmitted is returned when the visitor posts again without resetting.
	ErrAlreadySubmitted = errors.New("a message was already submitted in this session")
	// ErrDeliveryNotConfigured means no mail credential is available.
	ErrDeliveryNotConfigured = errors.New("email delivery is not configured")
	// ErrDeliveryFailed wraps any transport or relay failure.
	ErrDeliveryFailed = errors.New("email delivery failed")
)

// ContactSubject is the fixed list of reasons a visitor can pick.
type ContactSubject string

const (
	SubjectJobOpportunity ContactSubject = "Job Opportunity"
	SubjectProjectInquiry ContactSubject = "Project Inquiry"
	SubjectCollaboration  ContactSubject = "Collaboration"
	SubjectInternship     ContactSubject = "Internship"
	SubjectMentorship     ContactSubject = "Mentorship"
	SubjectOther          ContactSubject = "Other"
)

// ContactSubjects keeps the order the form presents them in.
var ContactSubjects = []ContactSubject{
	SubjectJobOpportunity,
	SubjectProjectInquiry,
	SubjectCollaboration,
	SubjectInternship,
	SubjectMentorship,
	SubjectOther,
}

func (s ContactSubject) Valid() bool {
	for _, known := range ContactSubjects {
		if s == known {
			return true
		}
	}
	return false
}

func (s ContactSubject) String() string {
	return string(s)
}

// ContactSubmission represents a contact form submission
type ContactSubmission struct {
	Name        string         `json:"name" form:"name" validate:"required"`
	SenderEmail string         `json:"email" form:"email" validate:"required"`
	Company     string         `json:"company" form:"company"`
	Subject     ContactSubject `json:"subject" form:"subject" validate:"contact_subject"`
	Message     string         `json:"message" form:"message" validate:"required"`
}

// DeliveryStatus is the result of one delivery attempt.
type DeliveryStatus string

const (
	DeliveryDelivered     DeliveryStatus = "delivered"
	DeliveryNotConfigured DeliveryStatus = "not_configured"
	DeliveryFailed        DeliveryStatus = "failed"
)

// DeliveryOutcome is what the dispatcher reports back. Err is for logs only.
type DeliveryOutcome struct {
	Status DeliveryStatus
	Err    error
}

func (o DeliveryOutcome) Delivered() bool {
	return o.Status == DeliveryDelivered
}

// MessageDispatcher makes a single best-effort delivery attempt.
type MessageDispatcher interface {
	Dispatch(ctx context.Context, submission *ContactSubmission) DeliveryOutcome
}

// ContactUsecase drives the contact form. Both operations take the visitor's
// current session and return the next one; callers persist the result.
type ContactUsecase interface {
	Submit(ctx context.Context, session VisitorSession, submission *ContactSubmission) (VisitorSession, error)
	Reset(ctx context.Context, session VisitorSession) VisitorSession
}
