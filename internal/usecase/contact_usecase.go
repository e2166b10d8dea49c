package usecase

import (
	"context"
	"fmt"
	"strings"

	"go-portfolio-site/internal/domain"
	"go-portfolio-site/pkg/apperror"
	"go-portfolio-site/pkg/logger"
	"go-portfolio-site/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// Visitor-facing texts.
const (
	MsgRequiredFields   = "Please fill in all required fields (*)"
	MsgDelivered        = "Thank you for your message! I've received it and will get back to you within 24 hours."
	MsgDeliveryInactive = "Your message was received. Email delivery is not active on this site yet, so it was not forwarded by email."
	MsgDeliveryFailed   = "Your message was received, but it could not be delivered by email right now. Please try again later."
	MsgAlreadySubmitted = "You have already sent a message. Use \"Send another message\" to write a new one."
)

type contactUsecase struct {
	dispatcher domain.MessageDispatcher
	validate   *validator.Validate
}

func NewContactUsecase(dispatcher domain.MessageDispatcher, validate *validator.Validate) domain.ContactUsecase {
	subjects := make([]string, len(domain.ContactSubjects))
	for i, s := range domain.ContactSubjects {
		subjects[i] = s.String()
	}
	validation.RegisterStringSet(validate, "contact_subject", subjects)

	return &contactUsecase{
		dispatcher: dispatcher,
		validate:   validate,
	}
}

// Submit validates the submission and makes one delivery attempt. A validation
// failure returns the session untouched; delivery problems never produce an error.
func (uc *contactUsecase) Submit(ctx context.Context, session domain.VisitorSession, submission *domain.ContactSubmission) (domain.VisitorSession, error) {
	if session.State.Submitted {
		return session, apperror.Conflict(MsgAlreadySubmitted, domain.ErrAlreadySubmitted)
	}

	// Required means non-empty as typed; whitespace counts as content.
	if err := uc.validate.Struct(submission); err != nil {
		return session, apperror.Validation(
			MsgRequiredFields,
			validation.FormatValidationErrors(err),
			fmt.Errorf("%w: %v", domain.ErrValidation, err),
		)
	}

	normalized := *submission
	normalized.Name = strings.TrimSpace(normalized.Name)
	normalized.SenderEmail = strings.TrimSpace(normalized.SenderEmail)
	normalized.Company = strings.TrimSpace(normalized.Company)
	normalized.Message = strings.TrimSpace(normalized.Message)

	outcome := uc.dispatcher.Dispatch(ctx, &normalized)

	next := session
	next.State = domain.SubmissionState{Submitted: true, Delivered: outcome.Delivered()}

	switch outcome.Status {
	case domain.DeliveryDelivered:
		next.Notice = &domain.Notice{Level: domain.NoticeSuccess, Text: MsgDelivered}
	case domain.DeliveryNotConfigured:
		logger.Log.Info("Contact message received with delivery disabled", "session_id", session.ID)
		next.Notice = &domain.Notice{Level: domain.NoticeInfo, Text: MsgDeliveryInactive}
	default:
		logger.Log.Error("Contact message delivery failed", "session_id", session.ID, "error", outcome.Err)
		next.Notice = &domain.Notice{Level: domain.NoticeWarning, Text: MsgDeliveryFailed}
	}

	return next, nil
}

// Reset returns the session to an empty, editable form.
func (uc *contactUsecase) Reset(ctx context.Context, session domain.VisitorSession) domain.VisitorSession {
	return domain.NewVisitorSession(session.ID)
}
