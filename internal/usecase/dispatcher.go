package usecase

import (
	"context"
	"fmt"
	"strings"

	"go-portfolio-site/internal/domain"
	"go-portfolio-site/pkg/email"
)

// ContactMailer is the part of email.EmailService the dispatcher needs.
type ContactMailer interface {
	IsConfigured() bool
	SendContactEmail(ctx context.Context, data email.ContactEmailData) error
}

type messageDispatcher struct {
	mailer ContactMailer
}

// NewMessageDispatcher wraps a mailer with the single-attempt delivery policy.
func NewMessageDispatcher(mailer ContactMailer) domain.MessageDispatcher {
	return &messageDispatcher{mailer: mailer}
}

func (d *messageDispatcher) Dispatch(ctx context.Context, submission *domain.ContactSubmission) domain.DeliveryOutcome {
	if d.mailer == nil || !d.mailer.IsConfigured() {
		return domain.DeliveryOutcome{Status: domain.DeliveryNotConfigured, Err: domain.ErrDeliveryNotConfigured}
	}

	data := email.ContactEmailData{
		SenderName:  strings.TrimSpace(submission.Name),
		SenderEmail: strings.TrimSpace(submission.SenderEmail),
		Company:     strings.TrimSpace(submission.Company),
		Subject:     submission.Subject.String(),
		Message:     strings.TrimSpace(submission.Message),
	}

	if err := d.mailer.SendContactEmail(ctx, data); err != nil {
		return domain.DeliveryOutcome{Status: domain.DeliveryFailed, Err: fmt.Errorf("%w: %w", domain.ErrDeliveryFailed, err)}
	}
	return domain.DeliveryOutcome{Status: domain.DeliveryDelivered}
}

// DeliveryObserver is notified of every delivery outcome.
type DeliveryObserver interface {
	ObserveDelivery(status string)
}

type observedDispatcher struct {
	next     domain.MessageDispatcher
	observer DeliveryObserver
}

// NewObservedDispatcher reports each outcome of next to observer.
func NewObservedDispatcher(next domain.MessageDispatcher, observer DeliveryObserver) domain.MessageDispatcher {
	return &observedDispatcher{next: next, observer: observer}
}

func (d *observedDispatcher) Dispatch(ctx context.Context, submission *domain.ContactSubmission) domain.DeliveryOutcome {
	outcome := d.next.Dispatch(ctx, submission)
	d.observer.ObserveDelivery(string(outcome.Status))
	return outcome
}
