package email

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/template"
)

// NotProvided stands in for an empty optional field in the message body.
const NotProvided = "Not provided"

// EmailService formats contact submissions and hands them to a Transport.
type EmailService struct {
	transport  Transport
	ownerEmail string
	password   string
}

// ContactEmailData holds the data for contact form emails
type ContactEmailData struct {
	SenderName  string
	SenderEmail string
	Company     string
	Subject     string
	Message     string
}

// NewEmailService creates an email service that sends from and to ownerEmail.
// An empty password leaves the service unconfigured.
func NewEmailService(ownerEmail, password string, transport Transport) *EmailService {
	return &EmailService{
		transport:  transport,
		ownerEmail: ownerEmail,
		password:   password,
	}
}

var contactBodyTemplate = template.Must(template.New("contact").Parse(`New message from your portfolio website:

Name: {{.SenderName}}
Email: {{.SenderEmail}}
Company: {{.Company}}
Subject: {{.Subject}}

Message:
{{.Message}}

---
This message was sent from your portfolio contact form.
`))

// ContactSubjectLine builds the subject header for a contact message.
func ContactSubjectLine(data ContactEmailData) string {
	return fmt.Sprintf("Portfolio Contact: %s - %s", singleLine(data.Subject), singleLine(data.SenderName))
}

// BuildContactMessage renders the message without sending it.
func (s *EmailService) BuildContactMessage(data ContactEmailData) (*Message, error) {
	if strings.TrimSpace(data.Company) == "" {
		data.Company = NotProvided
	}

	var body bytes.Buffer
	if err := contactBodyTemplate.Execute(&body, data); err != nil {
		return nil, fmt.Errorf("failed to execute email template: %w", err)
	}

	msg := &Message{
		From:    s.ownerEmail,
		To:      []string{s.ownerEmail},
		Subject: ContactSubjectLine(data),
		Body:    body.String(),
	}
	if !strings.ContainsAny(data.SenderEmail, "\r\n") {
		msg.ReplyTo = data.SenderEmail
	}
	return msg, nil
}

// SendContactEmail makes one delivery attempt.
func (s *EmailService) SendContactEmail(ctx context.Context, data ContactEmailData) error {
	msg, err := s.BuildContactMessage(data)
	if err != nil {
		return err
	}
	if err := s.transport.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// IsConfigured reports whether a credential was supplied.
func (s *EmailService) IsConfigured() bool {
	return s.password != "" && s.transport != nil
}

func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
