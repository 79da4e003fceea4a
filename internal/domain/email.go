package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// EnrollmentConfirmationEmailData holds data for the enrollment confirmation email.
type EnrollmentConfirmationEmailData struct {
	Email            string
	UserName         string
	EventTitle       string
	EventDates       string // Event.LongDate() output
	ConfirmationCode string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendEnrollmentConfirmation(ctx context.Context, data *EnrollmentConfirmationEmailData) error
}
