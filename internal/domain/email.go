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

// ResponseRecordedEmailData holds data for the host notification sent when
// a family's response is persisted.
type ResponseRecordedEmailData struct {
	HostEmail  string
	FamilyName string
	Accepted   bool
	Attendees  string // formatted first tokens, accept only
	Canceller  string // decline only
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendResponseRecorded(ctx context.Context, data *ResponseRecordedEmailData) error
}
