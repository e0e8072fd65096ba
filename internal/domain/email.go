package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
// It is invoked only from background jobs, never from a request handler.
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the
// given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// InvitationEmailData holds data for the private-event invitation email.
type InvitationEmailData struct {
	Email          string
	EventName      string
	InvitedBy      string
	InvitationLink string
}

// ReminderEmailData holds data for the event reminder email.
type ReminderEmailData struct {
	Email     string
	Name      string
	EventName string
	Message   string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendInvitation(ctx context.Context, data *InvitationEmailData) error
	SendReminder(ctx context.Context, data *ReminderEmailData) error
}
