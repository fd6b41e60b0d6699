// Package notify delivers the staff e-mail sent for every new contact
// submission.
//
// Delivery is fire-and-forget from the caller's point of view: the
// Dispatcher runs each Notifier call on its own goroutine with a timeout,
// logs and counts failures, and never reports them back to the submitter.
// Close waits for in-flight deliveries during shutdown.
package notify

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/renacod/backend/internal/domain"
)

// Notifier sends one new-contact notification.
type Notifier interface {
	Notify(ctx context.Context, c domain.Contact) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, c domain.Contact) error

func (f NotifierFunc) Notify(ctx context.Context, c domain.Contact) error { return f(ctx, c) }

// LogNotifier records the notification in the log instead of sending mail.
// It is used when no SMTP host is configured.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, c domain.Contact) error {
	log.Info().
		Str("contact_id", c.ID).
		Str("service", c.Service).
		Str("subject", c.Subject).
		Msg("new contact (mail delivery disabled)")
	return nil
}

// Message is a rendered notification e-mail.
type Message struct {
	Subject string
	HTML    string
}

type messageData struct {
	Name      string
	Email     string
	Phone     string
	Company   string
	Subject   string
	Service   string
	Budget    string
	Timeline  string
	Source    string
	Submitted string
	Message   string
}

var contactTemplate = template.Must(template.New("contact_notification.html").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #333; border-bottom: 2px solid #007bff; padding-bottom: 10px;">New Contact Form Submission</h2>
  <div style="background-color: #f8f9fa; padding: 20px; border-radius: 8px; margin: 20px 0;">
    <h3 style="color: #007bff; margin-top: 0;">Contact Details</h3>
    <p><strong>Name:</strong> {{.Name}}</p>
    <p><strong>Email:</strong> {{.Email}}</p>
    {{- if .Phone}}
    <p><strong>Phone:</strong> {{.Phone}}</p>
    {{- end}}
    {{- if .Company}}
    <p><strong>Company:</strong> {{.Company}}</p>
    {{- end}}
    <p><strong>Subject:</strong> {{.Subject}}</p>
    <p><strong>Service:</strong> {{.Service}}</p>
    <p><strong>Budget:</strong> {{.Budget}}</p>
    <p><strong>Timeline:</strong> {{.Timeline}}</p>
    <p><strong>Source:</strong> {{.Source}}</p>
    <p><strong>Submitted:</strong> {{.Submitted}}</p>
  </div>
  <div style="background-color: #fff; padding: 20px; border: 1px solid #dee2e6; border-radius: 8px;">
    <h3 style="color: #333; margin-top: 0;">Message</h3>
    <p style="line-height: 1.6; color: #555;">{{.Message}}</p>
  </div>
  <div style="margin-top: 30px; padding: 20px; background-color: #e9ecef; border-radius: 8px;">
    <p style="margin: 0; color: #6c757d; font-size: 14px;">This is an automated notification from your website contact form. Please respond to the customer within 24 hours.</p>
  </div>
</div>
`))

// Render builds the notification e-mail for c. All contact fields are
// HTML-escaped.
func Render(c domain.Contact) (Message, error) {
	data := messageData{
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Company:   c.Company,
		Subject:   c.Subject,
		Service:   serviceLabel(c.Service),
		Budget:    orNotSpecified(c.Budget),
		Timeline:  orNotSpecified(c.Timeline),
		Source:    c.Source,
		Submitted: c.CreatedAt.UTC().Format(time.RFC1123),
		Message:   c.Message,
	}
	var body bytes.Buffer
	if err := contactTemplate.Execute(&body, data); err != nil {
		return Message{}, fmt.Errorf("render notification: %w", err)
	}
	return Message{
		Subject: "New Contact Form Submission: " + c.Subject,
		HTML:    body.String(),
	}, nil
}

// serviceLabel turns "web-development" into "Web Development".
func serviceLabel(s string) string {
	if s == "" {
		return "Not specified"
	}
	return cases.Title(language.English).String(strings.ReplaceAll(s, "-", " "))
}

func orNotSpecified(s string) string {
	if s == "" {
		return "Not specified"
	}
	return s
}
