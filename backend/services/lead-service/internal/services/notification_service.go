package services

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/mudassir779/Frant-Ent-Tree/backend/services/lead-service/internal/config"
	"github.com/mudassir779/Frant-Ent-Tree/backend/services/lead-service/internal/form"
	"github.com/mudassir779/Frant-Ent-Tree/backend/shared/go-models"
)

// HTML template for the internal notification email.
const leadNotificationEmailHTML = `<!DOCTYPE html>
<html>
<head>
<style>
  body { font-family: monospace; line-height: 1.5; }
  .container { border: 1px solid #ccc; padding: 15px; max-width: 600px; }
  h2 { margin-top: 0; }
  ul { list-style: none; padding: 0; }
  li { margin-bottom: 5px; }
  strong { color: #000; }
</style>
</head>
<body>
  <div class="container">
    <h2>New Service Request</h2>
    <ul>
      <li><strong>Name:</strong> %s</li>
      <li><strong>Email:</strong> %s</li>
      <li><strong>Phone:</strong> %s</li>
      <li><strong>Property:</strong> %s</li>
      <li><strong>Services:</strong> %s</li>
      <li><strong>Photos:</strong> %d</li>
      <li><strong>Reference:</strong> %s</li>
      <li><strong>Timestamp (UTC):</strong> %s</li>
    </ul>
  </div>
</body>
</html>`

// NotificationService tells the office about an accepted lead.
type NotificationService interface {
	LeadSubmitted(ctx context.Context, state form.State, rec models.SubmittedRequest) error
}

// mailSender delivers one message.
type mailSender func(msg *mail.SGMailV3) error

type sendgridNotificationService struct {
	cfg  *config.Config
	send mailSender
}

// NewNotificationService returns a SendGrid-backed notifier, or a no-op one
// when notifications are disabled.
func NewNotificationService(cfg *config.Config) NotificationService {
	if !cfg.NotificationsEnabled() {
		return noopNotificationService{}
	}
	client := sendgrid.NewSendClient(cfg.SendgridAPIKey)
	return &sendgridNotificationService{
		cfg: cfg,
		send: func(msg *mail.SGMailV3) error {
			resp, err := client.Send(msg)
			if err != nil {
				return err
			}
			if resp.StatusCode >= 300 {
				return fmt.Errorf("sendgrid status %d: %s", resp.StatusCode, resp.Body)
			}
			return nil
		},
	}
}

func (s *sendgridNotificationService) LeadSubmitted(_ context.Context, state form.State, rec models.SubmittedRequest) error {
	return s.send(buildLeadNotification(s.cfg, state, rec, time.Now()))
}

func buildLeadNotification(cfg *config.Config, state form.State, rec models.SubmittedRequest, now time.Time) *mail.SGMailV3 {
	from := mail.NewEmail(cfg.OrganizationName+" Lead-Bot", cfg.LDFlag_SendgridFromEmail)
	to := mail.NewEmail(cfg.OrganizationName, cfg.NotifyEmail)

	services := rec.Service
	if services == "" {
		services = "(none selected)"
	}
	subject := fmt.Sprintf("[Lead] %s - %s", rec.Name, services)

	contact := state.ContactDetails
	plain := strings.Join([]string{
		"A new service request was submitted.",
		"",
		"Name: " + rec.Name,
		"Email: " + contact.Email,
		"Phone: " + contact.Phone,
		"Services: " + services,
		"Reference: " + rec.ID,
	}, "\n")
	htmlContent := fmt.Sprintf(
		leadNotificationEmailHTML,
		html.EscapeString(rec.Name),
		html.EscapeString(contact.Email),
		html.EscapeString(contact.Phone),
		html.EscapeString(state.ServiceDetails.PropertyType),
		html.EscapeString(services),
		len(state.Images),
		html.EscapeString(rec.ID),
		now.UTC().Format(time.RFC1123Z),
	)

	msg := mail.NewSingleEmail(from, subject, to, plain, htmlContent)
	if contact.Email != "" {
		msg.SetReplyTo(mail.NewEmail(rec.Name, contact.Email))
	}
	return msg
}

type noopNotificationService struct{}

func (noopNotificationService) LeadSubmitted(context.Context, form.State, models.SubmittedRequest) error {
	return nil
}
