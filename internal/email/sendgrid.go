package email

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"roomies-go/internal/config"
	"roomies-go/internal/metrics"
)

type SendGridMailer struct {
	client *sendgrid.Client
	from   *mail.Email
}

// NewFromConfig returns a SendGrid-backed mailer, or a no-op one when the API
// key is absent.
func NewFromConfig(cfg config.EmailConfig) Mailer {
	if cfg.SendGridAPIKey == "" {
		return NoopMailer{}
	}
	return &SendGridMailer{
		client: sendgrid.NewSendClient(cfg.SendGridAPIKey),
		from:   mail.NewEmail(cfg.FromName, cfg.FromAddress),
	}
}

func (m *SendGridMailer) SendInvitation(ctx context.Context, msg InvitationMessage) error {
	subject := fmt.Sprintf("%s invited you to join %s on Roomies", msg.InviterName, msg.HouseholdName)

	plain := fmt.Sprintf(
		"%s invited you to join the household %q on Roomies.\n",
		msg.InviterName, msg.HouseholdName,
	)
	if msg.Message != "" {
		plain += "\n" + msg.Message + "\n"
	}
	plain += "\nLog in to Roomies to accept or decline the invitation."

	message := mail.NewSingleEmail(m.from, subject, mail.NewEmail("", msg.To), plain, "")

	resp, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		metrics.ObserveEmailSend(false)
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 400 {
		metrics.ObserveEmailSend(false)
		return fmt.Errorf("sendgrid send: unexpected status %d", resp.StatusCode)
	}
	metrics.ObserveEmailSend(true)
	return nil
}
