package email

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
)

// ResendSender renders templates locally and sends them through the Resend API.
// The service identifier is not used by this provider.
type ResendSender struct {
	client    *resend.Client
	from      string
	templates *Templates
}

// NewResendSender creates a new ResendSender with the given API key and from address
func NewResendSender(apiKey, from string, templates *Templates) *ResendSender {
	return &ResendSender{
		client:    resend.NewClient(apiKey),
		from:      from,
		templates: templates,
	}
}

// Send renders templateID and queues it with Resend
func (s *ResendSender) Send(ctx context.Context, _, templateID string, vars Variables) error {
	msg, err := s.templates.Render(templateID, vars)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Text:    msg.Text,
	}
	if msg.ReplyTo != "" {
		params.ReplyTo = msg.ReplyTo
	}

	if _, err := s.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("resend send failed: %w", err)
	}
	return nil
}
