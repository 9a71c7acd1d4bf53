package email

import (
	"context"
	"fmt"

	"github.com/getmentor/inquiry-api/config"
	"github.com/wneessen/go-mail"
)

// SMTPSender renders templates locally and delivers them over SMTP
type SMTPSender struct {
	cfg       config.SMTPConfig
	from      string
	templates *Templates
}

// NewSMTPSender creates an SMTP sender. Port 465 uses implicit TLS, anything else
// requires STARTTLS.
func NewSMTPSender(cfg config.SMTPConfig, from string, templates *Templates) *SMTPSender {
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	return &SMTPSender{cfg: cfg, from: from, templates: templates}
}

// Send renders templateID and delivers it in one SMTP session
func (s *SMTPSender) Send(ctx context.Context, _, templateID string, vars Variables) error {
	msg, err := s.buildMessage(templateID, vars)
	if err != nil {
		return err
	}

	// Cancellation comes from ctx; go-mail keeps its own default dial/IO timeout
	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
	}
	if s.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.Username),
			mail.WithPassword(s.cfg.Password),
		)
	}
	if s.cfg.Port == 465 {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPortPolicy(mail.TLSMandatory))
	}

	client, err := mail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("smtp: failed to create client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp: failed to send: %w", err)
	}
	return nil
}

func (s *SMTPSender) buildMessage(templateID string, vars Variables) (*mail.Msg, error) {
	rendered, err := s.templates.Render(templateID, vars)
	if err != nil {
		return nil, err
	}

	m := mail.NewMsg()
	if err := m.From(s.from); err != nil {
		return nil, fmt.Errorf("smtp: invalid from address: %w", err)
	}
	if err := m.To(rendered.To); err != nil {
		return nil, fmt.Errorf("smtp: invalid to address: %w", err)
	}
	if rendered.ReplyTo != "" {
		if err := m.ReplyTo(rendered.ReplyTo); err != nil {
			return nil, fmt.Errorf("smtp: invalid reply-to address: %w", err)
		}
	}
	m.Subject(rendered.Subject)
	m.SetBodyString(mail.TypeTextPlain, rendered.Text)
	return m, nil
}
