package email

import (
	"context"
	"fmt"
	"time"

	"github.com/getmentor/inquiry-api/config"
	"github.com/getmentor/inquiry-api/pkg/httpclient"
	"github.com/getmentor/inquiry-api/pkg/logger"
	"github.com/getmentor/inquiry-api/pkg/metrics"
	"github.com/getmentor/inquiry-api/pkg/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

// Variables are the message variables every template receives
type Variables struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// Map returns the variables keyed the way templates reference them
func (v Variables) Map() map[string]string {
	return map[string]string{
		"name":    v.Name,
		"email":   v.Email,
		"subject": v.Subject,
		"message": v.Message,
	}
}

// Sender delivers one templated message through the external email collaborator
type Sender interface {
	Send(ctx context.Context, serviceID, templateID string, vars Variables) error
}

// NewSender builds the sender for the configured provider, wrapped with metrics,
// logging and tracing.
func NewSender(cfg config.EmailConfig, httpClient httpclient.Client) (Sender, error) {
	var s Sender

	switch cfg.Provider {
	case config.ProviderEmailJS:
		s = NewEmailJSSender(cfg.EmailJS, httpClient)
	case config.ProviderResend:
		templates, err := NewTemplates(cfg.AdminTemplateID, cfg.ConfirmationTemplateID, cfg.AdminAddress)
		if err != nil {
			return nil, err
		}
		s = NewResendSender(cfg.Resend.APIKey, cfg.FromAddress, templates)
	case config.ProviderSMTP:
		templates, err := NewTemplates(cfg.AdminTemplateID, cfg.ConfirmationTemplateID, cfg.AdminAddress)
		if err != nil {
			return nil, err
		}
		s = NewSMTPSender(cfg.SMTP, cfg.FromAddress, templates)
	case config.ProviderNoop:
		s = NewNoopSender()
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.Provider)
	}

	return Instrument(cfg.Provider, s), nil
}

type instrumentedSender struct {
	provider string
	next     Sender
}

// Instrument records duration, outcome and a span around every send
func Instrument(provider string, next Sender) Sender {
	return &instrumentedSender{provider: provider, next: next}
}

func (s *instrumentedSender) Send(ctx context.Context, serviceID, templateID string, vars Variables) error {
	ctx, span := tracing.StartSpan(ctx, "email.send",
		attribute.String("email.provider", s.provider),
		attribute.String("email.template", templateID))
	defer span.End()

	start := time.Now()
	err := s.next.Send(ctx, serviceID, templateID, vars)
	duration := metrics.MeasureDuration(start)

	status := "success"
	if err != nil {
		status = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	metrics.EmailSendDuration.WithLabelValues(s.provider, templateID, status).Observe(duration)
	metrics.EmailSendTotal.WithLabelValues(s.provider, templateID, status).Inc()

	fields := []zap.Field{zap.String("template", templateID)}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	logger.LogAPICall(s.provider, "send", status, duration, fields...)

	return err
}
