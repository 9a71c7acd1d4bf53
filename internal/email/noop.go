package email

import (
	"context"

	"github.com/getmentor/inquiry-api/pkg/logger"
	"go.uber.org/zap"
)

// NoopSender logs sends but does not deliver anything. Used in development.
type NoopSender struct{}

// NewNoopSender creates a new NoopSender
func NewNoopSender() *NoopSender {
	return &NoopSender{}
}

// Send logs the send and reports success
func (s *NoopSender) Send(_ context.Context, serviceID, templateID string, vars Variables) error {
	logger.Info("Noop email send",
		zap.String("service_id", serviceID),
		zap.String("template", templateID),
		zap.String("email", vars.Email),
		zap.String("subject", vars.Subject))
	return nil
}
