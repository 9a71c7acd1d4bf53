package services

import (
	"context"

	"github.com/getmentor/inquiry-api/config"
	"github.com/getmentor/inquiry-api/internal/email"
	"github.com/getmentor/inquiry-api/internal/models"
	apperrors "github.com/getmentor/inquiry-api/pkg/errors"
	"github.com/getmentor/inquiry-api/pkg/logger"
	"go.uber.org/zap"
)

// InquiryService delivers a valid submission as two emails: a notification to the
// operator and a confirmation to the person who submitted the form.
type InquiryService struct {
	sender                 email.Sender
	serviceID              string
	adminTemplateID        string
	confirmationTemplateID string
}

// NewInquiryService creates a new inquiry service instance
func NewInquiryService(sender email.Sender, cfg config.EmailConfig) *InquiryService {
	return &InquiryService{
		sender:                 sender,
		serviceID:              cfg.ServiceID,
		adminTemplateID:        cfg.AdminTemplateID,
		confirmationTemplateID: cfg.ConfirmationTemplateID,
	}
}

// Deliver sends the admin notification, then the confirmation. The second send is
// only started once the first has succeeded. There is no retry: any failure is
// returned wrapped in ErrDelivery and the caller decides what the user sees.
func (s *InquiryService) Deliver(ctx context.Context, sub *models.Submission) error {
	vars := email.Variables{
		Name:    sub.Name,
		Email:   sub.Email,
		Subject: sub.Subject,
		Message: sub.Message,
	}
	log := logger.With(zap.String("submission_id", sub.ID))

	for _, templateID := range []string{s.adminTemplateID, s.confirmationTemplateID} {
		if err := s.sender.Send(ctx, s.serviceID, templateID, vars); err != nil {
			log.Error("Failed to deliver inquiry email",
				zap.String("template", templateID),
				zap.Error(err))
			return apperrors.DeliveryError(templateID, err)
		}
	}

	log.Info("Inquiry delivered")
	return nil
}
