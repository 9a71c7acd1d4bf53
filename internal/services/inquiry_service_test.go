package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/getmentor/inquiry-api/config"
	"github.com/getmentor/inquiry-api/internal/email"
	"github.com/getmentor/inquiry-api/internal/models"
	"github.com/getmentor/inquiry-api/internal/services"
	apperrors "github.com/getmentor/inquiry-api/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var emailCfg = config.EmailConfig{
	ServiceID:              "service_251x2ma",
	AdminTemplateID:        "template_cfg8uob",
	ConfirmationTemplateID: "template_znr8kor",
}

func testSubmission() *models.Submission {
	return &models.Submission{
		ID:      "sub-1",
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Subject: "Booking",
		Message: "I would like to book a tour.",
	}
}

func expectedVars() email.Variables {
	return email.Variables{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Subject: "Booking",
		Message: "I would like to book a tour.",
	}
}

func TestInquiryService_Deliver_SendsBothInOrder(t *testing.T) {
	sender := new(MockSender)
	service := services.NewInquiryService(sender, emailCfg)
	ctx := context.Background()

	var order []string
	record := func(args mock.Arguments) { order = append(order, args.String(2)) }

	sender.On("Send", ctx, "service_251x2ma", "template_cfg8uob", expectedVars()).Run(record).Return(nil).Once()
	sender.On("Send", ctx, "service_251x2ma", "template_znr8kor", expectedVars()).Run(record).Return(nil).Once()

	err := service.Deliver(ctx, testSubmission())
	require.NoError(t, err)

	assert.Equal(t, []string{"template_cfg8uob", "template_znr8kor"}, order)
	sender.AssertExpectations(t)
}

func TestInquiryService_Deliver_FirstSendFails(t *testing.T) {
	sender := new(MockSender)
	service := services.NewInquiryService(sender, emailCfg)
	ctx := context.Background()

	cause := errors.New("network unreachable")
	sender.On("Send", ctx, "service_251x2ma", "template_cfg8uob", expectedVars()).Return(cause).Once()

	err := service.Deliver(ctx, testSubmission())
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrDelivery))
	assert.ErrorIs(t, err, cause)

	sender.AssertExpectations(t)
	sender.AssertNumberOfCalls(t, "Send", 1)
}

func TestInquiryService_Deliver_SecondSendFails(t *testing.T) {
	sender := new(MockSender)
	service := services.NewInquiryService(sender, emailCfg)
	ctx := context.Background()

	sender.On("Send", ctx, "service_251x2ma", "template_cfg8uob", expectedVars()).Return(nil).Once()
	sender.On("Send", ctx, "service_251x2ma", "template_znr8kor", expectedVars()).Return(errors.New("rejected")).Once()

	err := service.Deliver(ctx, testSubmission())
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrDelivery))
	assert.Contains(t, err.Error(), "template_znr8kor")

	sender.AssertExpectations(t)
}
