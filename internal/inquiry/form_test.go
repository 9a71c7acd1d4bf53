package inquiry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/getmentor/inquiry-api/config"
	"github.com/getmentor/inquiry-api/internal/email"
	"github.com/getmentor/inquiry-api/internal/inquiry"
	"github.com/getmentor/inquiry-api/internal/models"
	"github.com/getmentor/inquiry-api/internal/services"
	"github.com/getmentor/inquiry-api/internal/validation"
	apperrors "github.com/getmentor/inquiry-api/pkg/errors"
	"github.com/getmentor/inquiry-api/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	if err := logger.Initialize(logger.Config{Level: "debug", Environment: "development"}); err != nil {
		panic(err)
	}
}

type MockWorkflow struct {
	mock.Mock
}

func (m *MockWorkflow) Deliver(ctx context.Context, sub *models.Submission) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func validRequest() models.InquiryRequest {
	return models.InquiryRequest{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Subject: "Booking",
		Message: "I would like to book a tour.",
	}
}

func newForm(workflow *MockWorkflow) *inquiry.Form {
	return inquiry.NewForm(validation.NewEngine(), workflow)
}

func TestForm_InitialView(t *testing.T) {
	form := newForm(new(MockWorkflow))

	view := form.View()
	assert.Equal(t, inquiry.StateIdle, form.State())
	assert.False(t, view.SubmitDisabled)
	assert.True(t, view.LabelVisible)
	assert.False(t, view.BusyVisible)
	assert.False(t, view.FormHidden)
	assert.False(t, view.ConfirmationVisible)
	assert.Empty(t, form.Errors())
}

func TestForm_Submit_InvalidFieldBlocksDelivery(t *testing.T) {
	workflow := new(MockWorkflow)
	form := newForm(workflow)

	req := validRequest()
	req.Email = "not-an-email"
	form.Fill(req)

	sub, err := form.Submit(context.Background())
	require.Error(t, err)
	assert.Nil(t, sub)
	assert.ErrorIs(t, err, inquiry.ErrValidationFailed)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))

	assert.Equal(t, inquiry.StateIdle, form.State())
	assert.Equal(t, []models.FieldError{
		{Field: "email", Message: "Please enter a valid email address"},
	}, form.Errors())
	assert.False(t, form.View().SubmitDisabled)
	workflow.AssertNotCalled(t, "Deliver", mock.Anything, mock.Anything)
}

func TestForm_Submit_AllErrorsSurfaceTogether(t *testing.T) {
	workflow := new(MockWorkflow)
	form := newForm(workflow)

	_, err := form.Submit(context.Background())
	require.ErrorIs(t, err, inquiry.ErrValidationFailed)

	assert.Equal(t, []models.FieldError{
		{Field: "name", Message: "name is required"},
		{Field: "email", Message: "email is required"},
		{Field: "subject", Message: "subject is required"},
		{Field: "message", Message: "message is required"},
	}, form.Errors())
	workflow.AssertNotCalled(t, "Deliver", mock.Anything, mock.Anything)
}

func TestForm_Submit_Success(t *testing.T) {
	workflow := new(MockWorkflow)
	form := newForm(workflow)
	ctx := context.Background()

	req := validRequest()
	req.Name = "  Jane Doe  "
	form.Fill(req)

	workflow.On("Deliver", ctx, mock.MatchedBy(func(sub *models.Submission) bool {
		return sub.Name == "  Jane Doe  " &&
			sub.Email == "jane@example.com" &&
			sub.Subject == "Booking" &&
			sub.Message == "I would like to book a tour." &&
			sub.ID != ""
	})).Return(nil).Once()

	sub, err := form.Submit(ctx)
	require.NoError(t, err)
	require.NotNil(t, sub)

	view := form.View()
	assert.Equal(t, inquiry.StateSuccess, form.State())
	assert.True(t, view.FormHidden)
	assert.True(t, view.ConfirmationVisible)
	assert.True(t, view.ConfirmationScrolled)
	assert.Equal(t, 1, view.ConfirmationShown)
	assert.Empty(t, view.Notice)
	workflow.AssertExpectations(t)
}

func TestForm_Submit_RefusedAfterSuccess(t *testing.T) {
	workflow := new(MockWorkflow)
	form := newForm(workflow)
	form.Fill(validRequest())

	workflow.On("Deliver", mock.Anything, mock.Anything).Return(nil).Once()

	_, err := form.Submit(context.Background())
	require.NoError(t, err)

	_, err = form.Submit(context.Background())
	require.ErrorIs(t, err, inquiry.ErrAlreadySubmitted)
	assert.True(t, apperrors.Is(err, apperrors.ErrConflict))

	assert.Equal(t, 1, form.View().ConfirmationShown)
	workflow.AssertNumberOfCalls(t, "Deliver", 1)
}

func TestForm_Submit_DeliveryFailureRestoresForm(t *testing.T) {
	workflow := new(MockWorkflow)
	form := newForm(workflow)
	form.Fill(validRequest())

	cause := apperrors.DeliveryError("template_znr8kor", errors.New("rejected"))
	workflow.On("Deliver", mock.Anything, mock.Anything).Return(cause).Once()

	sub, err := form.Submit(context.Background())
	require.Error(t, err)
	assert.Nil(t, sub)
	assert.True(t, apperrors.Is(err, apperrors.ErrDelivery))

	view := form.View()
	assert.Equal(t, inquiry.StateIdle, form.State())
	assert.False(t, view.SubmitDisabled)
	assert.True(t, view.LabelVisible)
	assert.False(t, view.BusyVisible)
	assert.False(t, view.FormHidden)
	assert.False(t, view.ConfirmationVisible)
	assert.Equal(t, 0, view.ConfirmationShown)
	assert.Equal(t, inquiry.ErrorNotice, view.Notice)
}

func TestForm_Submit_RetryAfterFailure(t *testing.T) {
	workflow := new(MockWorkflow)
	form := newForm(workflow)
	form.Fill(validRequest())

	workflow.On("Deliver", mock.Anything, mock.Anything).Return(errors.New("down")).Once()
	workflow.On("Deliver", mock.Anything, mock.Anything).Return(nil).Once()

	_, err := form.Submit(context.Background())
	require.Error(t, err)

	sub, err := form.Submit(context.Background())
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Empty(t, form.View().Notice)
	assert.Equal(t, inquiry.StateSuccess, form.State())
	workflow.AssertExpectations(t)
}

type blockingWorkflow struct {
	form  *inquiry.Form
	state inquiry.State
	view  models.FormView
	err   error
}

func (b *blockingWorkflow) Deliver(ctx context.Context, _ *models.Submission) error {
	b.state = b.form.State()
	b.view = b.form.View()
	_, b.err = b.form.Submit(ctx)
	return nil
}

func TestForm_Submit_RefusedWhileSending(t *testing.T) {
	workflow := &blockingWorkflow{}
	form := inquiry.NewForm(validation.NewEngine(), workflow)
	workflow.form = form
	form.Fill(validRequest())

	_, err := form.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, inquiry.StateSending, workflow.state)
	assert.True(t, workflow.view.SubmitDisabled)
	assert.False(t, workflow.view.LabelVisible)
	assert.True(t, workflow.view.BusyVisible)
	assert.ErrorIs(t, workflow.err, inquiry.ErrSubmitInProgress)
}

func TestForm_InputClearsOnlyThatField(t *testing.T) {
	form := newForm(new(MockWorkflow))

	_, err := form.Submit(context.Background())
	require.Error(t, err)
	require.Len(t, form.Errors(), 4)

	form.Input(validation.EmailField, "j")

	assert.False(t, form.Board().HasError(validation.EmailField))
	assert.True(t, form.Board().HasError(validation.NameField))
	assert.True(t, form.Board().HasError(validation.SubjectField))
	assert.True(t, form.Board().HasError(validation.MessageField))
	assert.Equal(t, "j", form.Value(validation.EmailField))
}

func TestForm_InputDoesNotRevalidate(t *testing.T) {
	form := newForm(new(MockWorkflow))

	form.Input(validation.NameField, "J")
	assert.False(t, form.Board().HasError(validation.NameField))
}

func TestForm_Blur(t *testing.T) {
	form := newForm(new(MockWorkflow))

	form.Input(validation.SubjectField, "Hi")
	assert.False(t, form.Blur(validation.SubjectField))
	assert.Equal(t, "Subject must be at least 3 characters long",
		form.Board().State(validation.SubjectField).Message)

	form.Input(validation.SubjectField, "Hi there")
	assert.False(t, form.Board().HasError(validation.SubjectField))
	assert.True(t, form.Blur(validation.SubjectField))
	assert.False(t, form.Board().HasError(validation.SubjectField))
}

func TestForm_BlurLeavesOtherFields(t *testing.T) {
	form := newForm(new(MockWorkflow))
	_, err := form.Submit(context.Background())
	require.Error(t, err)

	form.Input(validation.NameField, "Jane")
	assert.True(t, form.Blur(validation.NameField))

	assert.False(t, form.Board().HasError(validation.NameField))
	assert.True(t, form.Board().HasError(validation.EmailField))
}

func TestForm_UnknownFieldIgnored(t *testing.T) {
	form := newForm(new(MockWorkflow))

	form.Input("phone", "123")
	assert.Empty(t, form.Value("phone"))
	assert.False(t, form.Blur("phone"))
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", inquiry.StateIdle.String())
	assert.Equal(t, "validating", inquiry.StateValidating.String())
	assert.Equal(t, "sending", inquiry.StateSending.String())
	assert.Equal(t, "success", inquiry.StateSuccess.String())
	assert.Equal(t, "unknown", inquiry.State(42).String())
}

// failingSender records every send and fails the configured template
type failingSender struct {
	failTemplate string
	sent         []string
	vars         []email.Variables
}

func (s *failingSender) Send(_ context.Context, serviceID, templateID string, vars email.Variables) error {
	s.sent = append(s.sent, serviceID+"/"+templateID)
	s.vars = append(s.vars, vars)
	if templateID == s.failTemplate {
		return errors.New("provider rejected the request")
	}
	return nil
}

func TestForm_Submit_ConfirmationSendFails(t *testing.T) {
	sender := &failingSender{failTemplate: "template_znr8kor"}
	service := services.NewInquiryService(sender, config.EmailConfig{
		ServiceID:              "service_251x2ma",
		AdminTemplateID:        "template_cfg8uob",
		ConfirmationTemplateID: "template_znr8kor",
	})
	form := inquiry.NewForm(validation.NewEngine(), service)
	form.Fill(validRequest())

	sub, err := form.Submit(context.Background())
	require.Error(t, err)
	assert.Nil(t, sub)
	assert.True(t, apperrors.Is(err, apperrors.ErrDelivery))

	assert.Equal(t, []string{
		"service_251x2ma/template_cfg8uob",
		"service_251x2ma/template_znr8kor",
	}, sender.sent)
	require.Len(t, sender.vars, 2)
	assert.Equal(t, sender.vars[0], sender.vars[1])

	view := form.View()
	assert.Equal(t, inquiry.StateIdle, form.State())
	assert.False(t, view.ConfirmationVisible)
	assert.False(t, view.FormHidden)
	assert.Equal(t, 0, view.ConfirmationShown)
	assert.False(t, view.SubmitDisabled)
	assert.True(t, view.LabelVisible)
	assert.False(t, view.BusyVisible)
	assert.Equal(t, inquiry.ErrorNotice, view.Notice)
}

func TestForm_Submit_AdminSendFailsSkipsConfirmation(t *testing.T) {
	sender := &failingSender{failTemplate: "template_cfg8uob"}
	service := services.NewInquiryService(sender, config.EmailConfig{
		ServiceID:              "service_251x2ma",
		AdminTemplateID:        "template_cfg8uob",
		ConfirmationTemplateID: "template_znr8kor",
	})
	form := inquiry.NewForm(validation.NewEngine(), service)
	form.Fill(validRequest())

	_, err := form.Submit(context.Background())
	require.Error(t, err)

	assert.Equal(t, []string{"service_251x2ma/template_cfg8uob"}, sender.sent)
	assert.False(t, form.View().ConfirmationVisible)
	assert.Equal(t, inquiry.StateIdle, form.State())
}

func TestForm_Submit_SendsValuesAsEntered(t *testing.T) {
	sender := &failingSender{}
	service := services.NewInquiryService(sender, config.EmailConfig{
		ServiceID:              "service_251x2ma",
		AdminTemplateID:        "template_cfg8uob",
		ConfirmationTemplateID: "template_znr8kor",
	})
	form := inquiry.NewForm(validation.NewEngine(), service)

	req := validRequest()
	req.Subject = " Booking\u00a0"
	form.Fill(req)

	_, err := form.Submit(context.Background())
	require.NoError(t, err)
	require.Len(t, sender.vars, 2)
	assert.Equal(t, " Booking\u00a0", sender.vars[0].Subject)
	assert.Equal(t, 1, form.View().ConfirmationShown)
}
