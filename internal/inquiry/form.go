package inquiry

import (
	"context"
	"time"

	"github.com/getmentor/inquiry-api/internal/models"
	"github.com/getmentor/inquiry-api/internal/services"
	"github.com/getmentor/inquiry-api/internal/validation"
	apperrors "github.com/getmentor/inquiry-api/pkg/errors"
	"github.com/getmentor/inquiry-api/pkg/logger"
	"github.com/getmentor/inquiry-api/pkg/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrorNotice is shown to the user when delivery fails
const ErrorNotice = "Sorry, there was an error submitting your form. Please try again later."

var (
	ErrValidationFailed = apperrors.InvalidInputError("form", "validation failed")
	ErrSubmitInProgress = apperrors.ConflictError("submission already in progress")
	ErrAlreadySubmitted = apperrors.ConflictError("form already submitted")
)

// State is the position of the form in the submission workflow
type State int

const (
	StateIdle State = iota
	StateValidating
	StateSending
	StateSuccess
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateSending:
		return "sending"
	case StateSuccess:
		return "success"
	default:
		return "unknown"
	}
}

// Form is one instance of the inquiry form: its field values, the inline errors,
// the surrounding controls and where it is in the workflow.
// A Form is not safe for concurrent use.
type Form struct {
	engine   *validation.Engine
	workflow services.InquiryServiceInterface
	board    *validation.Board
	values   validation.Values
	view     models.FormView
	state    State
}

// NewForm creates a form as it looks on page load
func NewForm(engine *validation.Engine, workflow services.InquiryServiceInterface) *Form {
	return &Form{
		engine:   engine,
		workflow: workflow,
		board:    validation.NewBoard(),
		values:   make(validation.Values, len(validation.FieldOrder)),
		view:     models.NewFormView(),
		state:    StateIdle,
	}
}

// Input records a keystroke. An error shown on this field is hidden straight away;
// the value is only checked again on the next blur or submit.
func (f *Form) Input(field validation.FieldName, value string) {
	if _, ok := validation.Rule(field); !ok {
		return
	}
	f.values[field] = value
	if f.board.HasError(field) {
		f.board.Clear(field)
	}
}

// Blur checks the field on its own, leaving the other fields' errors alone
func (f *Form) Blur(field validation.FieldName) bool {
	if _, ok := validation.Rule(field); !ok {
		return false
	}
	f.board.Clear(field)
	return f.engine.Check(f.board, field, validation.TrimSpace(f.values[field]))
}

// Fill enters every value of the request as typed input, in field order
func (f *Form) Fill(req models.InquiryRequest) {
	f.Input(validation.NameField, req.Name)
	f.Input(validation.EmailField, req.Email)
	f.Input(validation.SubjectField, req.Subject)
	f.Input(validation.MessageField, req.Message)
}

// Submit validates the whole form and, when every field passes, delivers it.
// On success the form is replaced by the confirmation. On delivery failure the form
// returns to idle with the generic notice set and the error returned.
func (f *Form) Submit(ctx context.Context) (*models.Submission, error) {
	switch f.state {
	case StateSending, StateValidating:
		return nil, ErrSubmitInProgress
	case StateSuccess:
		return nil, ErrAlreadySubmitted
	}

	f.state = StateValidating
	f.view.Notice = ""
	if !f.engine.ValidateForm(f.board, f.values) {
		f.state = StateIdle
		metrics.InquirySubmissions.WithLabelValues("invalid").Inc()
		return nil, ErrValidationFailed
	}

	sub := f.submission()
	f.state = StateSending
	f.showBusy()

	if err := f.workflow.Deliver(ctx, sub); err != nil {
		f.state = StateIdle
		f.hideBusy()
		f.view.Notice = ErrorNotice
		metrics.InquirySubmissions.WithLabelValues("failed").Inc()
		logger.Error("Error submitting form",
			zap.String("submission_id", sub.ID),
			zap.Error(err))
		return nil, err
	}

	f.state = StateSuccess
	f.showConfirmation()
	metrics.InquirySubmissions.WithLabelValues("success").Inc()
	return sub, nil
}

// submission carries the values as entered; trimming only applies to checks
func (f *Form) submission() *models.Submission {
	return &models.Submission{
		ID:        uuid.NewString(),
		Name:      f.values[validation.NameField],
		Email:     f.values[validation.EmailField],
		Subject:   f.values[validation.SubjectField],
		Message:   f.values[validation.MessageField],
		CreatedAt: time.Now().UTC(),
	}
}

func (f *Form) showBusy() {
	f.view.SubmitDisabled = true
	f.view.LabelVisible = false
	f.view.BusyVisible = true
}

func (f *Form) hideBusy() {
	f.view.SubmitDisabled = false
	f.view.LabelVisible = true
	f.view.BusyVisible = false
}

func (f *Form) showConfirmation() {
	f.view.FormHidden = true
	f.view.ConfirmationVisible = true
	f.view.ConfirmationScrolled = true
	f.view.ConfirmationShown++
}

// State returns the current workflow state
func (f *Form) State() State {
	return f.state
}

// View returns a copy of the form chrome
func (f *Form) View() models.FormView {
	return f.view
}

// Board exposes the inline error slots
func (f *Form) Board() *validation.Board {
	return f.board
}

// Errors lists the visible inline errors in field order
func (f *Form) Errors() []models.FieldError {
	return f.board.Visible()
}

// Value returns the current raw value of a field
func (f *Form) Value(field validation.FieldName) string {
	return f.values[field]
}
