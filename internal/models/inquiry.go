package models

import "time"

// InquiryRequest represents the inquiry form as posted by the page.
// Field rules are enforced by the validation engine, not by binding tags, so that
// every field reports the same messages the page shows.
type InquiryRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// InquiryResponse represents the response after submitting the inquiry form
type InquiryResponse struct {
	Success      bool   `json:"success"`
	SubmissionID string `json:"submission_id,omitempty"`
	Error        string `json:"error,omitempty"`
}

// Submission is the record built from a fully valid form at submit time.
// It is never persisted and lives only for the duration of one delivery attempt.
type Submission struct {
	ID        string
	Name      string
	Email     string
	Subject   string
	Message   string
	CreatedAt time.Time
}

// FieldValidationRequest asks for a single field to be checked (the blur path)
type FieldValidationRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

// FieldValidationResponse is the verdict for a single field
type FieldValidationResponse struct {
	Field   string `json:"field"`
	Valid   bool   `json:"valid"`
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message,omitempty"`
}

// FieldError is one visible inline error
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FormView is the visible state of the form chrome around the fields: the submit
// control, its label and busy indicator, the form itself and the confirmation panel.
type FormView struct {
	SubmitDisabled       bool   `json:"submit_disabled"`
	LabelVisible         bool   `json:"label_visible"`
	BusyVisible          bool   `json:"busy_visible"`
	FormHidden           bool   `json:"form_hidden"`
	ConfirmationVisible  bool   `json:"confirmation_visible"`
	ConfirmationScrolled bool   `json:"confirmation_scrolled"`
	ConfirmationShown    int    `json:"-"`
	Notice               string `json:"notice,omitempty"`
}

// NewFormView returns the view as it looks on page load
func NewFormView() FormView {
	return FormView{LabelVisible: true}
}
