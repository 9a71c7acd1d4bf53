package validation

import (
	"fmt"
	"unicode/utf16"

	apperrors "github.com/getmentor/inquiry-api/pkg/errors"
	"github.com/getmentor/inquiry-api/pkg/logger"
	"github.com/getmentor/inquiry-api/pkg/metrics"
	"go.uber.org/zap"
)

// Reason says which check rejected a value
type Reason string

const (
	ReasonNone            Reason = ""
	ReasonRequired        Reason = "required"
	ReasonTooShort        Reason = "too_short"
	ReasonPatternMismatch Reason = "pattern_mismatch"
)

// Verdict is the outcome of evaluating one value against its field rule
type Verdict struct {
	Field   FieldName
	Valid   bool
	Reason  Reason
	Message string
}

// Values carries the raw input of every field
type Values map[FieldName]string

// Engine evaluates values against the fixed rule set
type Engine struct{}

// NewEngine creates a validation engine
func NewEngine() *Engine {
	return &Engine{}
}

// Evaluate checks value against the field's rule without touching any visible state.
// Checks run in order required, minimum length, pattern; the first failure decides
// the verdict.
func (e *Engine) Evaluate(field FieldName, value string) (Verdict, error) {
	rule, ok := rules[field]
	if !ok {
		return Verdict{}, apperrors.InvalidInputError(string(field), "unknown field")
	}

	if rule.Required && TrimSpace(value) == "" {
		return Verdict{
			Field:   field,
			Reason:  ReasonRequired,
			Message: RequiredMessage(field),
		}, nil
	}

	if rule.MinLength > 0 && textLength(value) < rule.MinLength {
		return Verdict{Field: field, Reason: ReasonTooShort, Message: rule.ErrorMessage}, nil
	}

	if rule.Pattern != nil && !rule.Pattern.MatchString(value) {
		return Verdict{Field: field, Reason: ReasonPatternMismatch, Message: rule.ErrorMessage}, nil
	}

	return Verdict{Field: field, Valid: true}, nil
}

// Check is the single-field path: it evaluates value and, on failure, shows the
// message in the field's slot. A passing value leaves the slot untouched; callers
// clear it first when re-validating.
func (e *Engine) Check(board *Board, field FieldName, value string) bool {
	verdict, err := e.Evaluate(field, value)
	if err != nil {
		logger.Warn("Validation requested for unknown field", zap.String("field", string(field)))
		return false
	}
	if verdict.Valid {
		return true
	}

	metrics.FieldValidationFailures.WithLabelValues(string(field), string(verdict.Reason)).Inc()
	board.Show(field, verdict.Message)
	return false
}

// ValidateForm clears every slot, then checks every field in order. It does not stop
// at the first invalid field so all errors become visible together.
func (e *Engine) ValidateForm(board *Board, values Values) bool {
	board.ClearAll()

	valid := true
	for _, field := range FieldOrder {
		if !e.Check(board, field, TrimSpace(values[field])) {
			valid = false
		}
	}
	return valid
}

// RequiredMessage is the generic message for a missing required field
func RequiredMessage(field FieldName) string {
	return fmt.Sprintf("%s is required", field)
}

// textLength counts UTF-16 code units, the unit page scripts measure length in
func textLength(value string) int {
	n := 0
	for _, r := range value {
		if utf16.RuneLen(r) == 2 {
			n += 2
		} else {
			n++
		}
	}
	return n
}
