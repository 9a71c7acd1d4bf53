package validation

import "github.com/getmentor/inquiry-api/internal/models"

// FieldState is the error slot next to one input
type FieldState struct {
	Visible         bool
	Message         string
	ContainerMarked bool
}

// Board holds the visible error state of every field.
// It is not safe for concurrent use; one board belongs to one form.
type Board struct {
	slots map[FieldName]*FieldState
}

// NewBoard returns a board with every slot hidden
func NewBoard() *Board {
	b := &Board{slots: make(map[FieldName]*FieldState, len(FieldOrder))}
	for _, field := range FieldOrder {
		b.slots[field] = &FieldState{}
	}
	return b
}

// Show writes message into the field's slot and marks its container
func (b *Board) Show(field FieldName, message string) {
	slot, ok := b.slots[field]
	if !ok {
		return
	}
	slot.Message = message
	slot.Visible = true
	slot.ContainerMarked = true
}

// Clear hides the field's slot. The last message text is kept, as a hidden
// element keeps its content.
func (b *Board) Clear(field FieldName) {
	slot, ok := b.slots[field]
	if !ok {
		return
	}
	slot.Visible = false
	slot.ContainerMarked = false
}

// ClearAll hides every slot
func (b *Board) ClearAll() {
	for _, field := range FieldOrder {
		b.Clear(field)
	}
}

// HasError reports whether the field currently shows an error
func (b *Board) HasError(field FieldName) bool {
	slot, ok := b.slots[field]
	return ok && slot.Visible
}

// State returns a copy of the field's slot
func (b *Board) State(field FieldName) FieldState {
	if slot, ok := b.slots[field]; ok {
		return *slot
	}
	return FieldState{}
}

// Visible lists the errors currently shown, in field order
func (b *Board) Visible() []models.FieldError {
	var out []models.FieldError
	for _, field := range FieldOrder {
		if slot := b.slots[field]; slot.Visible {
			out = append(out, models.FieldError{Field: string(field), Message: slot.Message})
		}
	}
	return out
}
