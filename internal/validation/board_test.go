package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoard_ClearOnlyTouchesOneField(t *testing.T) {
	board := NewBoard()
	board.Show(NameField, "bad name")
	board.Show(MessageField, "bad message")

	board.Clear(NameField)

	assert.False(t, board.HasError(NameField))
	assert.False(t, board.State(NameField).ContainerMarked)
	assert.Equal(t, "bad name", board.State(NameField).Message)
	assert.True(t, board.HasError(MessageField))
}

func TestBoard_ClearAll(t *testing.T) {
	board := NewBoard()
	for _, field := range FieldOrder {
		board.Show(field, "x")
	}

	board.ClearAll()
	assert.Empty(t, board.Visible())
}

func TestBoard_IgnoresUnknownField(t *testing.T) {
	board := NewBoard()
	board.Show(FieldName("phone"), "x")

	assert.False(t, board.HasError(FieldName("phone")))
	assert.Equal(t, FieldState{}, board.State(FieldName("phone")))
	assert.Empty(t, board.Visible())
}
