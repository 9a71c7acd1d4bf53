package services_test

import (
	"context"

	"github.com/getmentor/inquiry-api/internal/email"
	"github.com/stretchr/testify/mock"
)

// MockSender is a mock implementation of email.Sender
type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, serviceID, templateID string, vars email.Variables) error {
	args := m.Called(ctx, serviceID, templateID, vars)
	return args.Error(0)
}
