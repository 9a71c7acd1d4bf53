package services

import (
	"context"

	"github.com/getmentor/inquiry-api/internal/models"
)

// InquiryServiceInterface defines the interface for inquiry delivery
type InquiryServiceInterface interface {
	Deliver(ctx context.Context, sub *models.Submission) error
}

// Ensure services implement their interfaces
var _ InquiryServiceInterface = (*InquiryService)(nil)
