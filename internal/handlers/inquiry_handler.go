package handlers

import (
	"errors"
	"net/http"

	"github.com/getmentor/inquiry-api/internal/inquiry"
	"github.com/getmentor/inquiry-api/internal/models"
	"github.com/getmentor/inquiry-api/internal/services"
	"github.com/getmentor/inquiry-api/internal/validation"
	"github.com/getmentor/inquiry-api/pkg/metrics"
	"github.com/gin-gonic/gin"
)

// InquiryHandler serves the inquiry form endpoints
type InquiryHandler struct {
	engine  *validation.Engine
	service services.InquiryServiceInterface
}

// NewInquiryHandler creates a new inquiry handler
func NewInquiryHandler(engine *validation.Engine, service services.InquiryServiceInterface) *InquiryHandler {
	return &InquiryHandler{engine: engine, service: service}
}

// Rules handles GET /api/v1/inquiry/rules
func (h *InquiryHandler) Rules(c *gin.Context) {
	c.Header("Cache-Control", "public, max-age=3600")
	c.JSON(http.StatusOK, gin.H{"fields": validation.Describe()})
}

// ValidateField handles POST /api/v1/inquiry/validate-field
func (h *InquiryHandler) ValidateField(c *gin.Context) {
	var req models.FieldValidationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if details := ParseValidationErrors(err); len(details) > 0 {
			respondErrorWithDetails(c, http.StatusBadRequest, "Validation failed", details, err)
			return
		}
		respondError(c, http.StatusBadRequest, "Invalid request", err)
		return
	}

	field := validation.FieldName(req.Field)
	verdict, err := h.engine.Evaluate(field, validation.TrimSpace(req.Value))
	if err != nil {
		respondError(c, statusFor(err), "Unknown field", err)
		return
	}
	if !verdict.Valid {
		metrics.FieldValidationFailures.WithLabelValues(string(field), string(verdict.Reason)).Inc()
	}

	c.JSON(http.StatusOK, models.FieldValidationResponse{
		Field:   string(field),
		Valid:   verdict.Valid,
		Reason:  string(verdict.Reason),
		Message: verdict.Message,
	})
}

// Submit handles POST /api/v1/inquiry
func (h *InquiryHandler) Submit(c *gin.Context) {
	var req models.InquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request", err)
		return
	}

	form := inquiry.NewForm(h.engine, h.service)
	form.Fill(req)

	sub, err := form.Submit(c.Request.Context())
	if err != nil {
		if errors.Is(err, inquiry.ErrValidationFailed) {
			respondErrorWithDetails(c, http.StatusBadRequest, "Validation failed", form.Errors(), err)
			return
		}
		attachError(c, err)
		c.JSON(statusFor(err), models.InquiryResponse{
			Success: false,
			Error:   inquiry.ErrorNotice,
		})
		return
	}

	c.JSON(http.StatusOK, models.InquiryResponse{
		Success:      true,
		SubmissionID: sub.ID,
	})
}
