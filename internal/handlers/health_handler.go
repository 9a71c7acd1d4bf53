package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	emailProvider string
}

func NewHealthHandler(emailProvider string) *HealthHandler {
	return &HealthHandler{
		emailProvider: emailProvider,
	}
}

func (h *HealthHandler) Healthcheck(c *gin.Context) {
	c.Header("Cache-Control", "no-cache, no-store, max-age=0, must-revalidate")

	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"email_provider": h.emailProvider,
	})
}
