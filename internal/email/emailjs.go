package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/getmentor/inquiry-api/config"
	"github.com/getmentor/inquiry-api/pkg/httpclient"
	"github.com/getmentor/inquiry-api/pkg/logger"
	"go.uber.org/zap"
)

// maxErrorBody caps how much of a failed response is kept in the error
const maxErrorBody = 512

type emailJSPayload struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	AccessToken    string            `json:"accessToken,omitempty"`
	TemplateParams map[string]string `json:"template_params"`
}

// EmailJSSender sends through the EmailJS REST API. The public key identifies the
// account; the optional private key is required when the account enforces it for
// non-browser callers.
type EmailJSSender struct {
	apiURL     string
	publicKey  string
	privateKey string
	httpClient httpclient.Client
}

// NewEmailJSSender creates an EmailJS sender. It is created once at startup.
func NewEmailJSSender(cfg config.EmailJSConfig, httpClient httpclient.Client) *EmailJSSender {
	return &EmailJSSender{
		apiURL:     cfg.APIURL,
		publicKey:  cfg.PublicKey,
		privateKey: cfg.PrivateKey,
		httpClient: httpClient,
	}
}

// Send posts one template send. Any non-2xx answer is a failure.
func (s *EmailJSSender) Send(ctx context.Context, serviceID, templateID string, vars Variables) error {
	body, err := json.Marshal(emailJSPayload{
		ServiceID:      serviceID,
		TemplateID:     templateID,
		UserID:         s.publicKey,
		AccessToken:    s.privateKey,
		TemplateParams: vars.Map(),
	})
	if err != nil {
		return fmt.Errorf("emailjs: failed to encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("emailjs: failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	logger.Debug("Sending EmailJS request",
		zap.String("service_id", serviceID),
		zap.String("template", templateID))

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("emailjs: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("emailjs: status %d: %s", resp.StatusCode, strings.TrimSpace(string(text)))
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
