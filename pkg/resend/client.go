// Package resend provides a lightweight Resend API client for the portfolio
// contact service. Uses raw HTTP calls (no SDK) to minimize external
// dependencies.
package resend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.resend.com"

// Attachment references a file to attach by public URL. Resend fetches the
// path server-side, so no file content travels through this service.
type Attachment struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
}

// SendParams are the fields needed to send one email.
type SendParams struct {
	From        string
	To          []string
	Subject     string
	HTML        string
	Attachments []Attachment
}

// Client is the email-delivery interface consumed by the service layer.
type Client interface {
	// Send delivers one email and returns the provider message ID.
	Send(ctx context.Context, params SendParams) (string, error)
}

// RealClient is the raw HTTP client implementation against the Resend API.
type RealClient struct {
	APIKey     string
	BaseURL    string
	httpClient *http.Client
}

// NewClient creates a RealClient.
func NewClient(apiKey string) *RealClient {
	return &RealClient{
		APIKey:     apiKey,
		BaseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// ErrNotConfigured is returned when no API key is set.
var ErrNotConfigured = errors.New("resend: not configured")

// Ensure RealClient implements Client at compile time.
var _ Client = (*RealClient)(nil)

// Send posts to /emails and returns the message ID from the response.
func (c *RealClient) Send(ctx context.Context, params SendParams) (string, error) {
	if c.APIKey == "" {
		return "", ErrNotConfigured
	}

	body := map[string]any{
		"from":    params.From,
		"to":      params.To,
		"subject": params.Subject,
		"html":    params.HTML,
	}
	if len(params.Attachments) > 0 {
		body["attachments"] = params.Attachments
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.BaseURL+"/emails", bytes.NewReader(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var result struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if result.Message != "" {
			return "", fmt.Errorf("resend send: %s", result.Message)
		}
		return "", fmt.Errorf("resend send: unexpected status %d", resp.StatusCode)
	}
	if result.ID == "" {
		return "", errors.New("resend send: empty message ID in response")
	}
	return result.ID, nil
}
