// Package translate asks an HTTP translation endpoint for suggestions.
package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/langtable/langtable/pkg/models"
)

const (
	DefaultTimeout = 30 * time.Second
	AutoDetect     = "auto"
)

// ErrRateLimited is returned when the endpoint answers 429
var ErrRateLimited = errors.New("too many requests, please try again later")

// Request is one text to translate. An empty From means auto-detect.
type Request struct {
	Text string `json:"text"`
	From string `json:"from"`
	To   string `json:"to"`
}

// Result is the endpoint's answer
type Result struct {
	Text             string
	DetectedLanguage string
}

type apiResponse struct {
	TranslatedText   string `json:"translatedText"`
	DetectedLanguage string `json:"detectedLanguage"`
	Error            string `json:"error"`
}

// Client posts translation requests as JSON. Requests are never retried.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a client for endpoint. A zero timeout uses DefaultTimeout.
func NewClient(endpoint string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Endpoint returns the configured URL
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Translate sends req and returns the translated text
func (c *Client) Translate(ctx context.Context, req Request) (Result, error) {
	const op = "translate"
	if strings.TrimSpace(req.Text) == "" {
		return Result{}, models.Validation(op, models.ErrEmptyText)
	}
	if req.From == "" {
		req.From = AutoDetect
	}

	body, err := json.Marshal(req)
	if err != nil {
		return Result{}, fmt.Errorf("marshal translation request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return Result{}, models.External(op, fmt.Errorf("create request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return Result{}, models.External(op, fmt.Errorf("API call: %w", err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, models.External(op, fmt.Errorf("read response: %w", err))
	}

	var apiResp apiResponse
	decodeErr := json.Unmarshal(respBody, &apiResp)

	if resp.StatusCode == http.StatusTooManyRequests {
		return Result{}, models.External(op, ErrRateLimited)
	}
	if resp.StatusCode != http.StatusOK {
		msg := strings.TrimSpace(string(respBody))
		if decodeErr == nil && apiResp.Error != "" {
			msg = apiResp.Error
		}
		return Result{}, models.External(op, fmt.Errorf("API error (status %d): %s", resp.StatusCode, msg))
	}
	if decodeErr != nil {
		return Result{}, models.External(op, fmt.Errorf("unmarshal response: %w", decodeErr))
	}
	if apiResp.Error != "" {
		return Result{}, models.External(op, fmt.Errorf("API error: %s", apiResp.Error))
	}
	if apiResp.TranslatedText == "" {
		return Result{}, models.External(op, errors.New("empty response: no translated text"))
	}

	log.Debug().
		Str("from", req.From).
		Str("to", req.To).
		Str("detected", apiResp.DetectedLanguage).
		Dur("elapsed", time.Since(start)).
		Msg("Translation complete")

	return Result{Text: apiResp.TranslatedText, DetectedLanguage: apiResp.DetectedLanguage}, nil
}
