// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// client.go - HTTP client for the remote code-assistance service.
package assist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"
)

// =============================================================================
// CONFIGURATION
// =============================================================================

const (
	// DefaultBaseURL is the base URL of the code-assistance API.
	DefaultBaseURL = "https://api.codemate.ai/v1"

	// DefaultModel is the model requested when none is configured.
	DefaultModel = "codemate-v1"

	// DefaultTimeout bounds a single API request.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxRetries is the number of attempts for transient errors.
	DefaultMaxRetries = 3

	// retryBaseDelay is the base delay for exponential backoff.
	retryBaseDelay = 500 * time.Millisecond

	// retryMaxDelay caps the backoff delay.
	retryMaxDelay = 5 * time.Second

	// MaxResponseSize caps a response body read.
	MaxResponseSize = 4 * 1024 * 1024

	// MaxSourceSize is the largest file the service accepts.
	MaxSourceSize = 1 * 1024 * 1024
)

// languageByExt maps file extensions to the service's language names.
var languageByExt = map[string]string{
	".py":   "python",
	".js":   "javascript",
	".ts":   "typescript",
	".go":   "go",
	".java": "java",
	".c":    "c",
	".h":    "c",
	".cpp":  "cpp",
	".hpp":  "cpp",
}

// DetectLanguage maps a filename to a supported language name.
func DetectLanguage(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	lang, ok := languageByExt[ext]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedLanguage, ext)
	}
	return lang, nil
}

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrNotConfigured indicates no API key is set.
	ErrNotConfigured = errors.New("code assistance not configured (set NLTERM_ASSIST_KEY)")

	// ErrAuthFailed indicates the API rejected the key.
	ErrAuthFailed = errors.New("authentication failed")

	// ErrRateLimited indicates too many requests.
	ErrRateLimited = errors.New("rate limited")

	// ErrUnsupportedLanguage indicates a file type the service does
	// not handle.
	ErrUnsupportedLanguage = errors.New("unsupported language")

	// ErrSourceTooLarge indicates the file exceeds MaxSourceSize.
	ErrSourceTooLarge = errors.New("file too large for analysis")
)

// APIError is a non-OK response from the service.
type APIError struct {
	Code    string
	Message string
	Status  int
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("assist error [%s] (HTTP %d): %s", e.Code, e.Status, e.Message)
	}
	return fmt.Sprintf("assist error (HTTP %d): %s", e.Status, e.Message)
}

// apiErrorResponse is the service's error envelope.
type apiErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// =============================================================================
// REQUEST / RESPONSE TYPES
// =============================================================================

type analyzeRequest struct {
	Language     string `json:"language"`
	Code         string `json:"code"`
	AnalysisType string `json:"analysis_type"`
	Model        string `json:"model"`
}

// Issue is a single finding from code analysis.
type Issue struct {
	Severity string `json:"severity"`
	Line     int    `json:"line"`
	Message  string `json:"message"`
}

// AnalysisResult is the service's answer to an analyze request.
type AnalysisResult struct {
	Summary     string   `json:"summary"`
	Issues      []Issue  `json:"issues"`
	Suggestions []string `json:"suggestions"`
}

type generateRequest struct {
	Prompt   string `json:"prompt"`
	Language string `json:"language"`
	Context  string `json:"context,omitempty"`
	Model    string `json:"model"`
}

// GenerationResult is the service's answer to a generate request.
type GenerationResult struct {
	Code        string `json:"generated_code"`
	Explanation string `json:"explanation"`
}

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the code-assistance API. The zero key form is
// valid; requests then fail with ErrNotConfigured.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	maxRetries int
	httpClient *http.Client
}

// NewClient creates a client for the given API key.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     strings.TrimSpace(apiKey),
		baseURL:    DefaultBaseURL,
		model:      DefaultModel,
		maxRetries: DefaultMaxRetries,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// WithBaseURL overrides the API base URL.
func (c *Client) WithBaseURL(url string) *Client {
	c.baseURL = strings.TrimRight(url, "/")
	return c
}

// WithModel overrides the requested model.
func (c *Client) WithModel(model string) *Client {
	if model != "" {
		c.model = model
	}
	return c
}

// WithTimeout overrides the per-request timeout.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.httpClient.Timeout = timeout
	return c
}

// IsConfigured reports whether an API key is set.
func (c *Client) IsConfigured() bool {
	return c.apiKey != ""
}

// Analyze submits source code for analysis. analysisType narrows the
// review ("security", "performance", "style"); empty means
// comprehensive.
func (c *Client) Analyze(ctx context.Context, language, source, analysisType string) (*AnalysisResult, error) {
	if len(source) > MaxSourceSize {
		return nil, ErrSourceTooLarge
	}
	if analysisType == "" {
		analysisType = "comprehensive"
	}
	req := analyzeRequest{
		Language:     language,
		Code:         source,
		AnalysisType: analysisType,
		Model:        c.model,
	}
	var result AnalysisResult
	if err := c.post(ctx, "/analyze", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Generate asks the service to produce code for a prompt.
func (c *Client) Generate(ctx context.Context, prompt, language string) (*GenerationResult, error) {
	req := generateRequest{
		Prompt:   prompt,
		Language: language,
		Model:    c.model,
	}
	var result GenerationResult
	if err := c.post(ctx, "/generate", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// =============================================================================
// TRANSPORT
// =============================================================================

// post sends one JSON request with retry on transient failures and
// decodes the response into out.
func (c *Client) post(ctx context.Context, path string, payload, out interface{}) error {
	if !c.IsConfigured() {
		return ErrNotConfigured
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff(attempt)):
			}
		}

		err := c.doRequest(ctx, c.baseURL+path, body, out)
		if err == nil {
			return nil
		}
		if !isRetryable(err) {
			return err
		}
		lastErr = err
	}
	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

// doRequest performs a single HTTP round trip.
func (c *Client) doRequest(ctx context.Context, url string, body []byte, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "nlterm/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := readResponse(resp)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return handleErrorResponse(resp.StatusCode, respBody)
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

// readResponse reads the body under MaxResponseSize.
func readResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if int64(len(body)) == MaxResponseSize {
		return nil, fmt.Errorf("response exceeded %d bytes", MaxResponseSize)
	}
	return body, nil
}

// handleErrorResponse maps a non-OK status to a typed error.
func handleErrorResponse(status int, body []byte) error {
	var apiErr apiErrorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
		switch status {
		case http.StatusUnauthorized:
			return fmt.Errorf("%w: %s", ErrAuthFailed, apiErr.Error.Message)
		case http.StatusTooManyRequests:
			return fmt.Errorf("%w: %s", ErrRateLimited, apiErr.Error.Message)
		default:
			return &APIError{Code: apiErr.Error.Code, Message: apiErr.Error.Message, Status: status}
		}
	}

	switch status {
	case http.StatusUnauthorized:
		return ErrAuthFailed
	case http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		return &APIError{Message: strings.TrimSpace(string(body)), Status: status}
	}
}

// isRetryable reports whether an error is worth another attempt.
func isRetryable(err error) bool {
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status >= 500 && apiErr.Status < 600
	}
	return false
}

// backoff returns the delay before the given retry attempt.
func backoff(attempt int) time.Duration {
	delay := retryBaseDelay * time.Duration(1<<uint(attempt-1))
	if delay > retryMaxDelay {
		delay = retryMaxDelay
	}
	return delay
}
