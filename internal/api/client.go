package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmarks/auditdeck/internal/domain"
)

const (
	// DefaultBaseURL is the local development backend.
	DefaultBaseURL = "http://127.0.0.1:8000"

	defaultTimeout = 30 * time.Second
	userAgent      = "auditdeck/1.0"
)

// Client talks to the audit backend. All eleven operations go through a
// single request helper so callers see one uniform error shape. The base
// URL is fixed at construction; the client holds no other state, so
// concurrent calls are independent.
//
// The client does not retry, deduplicate, or time out beyond the
// http.Client timeout. Polling and backoff belong to the caller.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a backend client. An empty baseURL falls back to
// DefaultBaseURL.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// BaseURL returns the resolved backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// APIError is a non-2xx response from the backend. Message is the
// response body text, or a synthesized "HTTP <status>" when the body was
// empty.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// newAPIError builds an APIError from a status code and raw body.
func newAPIError(statusCode int, body []byte) *APIError {
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = fmt.Sprintf("HTTP %d", statusCode)
	}
	return &APIError{StatusCode: statusCode, Message: msg}
}

// Message extracts a display string from any error produced by the
// client. A nil error yields "", an error whose message is somehow empty
// yields "unknown error".
func Message(err error) string {
	if err == nil {
		return ""
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return "unknown error"
}

// do performs a request and returns the raw response body on 2xx.
// A default Content-Type of application/json is applied first; caller
// headers win on conflicting keys.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, headers map[string]string) ([]byte, error) {
	reqURL := fmt.Sprintf("%s%s", c.baseURL, path)
	if query != nil {
		reqURL = fmt.Sprintf("%s?%s", reqURL, query.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	c.logger.Debug("backend request", "method", method, "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("backend request failed", "method", method, "url", reqURL, "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrServerOffline, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("backend request error", "status", resp.StatusCode, "url", reqURL, "body", string(respBody))
		return nil, newAPIError(resp.StatusCode, respBody)
	}

	return respBody, nil
}

// doJSON performs a request with a JSON-encoded body and decodes the
// JSON response into out.
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, reqBody, out any) error {
	var body io.Reader
	if reqBody != nil {
		data, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	respBody, err := c.do(ctx, method, path, query, body, nil)
	if err != nil {
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		c.logger.Error("JSON parse error", "url", path, "error", err, "bodyLen", len(respBody))
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
