package maintapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/elito/maintdesk/pkg/slogx"
)

// Client is a client for the OCP intervention-management API.
// The zero value is not usable; construct with NewClient.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	// Logger receives one debug record per request/response pair,
	// keyed by the generated request ID. Defaults to slog.Default.
	Logger *slog.Logger
}

// NewClient creates a new API client with a 10 second request timeout.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		Logger: slog.Default(),
	}
}

// url builds a complete URL by appending the path to the base URL.
func (c *Client) url(path string) string {
	return c.BaseURL + path
}

// doJSON performs a JSON request and decodes a JSON response into out.
// bearer is optional; body may be nil for bodiless requests; out may be nil
// when the caller only cares about the status code. Any non-2xx response is
// returned as a typed *APIError.
func (c *Client) doJSON(
	ctx context.Context,
	method, path, bearer string,
	body, out any,
) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	reqID := ulid.Make().String()
	req.Header.Set("X-Request-Id", reqID)

	base := c.Logger
	if base == nil {
		base = slog.Default()
	}
	logger := slogx.FromContext(slogx.WithRequestID(slogx.WithContext(ctx, base), reqID))
	logger.Debug("api request", "method", method, "path", path)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	logger.Debug("api response", "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return parseAPIError(resp.StatusCode, bodyBytes)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(bodyBytes, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
