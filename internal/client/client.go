package client

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

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nhle/notifyview/internal/model"
)

// NotificationsPath is the endpoint serving the notification list.
const NotificationsPath = "/api/v1/notifications"

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 8 << 20

// ErrUnexpectedShape is returned when a 200 response is not an object
// carrying a "result" array.
var ErrUnexpectedShape = errors.New("unexpected response shape")

// StatusError is returned for any non-200 response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d", e.Code)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
}

// Client is a thin HTTP client for the notifications service. It performs
// exactly one request per call; there is no retry or caching.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *zap.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithToken sends the token as a Bearer Authorization header.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New creates a client for the service at cfg.BaseURL.
func New(cfg model.APIConfig, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = model.DefaultTimeout
	}

	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the service root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListNotifications fetches every notification record in a single GET.
// Transport failures, non-200 statuses and malformed bodies are all
// returned as errors; a 200 with an empty result array is a success.
func (c *Client) ListNotifications(ctx context.Context) ([]model.Notification, error) {
	requestID := uuid.NewString()
	log := c.logger.With(zap.String("request_id", requestID))
	url := c.baseURL + NotificationsPath

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	log.Debug("fetching notifications", zap.String("url", url))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("request failed", zap.Error(err))
		return nil, fmt.Errorf("executing request GET %s: %w", NotificationsPath, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		log.Warn("reading response failed", zap.Error(err))
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	log = log.With(
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode != http.StatusOK {
		log.Warn("unexpected status")
		return nil, &StatusError{
			Code: resp.StatusCode,
			Body: summarize(body),
		}
	}

	notifications, err := decodeList(body)
	if err != nil {
		log.Warn("malformed response", zap.Error(err))
		return nil, err
	}

	log.Info("notifications loaded", zap.Int("count", len(notifications)))
	return notifications, nil
}

// decodeList extracts the "result" array from a response body.
func decodeList(body []byte) ([]model.Notification, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: body is not a JSON object: %v", ErrUnexpectedShape, err)
	}

	raw, ok := envelope["result"]
	if !ok {
		return nil, fmt.Errorf("%w: missing result", ErrUnexpectedShape)
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, fmt.Errorf("%w: result is not an array", ErrUnexpectedShape)
	}

	notifications := []model.Notification{}
	if err := json.Unmarshal(raw, &notifications); err != nil {
		return nil, fmt.Errorf("%w: decoding result: %v", ErrUnexpectedShape, err)
	}
	return notifications, nil
}

// summarize trims a response body for inclusion in an error message.
func summarize(body []byte) string {
	s := strings.TrimSpace(string(body))
	const limit = 200
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}
