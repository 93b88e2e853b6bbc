package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/sadhak/backend/internal/infrastructure/resilience"
)

// DefaultBaseURL is where a locally started server listens.
const DefaultBaseURL = "http://127.0.0.1:5001"

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// Health is the body of GET /health.
type Health struct {
	Status        string  `json:"status"`
	Service       string  `json:"service"`
	InstanceID    string  `json:"instance_id"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Vocabulary    int     `json:"vocabulary"`
}

type textResponse struct {
	Response string `json:"response"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Client talks to a running calculator server.
type Client struct {
	resty   *resty.Client
	breaker *resilience.Breaker
	logger  *zap.Logger
}

// Option configures a Client
type Option func(*Client)

// WithTimeout sets the per-attempt timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.resty.SetTimeout(d)
	}
}

// WithRetry configures retry behavior
func WithRetry(maxRetries int, minWait, maxWait time.Duration) Option {
	return func(c *Client) {
		c.resty.SetRetryCount(maxRetries).
			SetRetryWaitTime(minWait).
			SetRetryMaxWaitTime(maxWait)
	}
}

// WithBreaker replaces the default circuit breaker
func WithBreaker(b *resilience.Breaker) Option {
	return func(c *Client) {
		if b != nil {
			c.breaker = b
		}
	}
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a client for the server at baseURL.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	// Pooled transport from the retryable client
	retryClient := retryablehttp.NewClient()
	retryClient.Logger = nil

	restyClient := resty.New().
		SetBaseURL(baseURL).
		SetTransport(retryClient.HTTPClient.Transport).
		SetTimeout(10*time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(200*time.Millisecond).
		SetRetryMaxWaitTime(2*time.Second).
		SetHeader("User-Agent", "sadhak-ask/1.0").
		SetHeader("Accept", "application/json").
		SetJSONMarshaler(sonic.Marshal).
		SetJSONUnmarshaler(sonic.Unmarshal).
		AddRetryCondition(shouldRetry)

	c := &Client{
		resty:  restyClient,
		logger: zap.NewNop(),
	}
	c.breaker = resilience.New("sadhak-api", resilience.Settings{
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts resilience.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to resilience.State) {
			c.logger.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.Stringer("from", from),
				zap.Stringer("to", to),
			)
		},
	})
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// shouldRetry retries transport errors, throttling and server errors.
func shouldRetry(resp *resty.Response, err error) bool {
	if err != nil {
		return !errors.Is(err, context.Canceled)
	}
	code := resp.StatusCode()
	return code == http.StatusTooManyRequests ||
		(code >= 500 && code != http.StatusNotImplemented)
}

// Ask sends a prompt to POST /generate and returns the answer text.
func (c *Client) Ask(ctx context.Context, prompt string) (string, error) {
	var out textResponse
	err := c.do(ctx, http.MethodPost, "/generate", map[string]string{"prompt": prompt}, &out)
	return out.Response, err
}

// Continue extends seed with the server's bigram generator. A length below
// one uses the server default.
func (c *Client) Continue(ctx context.Context, seed string, length int) (string, error) {
	body := map[string]any{"seed": seed}
	if length > 0 {
		body["length"] = length
	}
	var out textResponse
	err := c.do(ctx, http.MethodPost, "/continue", body, &out)
	return out.Response, err
}

// Health fetches GET /health.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	var out Health
	if err := c.do(ctx, http.MethodGet, "/health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	return c.breaker.Execute(ctx, func(ctx context.Context) error {
		var apiErr errorResponse
		req := c.resty.R().
			SetContext(ctx).
			SetResult(result).
			SetError(&apiErr)
		if body != nil {
			req.SetBody(body)
		}

		resp, err := req.Execute(method, path)
		if err != nil {
			return fmt.Errorf("%s %s: %w", method, path, err)
		}
		if !resp.IsError() {
			return nil
		}

		e := &APIError{StatusCode: resp.StatusCode(), Message: apiErr.Error}
		if e.Message == "" {
			e.Message = http.StatusText(e.StatusCode)
		}
		c.logger.Debug("Request rejected",
			zap.String("path", path),
			zap.Int("status", e.StatusCode),
			zap.String("request_id", resp.Header().Get("X-Request-ID")))

		if e.StatusCode < 500 && e.StatusCode != http.StatusTooManyRequests {
			return resilience.Permanent(e)
		}
		return e
	})
}
