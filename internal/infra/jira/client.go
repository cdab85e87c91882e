// Package jira implements domain.IssueTracker against the Jira REST API.
package jira

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"golang.org/x/time/rate"

	"github.com/runoshun/jiractl/internal/domain"
)

// ClientConfig configures the HTTP client behavior.
type ClientConfig struct {
	// Transport allows injecting a custom HTTP transport (for tests).
	Transport http.RoundTripper

	BaseURL   string
	Email     string
	Token     string
	AuthType  domain.AuthType
	UserAgent string

	// Timeout for individual requests (default: 30s).
	Timeout time.Duration

	// MaxRetries for requests failing with 429, or 5xx on non-POST (default: 3).
	MaxRetries uint

	// RateLimit in requests per second (default: 10).
	RateLimit float64

	// RateBurst is the maximum burst size (default: 5).
	RateBurst int
}

// ConfigFrom builds a ClientConfig from the application config.
func ConfigFrom(cfg domain.JiraConfig) ClientConfig {
	return ClientConfig{
		BaseURL:   cfg.URL,
		Email:     cfg.Email,
		Token:     cfg.Token,
		AuthType:  cfg.AuthType,
		Timeout:   cfg.APITimeout,
		RateLimit: cfg.RateLimit,
	}
}

// Client is a rate-limited, retrying Jira REST client.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	config      ClientConfig
}

// Ensure Client implements domain.IssueTracker.
var _ domain.IssueTracker = (*Client)(nil)

// NewClient creates a new Client. It fails with ErrNotConfigured when the
// base URL or credentials are missing.
func NewClient(config ClientConfig) (*Client, error) {
	if config.AuthType == "" {
		config.AuthType = domain.AuthBasic
	}
	jc := domain.JiraConfig{URL: config.BaseURL, Email: config.Email, Token: config.Token, AuthType: config.AuthType}
	if !jc.IsConfigured() {
		return nil, domain.ErrNotConfigured
	}
	if config.Timeout == 0 {
		config.Timeout = domain.DefaultAPITimeout
	}
	if config.MaxRetries == 0 {
		config.MaxRetries = 3
	}
	if config.RateLimit == 0 {
		config.RateLimit = domain.DefaultRateLimit
	}
	if config.RateBurst == 0 {
		config.RateBurst = 5
	}
	if config.UserAgent == "" {
		config.UserAgent = "jiractl"
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout:   config.Timeout,
			Transport: config.Transport,
		},
		rateLimiter: rate.NewLimiter(rate.Limit(config.RateLimit), config.RateBurst),
	}, nil
}

// BaseURL returns the configured server URL.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// request is a single REST call.
type request struct {
	body   any
	query  url.Values
	method string
	path   string
}

// do executes req with rate limiting and retry, decoding a JSON response into out.
func (c *Client) do(ctx context.Context, req request, out any) error {
	var payload []byte
	if req.body != nil {
		data, err := json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		payload = data
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 200 * time.Millisecond
	policy.MaxInterval = 2 * time.Second

	body, err := backoff.Retry(ctx, func() ([]byte, error) {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, backoff.Permanent(fmt.Errorf("rate limiter: %w", err))
		}
		respBody, err := c.doOnce(ctx, req, payload)
		if err == nil {
			return respBody, nil
		}
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Retryable() {
			return nil, err
		}
		return nil, backoff.Permanent(err)
	}, backoff.WithBackOff(policy), backoff.WithMaxTries(c.config.MaxRetries+1))
	if err != nil {
		return err
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", req.method, req.path, err)
	}
	return nil
}

// doOnce executes a single request attempt.
func (c *Client) doOnce(ctx context.Context, req request, payload []byte) ([]byte, error) {
	fullURL := c.config.BaseURL + "/" + strings.TrimPrefix(req.path, "/")
	if len(req.query) > 0 {
		fullURL += "?" + req.query.Encode()
	}

	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.method, fullURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	httpReq.Header.Set("User-Agent", c.config.UserAgent)
	httpReq.Header.Set("Accept", "application/json")
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	c.authorize(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.method, req.path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode >= 400 {
		apiErr := newAPIError(resp.StatusCode, body)
		apiErr.Method = req.method
		apiErr.Path = req.path
		return nil, apiErr
	}
	return body, nil
}

func (c *Client) authorize(req *http.Request) {
	switch c.config.AuthType {
	case domain.AuthBearer:
		req.Header.Set("Authorization", "Bearer "+c.config.Token)
	case domain.AuthBasic:
		credentials := base64.StdEncoding.EncodeToString([]byte(c.config.Email + ":" + c.config.Token))
		req.Header.Set("Authorization", "Basic "+credentials)
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, request{method: http.MethodGet, path: path, query: query}, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, request{method: http.MethodPost, path: path, body: body}, out)
}

func (c *Client) put(ctx context.Context, path string, body any) error {
	return c.do(ctx, request{method: http.MethodPut, path: path, body: body}, nil)
}

func (c *Client) delete(ctx context.Context, path string, query url.Values) error {
	return c.do(ctx, request{method: http.MethodDelete, path: path, query: query}, nil)
}
