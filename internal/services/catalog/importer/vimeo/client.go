// Package vimeo resolves video publish dates through the Vimeo API.
package vimeo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/louisbranch/lastro/internal/platform/timeouts"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the public Vimeo API root.
const DefaultBaseURL = "https://api.vimeo.com"

const (
	defaultMaxRetries = 1
	defaultRetryDelay = 61 * time.Second
	// One call per second keeps a full sheet import under the API quota.
	defaultRate = rate.Limit(1)
)

// ErrRateLimited reports that the API kept answering 429 after every retry.
var ErrRateLimited = errors.New("vimeo api rate limit exceeded")

// APIError reports a non-2xx answer other than 429.
type APIError struct {
	VideoID    int64
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e == nil {
		return "vimeo api error"
	}
	if e.Body == "" {
		return fmt.Sprintf("vimeo video %d: status %d", e.VideoID, e.StatusCode)
	}
	return fmt.Sprintf("vimeo video %d: status %d: %s", e.VideoID, e.StatusCode, e.Body)
}

// Client reads video metadata with a bearer token.
type Client struct {
	baseURL    *url.URL
	token      string
	http       *http.Client
	limiter    *rate.Limiter
	maxRetries int
	retryDelay time.Duration
	logf       func(string, ...any)
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL points the client at another API root.
func WithBaseURL(raw string) Option {
	return func(c *Client) {
		if parsed, err := url.Parse(strings.TrimSpace(raw)); err == nil && parsed.Host != "" {
			c.baseURL = parsed
		}
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// WithLimiter replaces the request rate limiter.
func WithLimiter(limiter *rate.Limiter) Option {
	return func(c *Client) {
		if limiter != nil {
			c.limiter = limiter
		}
	}
}

// WithRetry sets how many times a 429 is retried and the wait between tries.
func WithRetry(maxRetries int, delay time.Duration) Option {
	return func(c *Client) {
		if maxRetries >= 0 {
			c.maxRetries = maxRetries
		}
		if delay >= 0 {
			c.retryDelay = delay
		}
	}
}

// WithLogf sets the logger used for rate limit notices.
func WithLogf(logf func(string, ...any)) Option {
	return func(c *Client) {
		if logf != nil {
			c.logf = logf
		}
	}
}

// NewClient builds a client for token.
func NewClient(token string, opts ...Option) (*Client, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, errors.New("vimeo token is required")
	}
	base, _ := url.Parse(DefaultBaseURL)
	c := &Client{
		baseURL:    base,
		token:      token,
		http:       &http.Client{Timeout: timeouts.HTTPRequest},
		limiter:    rate.NewLimiter(defaultRate, 1),
		maxRetries: defaultMaxRetries,
		retryDelay: defaultRetryDelay,
		logf:       func(string, ...any) {},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

type videoPayload struct {
	CreatedTime string `json:"created_time"`
}

// PublishDate returns the video creation date as YYYY-MM-DD.
func (c *Client) PublishDate(ctx context.Context, videoID int64) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if videoID <= 0 {
		return "", fmt.Errorf("video id must be greater than zero")
	}
	endpoint := c.baseURL.JoinPath("videos", strconv.FormatInt(videoID, 10))

	for attempt := 0; ; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", err
		}
		status, body, err := c.get(ctx, endpoint.String())
		if err != nil {
			return "", err
		}
		switch {
		case status == http.StatusOK:
			return parseCreatedTime(videoID, body)
		case status == http.StatusTooManyRequests:
			if attempt >= c.maxRetries {
				return "", ErrRateLimited
			}
			c.logf("vimeo rate limit exceeded, retrying video %d in %v", videoID, c.retryDelay)
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(c.retryDelay):
			}
		default:
			return "", &APIError{VideoID: videoID, StatusCode: status, Body: strings.TrimSpace(string(body))}
		}
	}
}

func (c *Client) get(ctx context.Context, endpoint string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("build vimeo request: %w", err)
	}
	req.Header.Set("Authorization", "bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("vimeo request: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return 0, nil, fmt.Errorf("read vimeo response: %w", err)
	}
	return resp.StatusCode, body, nil
}

func parseCreatedTime(videoID int64, body []byte) (string, error) {
	var payload videoPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("decode vimeo video %d: %w", videoID, err)
	}
	created, err := time.Parse(time.RFC3339, strings.TrimSpace(payload.CreatedTime))
	if err != nil {
		return "", fmt.Errorf("parse vimeo created_time for video %d: %w", videoID, err)
	}
	return created.UTC().Format(time.DateOnly), nil
}
