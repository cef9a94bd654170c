// Package requests is the frontend's request layer: it reads project
// collections and project details from the catalog API.
package requests

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

	"github.com/louisbranch/lastro/internal/platform/timeouts"
	"github.com/louisbranch/lastro/internal/project"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName      = "github.com/louisbranch/lastro/internal/services/web/requests"
	maxResponseSize = 16 << 20
	projectsPath    = "projects"
)

// Client calls the catalog projects resource.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	tracer  trace.Tracer
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// NewClient builds a client for the catalog rooted at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("catalog base url is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse catalog base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("catalog base url %q must be http or https", baseURL)
	}
	if !strings.HasSuffix(parsed.Path, "/") {
		parsed.Path += "/"
	}
	c := &Client{
		baseURL: parsed,
		http:    &http.Client{Timeout: timeouts.HTTPRequest},
		tracer:  otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// GetBatch fetches a best-effort random sample of count records.
func (c *Client) GetBatch(ctx context.Context, count int) ([]project.Record, error) {
	if count <= 0 {
		return nil, fmt.Errorf("batch count must be greater than zero, got %d", count)
	}
	endpoint := c.resolve(projectsPath)
	query := endpoint.Query()
	query.Set("count", strconv.Itoa(count))
	endpoint.RawQuery = query.Encode()

	ctx, span := c.tracer.Start(ctx, "requests.GetBatch", trace.WithAttributes(attribute.Int("lastro.batch.count", count)))
	defer span.End()

	var records []project.Record
	if _, err := c.getJSON(ctx, "get batch", endpoint, &records); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if records == nil {
		records = []project.Record{}
	}
	span.SetAttributes(attribute.Int("lastro.batch.received", len(records)))
	return records, nil
}

// GetByID fetches one record's full detail.
func (c *Client) GetByID(ctx context.Context, id project.ID) (project.Record, error) {
	trimmed := project.ID(strings.TrimSpace(string(id)))
	if trimmed == "" {
		return project.Record{}, &NotFoundError{ID: id}
	}
	endpoint := c.baseURL.ResolveReference(&url.URL{
		Path:    projectsPath + "/" + string(trimmed),
		RawPath: projectsPath + "/" + url.PathEscape(string(trimmed)),
	})

	ctx, span := c.tracer.Start(ctx, "requests.GetByID", trace.WithAttributes(attribute.String("lastro.project.id", string(trimmed))))
	defer span.End()

	var record project.Record
	status, err := c.getJSON(ctx, "get project", endpoint, &record)
	if status == http.StatusNotFound {
		span.SetStatus(codes.Error, "not found")
		return project.Record{}, &NotFoundError{ID: trimmed}
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return project.Record{}, err
	}
	return record, nil
}

func (c *Client) resolve(path string) *url.URL {
	return c.baseURL.ResolveReference(&url.URL{Path: path})
}

func (c *Client) getJSON(ctx context.Context, op string, endpoint *url.URL, target any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return 0, &TransportError{Op: op, URL: endpoint.String(), Err: err}
	}
	req.Header.Set("Accept", "application/json")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, &TransportError{Op: op, URL: endpoint.String(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseSize))
		return resp.StatusCode, &TransportError{Op: op, URL: endpoint.String(), StatusCode: resp.StatusCode}
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(target); err != nil {
		return resp.StatusCode, &TransportError{Op: op, URL: endpoint.String(), StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return resp.StatusCode, nil
}
