// Package projects serves the catalog projects resource over HTTP.
//
// The resource is read by the web frontend: a random sample for the
// listing and a single project for the detail view. An optional import
// endpoint re-reads the archive sheet on demand.
package projects

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/louisbranch/lastro/internal/platform/httpx"
	"github.com/louisbranch/lastro/internal/services/catalog/filter"
	"github.com/louisbranch/lastro/internal/services/catalog/storage"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName = "github.com/louisbranch/lastro/internal/services/catalog/api/projects"

	// DefaultMaxSample caps the count accepted by a sample request.
	DefaultMaxSample = 500

	// RunningMessage is the liveness text served at the root.
	RunningMessage = "Lastro catalog is running!"
)

// Store is the read side of the catalog store.
type Store interface {
	GetProject(ctx context.Context, id int64) (storage.Project, error)
	ListProjects(ctx context.Context) ([]storage.Project, error)
	SampleProjects(ctx context.Context, query storage.SampleQuery) ([]storage.Project, error)
}

// ErrImportRunning is returned by an ImportFunc when another import holds
// the catalog. The endpoint answers 409.
var ErrImportRunning = errors.New("import already running")

// ImportFunc runs one sheet import and returns the plain text report. It
// must not wait for a running import; it returns ErrImportRunning instead.
type ImportFunc func(ctx context.Context) (string, error)

// Service handles the projects resource.
type Service struct {
	store       Store
	maxSample   int
	runImport   ImportFunc
	importToken string
	tracer      trace.Tracer
	logf        func(string, ...any)
}

// Option customizes a Service.
type Option func(*Service)

// WithMaxSample overrides DefaultMaxSample.
func WithMaxSample(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.maxSample = limit
		}
	}
}

// WithImport enables POST /import for callers presenting token as a bearer
// credential. The endpoint stays unregistered when token is blank.
func WithImport(run ImportFunc, token string) Option {
	return func(s *Service) {
		s.runImport = run
		s.importToken = strings.TrimSpace(token)
	}
}

// WithLogf replaces log.Printf.
func WithLogf(logf func(string, ...any)) Option {
	return func(s *Service) {
		if logf != nil {
			s.logf = logf
		}
	}
}

// NewService builds the projects resource over store.
func NewService(store Store, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("catalog store is required")
	}
	s := &Service{
		store:     store,
		maxSample: DefaultMaxSample,
		tracer:    otel.Tracer(tracerName),
		logf:      log.Printf,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// Register mounts the resource routes on mux.
func (s *Service) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /projects", s.handleList)
	mux.HandleFunc("GET /projects/{projectID}", s.handleGet)
	if s.runImport != nil && s.importToken != "" {
		mux.HandleFunc("POST /import", s.handleImport)
	}
}

func (s *Service) handleRoot(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(RunningMessage))
}

// handleList returns every project ordered by id, or a random sample when
// count is given. A filter narrows the sample.
func (s *Service) handleList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	rawCount := strings.TrimSpace(query.Get("count"))
	rawFilter := strings.TrimSpace(query.Get("filter"))

	ctx, span := s.tracer.Start(r.Context(), "projects.List")
	defer span.End()

	if rawCount == "" {
		if rawFilter != "" {
			s.writeInvalid(w, span, "filter requires count")
			return
		}
		records, err := s.store.ListProjects(ctx)
		if err != nil {
			s.writeInternal(w, span, "list projects", err)
			return
		}
		span.SetAttributes(attribute.Int("lastro.projects.returned", len(records)))
		_ = httpx.WriteJSON(w, http.StatusOK, toJSONList(records))
		return
	}

	count, err := strconv.Atoi(rawCount)
	if err != nil || count <= 0 {
		s.writeInvalid(w, span, "count must be a positive integer")
		return
	}
	count = min(count, s.maxSample)
	condition, err := filter.Parse(rawFilter)
	if err != nil {
		s.writeInvalid(w, span, fmt.Sprintf("invalid filter: %v", err))
		return
	}
	span.SetAttributes(
		attribute.Int("lastro.projects.count", count),
		attribute.Bool("lastro.projects.filtered", !condition.Empty()),
	)

	records, err := s.store.SampleProjects(ctx, storage.SampleQuery{
		Count: count,
		Where: condition.Clause,
		Args:  condition.Params,
	})
	if err != nil {
		s.writeInternal(w, span, "sample projects", err)
		return
	}
	span.SetAttributes(attribute.Int("lastro.projects.returned", len(records)))
	_ = httpx.WriteJSON(w, http.StatusOK, toJSONList(records))
}

func (s *Service) handleGet(w http.ResponseWriter, r *http.Request) {
	rawID := strings.TrimSpace(r.PathValue("projectID"))

	ctx, span := s.tracer.Start(r.Context(), "projects.Get", trace.WithAttributes(attribute.String("lastro.project.id", rawID)))
	defer span.End()

	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id <= 0 {
		s.writeNotFound(w, span)
		return
	}
	record, err := s.store.GetProject(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		s.writeNotFound(w, span)
		return
	}
	if err != nil {
		s.writeInternal(w, span, "get project", err)
		return
	}
	_ = httpx.WriteJSON(w, http.StatusOK, toJSON(record))
}

func (s *Service) handleImport(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		w.Header().Set("WWW-Authenticate", "Bearer")
		_ = httpx.WriteJSONError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	ctx, span := s.tracer.Start(r.Context(), "projects.Import")
	defer span.End()

	report, err := s.runImport(ctx)
	if errors.Is(err, ErrImportRunning) {
		span.SetStatus(codes.Error, err.Error())
		_ = httpx.WriteJSONError(w, http.StatusConflict, ErrImportRunning.Error())
		return
	}
	if err != nil {
		s.writeInternal(w, span, "import sheet", err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(report))
}

func (s *Service) authorized(r *http.Request) bool {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return false
	}
	token = strings.TrimSpace(token)
	return subtle.ConstantTimeCompare([]byte(token), []byte(s.importToken)) == 1
}

func (s *Service) writeInvalid(w http.ResponseWriter, span trace.Span, message string) {
	span.SetStatus(codes.Error, message)
	_ = httpx.WriteJSONError(w, http.StatusBadRequest, message)
}

func (s *Service) writeNotFound(w http.ResponseWriter, span trace.Span) {
	span.SetStatus(codes.Error, "not found")
	_ = httpx.WriteJSONError(w, http.StatusNotFound, "project not found")
}

// writeInternal logs err and answers 500 without echoing it.
func (s *Service) writeInternal(w http.ResponseWriter, span trace.Span, op string, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	s.logf("%s: %v", op, err)
	_ = httpx.WriteJSONError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}
