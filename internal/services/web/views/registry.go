// Package views tracks the listings mounted by browsers. Each mount owns one
// listing controller; unmounting or evicting a view closes it, which cancels
// its pending fetches.
package views

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/louisbranch/lastro/internal/platform/id"
	"github.com/louisbranch/lastro/internal/services/web/listing"
)

const (
	// DefaultInitialCount is the size of the batch fetched on mount.
	DefaultInitialCount = 6
	// DefaultCapacity bounds how many views stay mounted at once.
	DefaultCapacity = 1024
)

// ErrNotMounted reports a view id that is unknown, unmounted or evicted.
var ErrNotMounted = errors.New("listing view is not mounted")

// View is one mounted listing.
type View struct {
	ID         string
	controller *listing.Controller
	surface    *surface
}

// LoadMore appends one random batch and returns what the browser has not
// seen yet. A view closed during the fetch reports ErrNotMounted.
func (v *View) LoadMore(ctx context.Context) (Update, error) {
	v.controller.AppendRandomBatch(ctx)
	if v.controller.Closed() {
		return Update{}, ErrNotMounted
	}
	return v.surface.drain(v.ID), nil
}

// Pending returns undelivered cards and animations without fetching.
func (v *View) Pending() Update {
	return v.surface.drain(v.ID)
}

// State returns the controller state.
func (v *View) State() listing.State {
	return v.controller.State()
}

// Close ends the view lifetime.
func (v *View) Close() {
	v.controller.Close()
}

// Registry owns mounted views.
type Registry struct {
	fetcher      listing.Fetcher
	initialCount int
	logf         func(string, ...any)
	newID        func() (string, error)
	views        *lru.Cache[string, *View]
}

// Option customizes a Registry.
type Option func(*registryOptions)

type registryOptions struct {
	initialCount int
	capacity     int
	logf         func(string, ...any)
	newID        func() (string, error)
}

// WithInitialCount sets the mount batch size.
func WithInitialCount(count int) Option {
	return func(o *registryOptions) {
		if count > 0 {
			o.initialCount = count
		}
	}
}

// WithCapacity bounds the number of mounted views.
func WithCapacity(capacity int) Option {
	return func(o *registryOptions) {
		if capacity > 0 {
			o.capacity = capacity
		}
	}
}

// WithLogf sets the logger handed to each controller.
func WithLogf(logf func(string, ...any)) Option {
	return func(o *registryOptions) {
		if logf != nil {
			o.logf = logf
		}
	}
}

func withIDGenerator(newID func() (string, error)) Option {
	return func(o *registryOptions) {
		if newID != nil {
			o.newID = newID
		}
	}
}

// NewRegistry builds a registry backed by fetcher.
func NewRegistry(fetcher listing.Fetcher, opts ...Option) (*Registry, error) {
	if fetcher == nil {
		return nil, errors.New("listing fetcher is required")
	}
	options := registryOptions{
		initialCount: DefaultInitialCount,
		capacity:     DefaultCapacity,
		logf:         log.Printf,
		newID:        id.NewID,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	views, err := lru.NewWithEvict(options.capacity, func(_ string, view *View) {
		view.Close()
	})
	if err != nil {
		return nil, fmt.Errorf("create view cache: %w", err)
	}
	return &Registry{
		fetcher:      fetcher,
		initialCount: options.initialCount,
		logf:         options.logf,
		newID:        options.newID,
		views:        views,
	}, nil
}

// Mount fetches the initial batch and registers a new view.
func (r *Registry) Mount(ctx context.Context) (*View, error) {
	records, err := r.fetcher.GetBatch(ctx, r.initialCount)
	if err != nil {
		return nil, fmt.Errorf("fetch initial projects: %w", err)
	}
	viewID, err := r.newID()
	if err != nil {
		return nil, fmt.Errorf("generate view id: %w", err)
	}
	s := newSurface()
	controller := listing.New(records, r.fetcher,
		listing.WithSurface(s),
		listing.WithAnimator(s),
		listing.WithLogf(r.logf),
	)
	view := &View{ID: viewID, controller: controller, surface: s}
	r.views.Add(viewID, view)
	return view, nil
}

// Get returns a mounted view.
func (r *Registry) Get(viewID string) (*View, error) {
	viewID = strings.TrimSpace(viewID)
	if !id.Valid(viewID) {
		return nil, ErrNotMounted
	}
	view, ok := r.views.Get(viewID)
	if !ok {
		return nil, ErrNotMounted
	}
	return view, nil
}

// Unmount closes and forgets a view.
func (r *Registry) Unmount(viewID string) error {
	if !r.views.Remove(strings.TrimSpace(viewID)) {
		return ErrNotMounted
	}
	return nil
}

// Len reports the number of mounted views.
func (r *Registry) Len() int {
	return r.views.Len()
}

// Close unmounts every view.
func (r *Registry) Close() {
	r.views.Purge()
}
