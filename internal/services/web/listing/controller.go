package listing

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/louisbranch/lastro/internal/project"
)

// BatchSize is the number of records requested by each load-more.
const BatchSize = 99

// Fetcher returns a random sample of records.
type Fetcher interface {
	GetBatch(ctx context.Context, count int) ([]project.Record, error)
}

// State is a snapshot of the listing.
type State struct {
	Records       project.Collection
	PreviousCount int
	IsLoadingMore bool
}

// NewRange returns the half-open index range of records appended by the
// latest batch.
func (s State) NewRange() (from, to int) {
	return s.PreviousCount, len(s.Records)
}

type signature struct {
	length        int
	previousCount int
}

// Controller drives one listing for the lifetime of its mount.
type Controller struct {
	fetcher  Fetcher
	surface  Surface
	animator Animator
	logf     func(string, ...any)

	lifetime context.Context
	cancel   context.CancelFunc

	mu            sync.Mutex
	records       project.Collection
	previousCount int
	inFlight      int
	closed        bool
	detected      signature
	hasDetected   bool
}

// Option customizes a Controller.
type Option func(*Controller)

// WithSurface sets the surface the listing renders into.
func WithSurface(surface Surface) Option {
	return func(c *Controller) {
		if surface != nil {
			c.surface = surface
		}
	}
}

// WithAnimator sets the animator that receives new elements.
func WithAnimator(animator Animator) Option {
	return func(c *Controller) {
		if animator != nil {
			c.animator = animator
		}
	}
}

// WithLogf sets the logger for swallowed fetch errors.
func WithLogf(logf func(string, ...any)) Option {
	return func(c *Controller) {
		if logf != nil {
			c.logf = logf
		}
	}
}

// New creates a controller holding the initial batch supplied by the
// parent. The initial records count as already displayed.
func New(initial []project.Record, fetcher Fetcher, opts ...Option) *Controller {
	lifetime, cancel := context.WithCancel(context.Background())
	records := project.Collection(initial).Clone()
	c := &Controller{
		fetcher:       fetcher,
		surface:       noopSurface{},
		animator:      noopAnimator{},
		logf:          log.Printf,
		lifetime:      lifetime,
		cancel:        cancel,
		records:       records,
		previousCount: len(records),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	c.mu.Lock()
	c.surface.Render(c.stateLocked())
	c.detectLocked()
	c.mu.Unlock()
	return c
}

// State returns a snapshot of the listing. The snapshot owns its records.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

// AppendRandomBatch fetches BatchSize records and appends them. Failures are
// logged and leave the records untouched. A result that arrives after Close
// is discarded.
func (c *Controller) AppendRandomBatch(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.inFlight++
	c.surface.Render(c.stateLocked())
	c.mu.Unlock()

	fetchCtx, stop := c.fetchContext(ctx)
	batch, err := c.fetch(fetchCtx)
	stop()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight--
	if c.closed {
		if err == nil {
			c.logf("listing closed, discarding batch of %d records", len(batch))
		}
		return
	}
	if err != nil {
		c.logf("load more projects: %v", err)
		c.surface.Render(c.stateLocked())
		return
	}
	c.previousCount = len(c.records)
	c.records = c.records.Append(batch)
	c.surface.Render(c.stateLocked())
	c.detectLocked()
}

// DetectNewlyAppended animates the records in [PreviousCount, len(Records))
// that are present on the surface. Calling it again without an intervening
// change is a no-op.
func (c *Controller) DetectNewlyAppended() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.detectLocked()
}

// Close ends the controller lifetime and cancels pending fetches. It is safe
// to call more than once.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.cancel()
}

// Closed reports whether Close has been called.
func (c *Controller) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *Controller) fetch(ctx context.Context) ([]project.Record, error) {
	if c.fetcher == nil {
		return nil, errors.New("listing fetcher is not configured")
	}
	return c.fetcher.GetBatch(ctx, BatchSize)
}

// fetchContext is cancelled by either the caller or the controller lifetime.
func (c *Controller) fetchContext(ctx context.Context) (context.Context, context.CancelFunc) {
	merged, cancel := context.WithCancel(ctx)
	stopAfter := context.AfterFunc(c.lifetime, cancel)
	return merged, func() {
		stopAfter()
		cancel()
	}
}

func (c *Controller) stateLocked() State {
	return State{
		Records:       c.records.Clone(),
		PreviousCount: c.previousCount,
		IsLoadingMore: c.inFlight > 0,
	}
}

func (c *Controller) detectLocked() {
	current := signature{length: len(c.records), previousCount: c.previousCount}
	if c.hasDetected && current == c.detected {
		return
	}
	c.detected = current
	c.hasDetected = true

	if current.length <= current.previousCount {
		return
	}
	var elements []Element
	for _, key := range c.records.Keys(current.previousCount, current.length) {
		if el, ok := c.surface.Lookup(key); ok {
			elements = append(elements, el)
		}
	}
	if len(elements) == 0 {
		return
	}
	c.animator.Animate(elements, Entrance)
}
