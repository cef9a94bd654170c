package listing

import (
	"context"
	"fmt"
	"sync"

	"github.com/louisbranch/lastro/internal/project"
)

type fakeFetcher struct {
	mu      sync.Mutex
	err     error
	size    int
	ids     []project.ID
	calls   int
	counts  []int
	release chan struct{}
	started chan struct{}
}

func (f *fakeFetcher) GetBatch(ctx context.Context, count int) ([]project.Record, error) {
	f.mu.Lock()
	f.calls++
	f.counts = append(f.counts, count)
	release := f.release
	started := f.started
	f.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if release != nil {
		select {
		case <-release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	size := count
	if f.size > 0 {
		size = f.size
	}
	if f.ids != nil {
		out := make([]project.Record, 0, len(f.ids))
		for _, id := range f.ids {
			out = append(out, project.Record{ID: id})
		}
		return out, nil
	}
	return makeRecords("batch", size), nil
}

func makeRecords(prefix string, n int) []project.Record {
	out := make([]project.Record, 0, n)
	for i := range n {
		out = append(out, project.Record{ID: project.ID(fmt.Sprintf("%s-%d", prefix, i)), Title: fmt.Sprintf("Project %d", i)})
	}
	return out
}

// fakeSurface marks every rendered key as addressable, like a DOM that
// mounted all cards.
type fakeSurface struct {
	mu       sync.Mutex
	renders  []State
	rendered map[project.Key]bool
	hidden   bool
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{rendered: map[project.Key]bool{}}
}

func (s *fakeSurface) Render(state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.renders = append(s.renders, state)
	for i := range state.Records {
		s.rendered[state.Records.Key(i)] = true
	}
}

func (s *fakeSurface) Lookup(key project.Key) (Element, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hidden || !s.rendered[key] {
		return Element{}, false
	}
	return Element{Key: key, DOMID: key.DOMID()}, true
}

func (s *fakeSurface) lastRender() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renders[len(s.renders)-1]
}

type fakeAnimator struct {
	mu      sync.Mutex
	batches [][]Element
	anims   []Animation
}

func (a *fakeAnimator) Animate(elements []Element, animation Animation) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.batches = append(a.batches, elements)
	a.anims = append(a.anims, animation)
}

func (a *fakeAnimator) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.batches)
}

type logRecorder struct {
	mu    sync.Mutex
	lines []string
}

func (l *logRecorder) logf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

func (l *logRecorder) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.lines)
}
