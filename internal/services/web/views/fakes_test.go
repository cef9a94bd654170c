package views

import (
	"context"
	"fmt"
	"sync"

	"github.com/louisbranch/lastro/internal/project"
)

type fakeFetcher struct {
	mu      sync.Mutex
	counts  []int
	err     error
	failAt  int
	release chan struct{}
	started chan struct{}
}

func (f *fakeFetcher) GetBatch(ctx context.Context, count int) ([]project.Record, error) {
	f.mu.Lock()
	f.counts = append(f.counts, count)
	call := len(f.counts)
	release, started := f.release, f.started
	f.mu.Unlock()

	if f.err != nil && (f.failAt == 0 || f.failAt == call) {
		return nil, f.err
	}
	if started != nil && call > 1 {
		started <- struct{}{}
	}
	if release != nil && call > 1 {
		select {
		case <-release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	out := make([]project.Record, 0, count)
	for i := range count {
		out = append(out, project.Record{ID: project.ID(fmt.Sprintf("%d", i%3)), Title: fmt.Sprintf("call %d #%d", call, i)})
	}
	return out, nil
}
