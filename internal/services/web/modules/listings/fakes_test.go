package listings

import (
	"context"
	"fmt"
	"sync"

	"github.com/louisbranch/lastro/internal/project"
)

type fakeFetcher struct {
	mu     sync.Mutex
	counts []int
	err    error
	failAt int
}

func (f *fakeFetcher) GetBatch(_ context.Context, count int) ([]project.Record, error) {
	f.mu.Lock()
	f.counts = append(f.counts, count)
	call := len(f.counts)
	f.mu.Unlock()

	if f.err != nil && (f.failAt == 0 || f.failAt == call) {
		return nil, f.err
	}
	out := make([]project.Record, 0, count)
	for i := range count {
		out = append(out, project.Record{ID: project.ID(fmt.Sprintf("p%d", i)), Title: fmt.Sprintf("call %d #%d", call, i)})
	}
	return out, nil
}
