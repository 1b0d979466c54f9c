package api

import (
	"context"
	"sync"
)

// Group cancels the previous in-flight request for a logical operation when a
// new one begins, so a slow stale response can never land after a newer one.
// Each operation key carries a monotonic sequence number; only the latest
// request for a key stays alive.
type Group struct {
	mu       sync.Mutex
	seq      map[string]uint64
	inflight map[string]context.CancelFunc
}

func NewGroup() *Group {
	return &Group{
		seq:      make(map[string]uint64),
		inflight: make(map[string]context.CancelFunc),
	}
}

// Begin derives a cancellable context for op, cancelling whatever request was
// previously in flight under the same key. The returned CancelFunc must be
// called when the request settles.
func (g *Group) Begin(ctx context.Context, op string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)

	g.mu.Lock()
	if prev, ok := g.inflight[op]; ok {
		prev()
	}
	g.seq[op]++
	mine := g.seq[op]
	g.inflight[op] = cancel
	g.mu.Unlock()

	return ctx, func() {
		g.mu.Lock()
		// A newer Begin may have replaced the entry already; only the latest
		// request removes it.
		if g.seq[op] == mine {
			delete(g.inflight, op)
		}
		g.mu.Unlock()
		cancel()
	}
}
