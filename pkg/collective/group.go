package collective

import (
	"context"
	"reflect"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// A Group is an in-process collective connecting a fixed number of members,
// one per goroutine. Exchange acts as a barrier: each call parks the caller
// until every member of the current round has contributed.
type Group struct {
	size    int
	metrics *metrics

	mu  sync.Mutex
	cur *round
}

// A round collects one contribution per member. It completes when the last
// member arrives.
type round struct {
	parts       []any
	contributed []bool
	remaining   int
	done        chan struct{}
}

// NewGroup returns a Group of the given size. Metrics are registered against
// reg; pass nil to skip registration.
func NewGroup(size int, reg prometheus.Registerer) *Group {
	if size < 1 {
		panic("collective: group size must be at least 1")
	}
	return &Group{
		size:    size,
		metrics: newMetrics(reg),
	}
}

// Single returns a Collective for a group of one, for callers running
// without partitioning.
func Single() Collective {
	return NewGroup(1, nil).Member(0)
}

// Member returns the Collective handle for one rank of the group.
func (g *Group) Member(rank int) Collective {
	if rank < 0 || rank >= g.size {
		panic("collective: rank out of range")
	}
	return &member{group: g, rank: rank}
}

func (g *Group) exchange(ctx context.Context, rank int, local any) ([]any, error) {
	g.mu.Lock()
	if g.cur == nil {
		g.cur = &round{
			parts:       make([]any, g.size),
			contributed: make([]bool, g.size),
			remaining:   g.size,
			done:        make(chan struct{}),
		}
	}
	r := g.cur
	if r.contributed[rank] {
		g.mu.Unlock()
		return nil, errors.Errorf("collective: rank %d contributed twice to one round; call sequences have diverged", rank)
	}
	r.parts[rank] = local
	r.contributed[rank] = true
	r.remaining--
	if r.remaining == 0 {
		g.cur = nil
		close(r.done)
	}
	g.mu.Unlock()

	start := time.Now()
	select {
	case <-r.done:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	g.metrics.exchanges.Inc()
	g.metrics.elements.Add(float64(sequenceLen(local)))
	g.metrics.waitDuration.Observe(time.Since(start).Seconds())
	return r.parts, nil
}

func sequenceLen(v any) int {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice {
		return rv.Len()
	}
	return 1
}

type member struct {
	group *Group
	rank  int
}

func (m *member) Rank() int { return m.rank }

func (m *member) Size() int { return m.group.size }

func (m *member) Exchange(ctx context.Context, local any) ([]any, error) {
	return m.group.exchange(ctx, m.rank, local)
}
