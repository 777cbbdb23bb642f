package search

import (
	"context"
	"sync"
	"time"
)

// Debouncer serializes rapid search input per key (one key per browser
// session). Every submitted query gets a monotonically increasing
// generation; a query only reaches the network after the delay passes
// with no newer query behind it, and a response is dropped when a newer
// generation exists by the time it lands.
type Debouncer struct {
	delay time.Duration

	mu   sync.Mutex
	gens map[string]uint64
}

func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{
		delay: delay,
		gens:  map[string]uint64{},
	}
}

func (d *Debouncer) next(key string) uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gens[key]++
	return d.gens[key]
}

func (d *Debouncer) latest(key string) uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gens[key]
}

// Do runs fetch for the query unless a newer query for the same key
// supersedes it. Superseded calls return ok=false without touching the
// network; stale responses return ok=false with the result discarded.
func (d *Debouncer) Do(ctx context.Context, key string, fetch func(context.Context) (any, error)) (any, bool, error) {
	gen := d.next(key)

	select {
	case <-ctx.Done():
		return nil, false, ctx.Err()
	case <-time.After(d.delay):
	}

	if d.latest(key) != gen {
		return nil, false, nil
	}

	res, err := fetch(ctx)

	if d.latest(key) != gen {
		return nil, false, nil
	}
	if err != nil {
		return nil, true, err
	}
	return res, true, nil
}

// Delay reports the configured quiet interval.
func (d *Debouncer) Delay() time.Duration { return d.delay }
