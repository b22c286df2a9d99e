package metrics

import (
	"sync/atomic"
	"time"
)

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Add(n uint64) {
	atomic.AddUint64(&c.value, n)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// Store aggregates the service-level counters exposed on /healthz.
type Store struct {
	OrdersPlaced  Counter
	ClaimsFiled   Counter
	StatusUpdates Counter
	RequestsTotal Counter
}

func NewStore() *Store {
	return &Store{}
}

// Snapshot returns the current counter values keyed by metric name.
func (s *Store) Snapshot() map[string]uint64 {
	return map[string]uint64{
		"orders_placed":  s.OrdersPlaced.Load(),
		"claims_filed":   s.ClaimsFiled.Load(),
		"status_updates": s.StatusUpdates.Load(),
		"requests_total": s.RequestsTotal.Load(),
	}
}
