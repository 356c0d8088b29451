package ratelimiter

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type Config struct {
	RequestsPerTimeFrame int
	TimeFrame            time.Duration
	Enabled              bool
}

// Limiter is a per-client token bucket. A client may burst up to
// RequestsPerTimeFrame requests and then refills at that many per TimeFrame.
type Limiter struct {
	mu      sync.Mutex
	clients map[string]*client
	limit   rate.Limit
	burst   int
	idleTTL time.Duration
	clock   func() time.Time
}

type client struct {
	limiter *rate.Limiter
	seen    time.Time
}

func New(cfg Config) *Limiter {
	frame := cfg.TimeFrame
	if frame <= 0 {
		frame = time.Second
	}
	n := max(cfg.RequestsPerTimeFrame, 1)
	return &Limiter{
		clients: make(map[string]*client),
		limit:   rate.Limit(float64(n) / frame.Seconds()),
		burst:   n,
		idleTTL: 3 * frame,
		clock:   time.Now,
	}
}

// Allow reports whether key may proceed, and if not how long until it may.
func (l *Limiter) Allow(key string) (bool, time.Duration) {
	now := l.clock()

	l.mu.Lock()
	c, ok := l.clients[key]
	if !ok {
		c = &client{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[key] = c
	}
	c.seen = now
	l.mu.Unlock()

	r := c.limiter.ReserveN(now, 1)
	if !r.OK() {
		return false, time.Second
	}
	if d := r.DelayFrom(now); d > 0 {
		r.CancelAt(now)
		return false, d
	}
	return true, 0
}

// Cleanup drops clients idle longer than three time frames. It is called
// from a ticker owned by the server.
func (l *Limiter) Cleanup() int {
	cutoff := l.clock().Add(-l.idleTTL)
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for k, c := range l.clients {
		if c.seen.Before(cutoff) {
			delete(l.clients, k)
			n++
		}
	}
	return n
}
