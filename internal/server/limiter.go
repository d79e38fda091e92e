package server

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DefaultIdleTTL is how long a client's bucket survives without requests.
const DefaultIdleTTL = 10 * time.Minute

// guessLimiter gives every client its own token bucket shared by the guess
// routes. Buckets idle for longer than the TTL are dropped on the next sweep.
type guessLimiter struct {
	cfg RateLimit

	mu        sync.Mutex
	clients   map[string]*clientBucket
	lastSweep time.Time
}

type clientBucket struct {
	tokens   *rate.Limiter
	lastSeen time.Time
}

// newGuessLimiter returns nil, which allows everything, when cfg disables
// limiting or carries unusable numbers.
func newGuessLimiter(cfg RateLimit) *guessLimiter {
	if !cfg.Enabled || cfg.RPS <= 0 || cfg.Burst <= 0 {
		return nil
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = DefaultIdleTTL
	}
	return &guessLimiter{cfg: cfg, clients: make(map[string]*clientBucket)}
}

// take spends one token for client. When the bucket is empty it reports how
// long the client should wait before the next token is available.
func (l *guessLimiter) take(client string, now time.Time) (bool, time.Duration) {
	if l == nil {
		return true, 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.lastSweep.IsZero() {
		l.lastSweep = now
	}
	if now.Sub(l.lastSweep) >= l.cfg.IdleTTL {
		l.sweep(now)
	}

	b, ok := l.clients[client]
	if !ok {
		b = &clientBucket{tokens: rate.NewLimiter(rate.Limit(l.cfg.RPS), l.cfg.Burst)}
		l.clients[client] = b
	}
	b.lastSeen = now

	res := b.tokens.ReserveN(now, 1)
	if delay := res.DelayFrom(now); delay > 0 {
		res.CancelAt(now)
		return false, delay
	}
	return true, 0
}

func (l *guessLimiter) sweep(now time.Time) {
	cutoff := now.Add(-l.cfg.IdleTTL)
	for client, b := range l.clients {
		if b.lastSeen.Before(cutoff) {
			delete(l.clients, client)
		}
	}
	l.lastSweep = now
}

// tracked reports how many clients currently hold a bucket.
func (l *guessLimiter) tracked() int {
	if l == nil {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// retryAfter renders delay as whole seconds for the Retry-After header.
func retryAfter(delay time.Duration) string {
	return strconv.Itoa(int(math.Max(1, math.Ceil(delay.Seconds()))))
}

// clientKey identifies the caller by remote host.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	switch {
	case err == nil && host != "":
		return host
	case err != nil && r.RemoteAddr != "":
		return r.RemoteAddr
	default:
		return "unknown"
	}
}
