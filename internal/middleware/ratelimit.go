package middleware

import (
	"sync"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// LimiterStore keeps one token bucket per key and evicts buckets that
// have gone quiet, so the map does not grow with every IP ever seen.
type LimiterStore struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	rate     rate.Limit
	burst    int
	ttl      time.Duration
	done     chan struct{}
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewLimiterStore allows perMinute requests per key with the given
// burst. The cleanup loop runs until Stop is called.
func NewLimiterStore(perMinute, burst int) *LimiterStore {
	if perMinute <= 0 {
		perMinute = 10
	}
	if burst <= 0 {
		burst = 1
	}
	s := &LimiterStore{
		limiters: make(map[string]*limiterEntry),
		rate:     rate.Limit(float64(perMinute) / 60.0),
		burst:    burst,
		ttl:      10 * time.Minute,
		done:     make(chan struct{}),
	}
	go s.cleanupLoop()
	return s
}

// Allow reports whether the key may proceed right now.
func (s *LimiterStore) Allow(key string) bool {
	s.mu.Lock()
	entry, ok := s.limiters[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(s.rate, s.burst)}
		s.limiters[key] = entry
	}
	entry.lastSeen = time.Now()
	s.mu.Unlock()

	return entry.limiter.Allow()
}

func (s *LimiterStore) Stop() {
	close(s.done)
}

func (s *LimiterStore) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-s.ttl)
			s.mu.Lock()
			for key, entry := range s.limiters {
				if entry.lastSeen.Before(cutoff) {
					delete(s.limiters, key)
				}
			}
			s.mu.Unlock()
		}
	}
}

// RateLimit throttles a handler per client IP. Meant for the
// credential endpoints (login, signup, password reset) where retries
// are cheap for an attacker.
func RateLimit(store *LimiterStore, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			key := clientKey(ctx)
			if !store.Allow(key) {
				logger.Warn("rate limit exceeded", zap.String("key", key), zap.String("path", string(ctx.Path())))
				reject(ctx, fasthttp.StatusTooManyRequests, "too many requests, slow down")
				return
			}
			next(ctx)
		}
	}
}

// clientKey buckets by the transport-level peer address. Forwarding
// headers are deliberately ignored: they are client-supplied, and
// honoring them would let a caller mint a fresh bucket per request.
func clientKey(ctx *fasthttp.RequestCtx) string {
	return ctx.RemoteIP().String()
}
