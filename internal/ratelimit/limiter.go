package ratelimit

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	sweepInterval = time.Minute
	clientTTL     = 5 * time.Minute
)

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter is a per-key token-bucket limiter with an owned sweep goroutine.
// It is constructed at process start and stopped on shutdown; nothing here
// is package-level state.
type Limiter struct {
	mu      sync.Mutex
	clients map[string]*client
	rps     rate.Limit
	burst   int
	done    chan struct{}
	once    sync.Once
}

func New(rps float64, burst int) *Limiter {
	return &Limiter{
		clients: make(map[string]*client),
		rps:     rate.Limit(rps),
		burst:   burst,
		done:    make(chan struct{}),
	}
}

// Start launches the periodic sweep of idle clients.
func (l *Limiter) Start() {
	go func() {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				l.sweep()
			case <-l.done:
				return
			}
		}
	}()
}

// Stop halts the sweeper and clears all tracked clients.
func (l *Limiter) Stop() {
	l.once.Do(func() { close(l.done) })
	l.mu.Lock()
	l.clients = make(map[string]*client)
	l.mu.Unlock()
}

// Allow reports whether the keyed caller may proceed now.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	c, ok := l.clients[key]
	if !ok {
		c = &client{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.clients[key] = c
	}
	c.lastSeen = time.Now()
	l.mu.Unlock()
	return c.limiter.Allow()
}

func (l *Limiter) sweep() {
	cutoff := time.Now().Add(-clientTTL)
	l.mu.Lock()
	for key, c := range l.clients {
		if c.lastSeen.Before(cutoff) {
			delete(l.clients, key)
		}
	}
	l.mu.Unlock()
}

// Middleware keys requests by client IP and rejects over-limit callers.
func (l *Limiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
