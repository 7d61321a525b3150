// Package ratelimit throttles login and registration attempts with fixed
// per-key windows.
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/mejbaurrahman/JHF/internal/app/system/respond"
)

// Limiter counts requests per key inside a window. Safe for concurrent use.
type Limiter struct {
	mu       sync.Mutex
	windows  map[string]*window
	limit    int
	duration time.Duration
	now      func() time.Time
	stop     chan struct{}
	stopOnce sync.Once
}

type window struct {
	count     int
	expiresAt time.Time
}

// New returns a limiter allowing limit requests per duration per key.
// Call Stop to end its cleanup goroutine.
func New(limit int, duration time.Duration) *Limiter {
	l := &Limiter{
		windows:  make(map[string]*window),
		limit:    limit,
		duration: duration,
		now:      time.Now,
		stop:     make(chan struct{}),
	}
	go l.cleanupLoop(duration * 2)
	return l
}

// Allow records one request for key and reports whether it is within limit.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows[key]
	if !ok || now.After(w.expiresAt) {
		l.windows[key] = &window{count: 1, expiresAt: now.Add(l.duration)}
		return true
	}
	if w.count >= l.limit {
		return false
	}
	w.count++
	return true
}

// Reset forgets key.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.windows, key)
}

// Stop ends the cleanup goroutine.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}

func (l *Limiter) cleanupLoop(every time.Duration) {
	if every <= 0 {
		return
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
			l.mu.Lock()
			now := l.now()
			for k, w := range l.windows {
				if now.After(w.expiresAt) {
					delete(l.windows, k)
				}
			}
			l.mu.Unlock()
		}
	}
}

// ByIP returns middleware answering 429 with msg once the client IP
// exceeds the limit.
func (l *Limiter) ByIP(msg string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.Allow(ClientIP(r)) {
				respond.Message(w, http.StatusTooManyRequests, msg)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP is RemoteAddr without its port. Forwarding headers are not read
// here; chi's RealIP middleware has already applied them to RemoteAddr.
func ClientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// LoginLimiter tracks attempts per client IP and per phone number, so both
// spraying from one host and targeting one account are throttled.
type LoginLimiter struct {
	ip    *Limiter
	phone *Limiter
}

// NewLoginLimiter allows ipLimit attempts per minute per IP and 5 attempts
// per 5 minutes per phone.
func NewLoginLimiter(ipLimit int) *LoginLimiter {
	if ipLimit <= 0 {
		ipLimit = 10
	}
	return &LoginLimiter{
		ip:    New(ipLimit, time.Minute),
		phone: New(5, 5*time.Minute),
	}
}

func phoneKey(phone string) string {
	return strings.Join(strings.Fields(phone), "")
}

// Check records an attempt and returns false with a message when blocked.
func (ll *LoginLimiter) Check(r *http.Request, phone string) (bool, string) {
	if !ll.ip.Allow(ClientIP(r)) {
		return false, "Too many login attempts. Please wait a minute before trying again."
	}
	if k := phoneKey(phone); k != "" && !ll.phone.Allow(k) {
		return false, "Too many login attempts for this account. Please wait a few minutes."
	}
	return true, ""
}

// ResetPhone clears the per-phone window after a successful login.
func (ll *LoginLimiter) ResetPhone(phone string) {
	if k := phoneKey(phone); k != "" {
		ll.phone.Reset(k)
	}
}

// Stop ends both cleanup goroutines.
func (ll *LoginLimiter) Stop() {
	ll.ip.Stop()
	ll.phone.Stop()
}
