package middleware

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/eldtechnologies/ticketbot/internal/metrics"
)

// channelHeader lets the chat transport identify the channel a message came
// from, so one busy channel cannot starve the others behind a shared relay IP.
// The header is client supplied, so channel budgets are scoped to the client
// IP and every IP also has an overall /dispatch ceiling.
const channelHeader = "X-Ticketbot-Channel"

// rule limits one method and path prefix.
type rule struct {
	method string
	prefix string
	name   string
	limit  int
	window time.Duration
	key    func(r *http.Request) string
}

// RateLimiterConfig holds configuration for the rate limiter.
type RateLimiterConfig struct {
	Whitelist []string // IPs or CIDRs exempt from rate limiting
}

// RateLimiter counts requests per key in fixed Redis windows.
type RateLimiter struct {
	client    *redis.Client
	rules     []rule
	whitelist []*net.IPNet
	logger    zerolog.Logger
}

// NewRateLimiter creates a rate limiter. A nil client disables limiting.
func NewRateLimiter(client *redis.Client, logger zerolog.Logger, cfg RateLimiterConfig) *RateLimiter {
	rl := &RateLimiter{
		client: client,
		logger: logger,
		rules: []rule{
			{http.MethodPost, "/dispatch", "dispatch", 600, time.Minute, channelKey},
			{http.MethodPost, "/dispatch", "dispatch", 3000, time.Minute, dispatchClientKey},
			{http.MethodPost, "/patterns", "patterns", 30, time.Hour, clientKey},
			{http.MethodDelete, "/patterns", "patterns", 30, time.Hour, clientKey},
		},
	}

	for _, entry := range cfg.Whitelist {
		if !strings.Contains(entry, "/") {
			if strings.Contains(entry, ":") {
				entry += "/128"
			} else {
				entry += "/32"
			}
		}
		_, ipNet, err := net.ParseCIDR(entry)
		if err != nil {
			logger.Warn().Str("entry", entry).Err(err).Msg("ignoring invalid whitelist entry")
			continue
		}
		rl.whitelist = append(rl.whitelist, ipNet)
	}

	return rl
}

// Middleware returns the rate limiting middleware. Every matching rule is
// counted and the request is rejected if any of them is exceeded.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rules := rl.match(r)
		if rl.client == nil || len(rules) == 0 || rl.exempt(clientIP(r)) {
			next.ServeHTTP(w, r)
			return
		}

		for _, ru := range rules {
			key := ru.key(r)
			count, resetAt, err := rl.hit(r.Context(), key, ru.window)
			if err != nil {
				// Fail open.
				rl.logger.Warn().Err(err).Str("key", key).Msg("rate limit check failed")
				next.ServeHTTP(w, r)
				return
			}

			// Headers describe the first rule, the one a well-behaved client hits.
			if ru == rules[0] {
				remaining := ru.limit - int(count)
				if remaining < 0 {
					remaining = 0
				}
				w.Header().Set("X-RateLimit-Limit", strconv.Itoa(ru.limit))
				w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
				w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))
			}

			if count > int64(ru.limit) {
				metrics.RateLimitHits.WithLabelValues(ru.name).Inc()
				rl.logger.Warn().
					Str("endpoint", ru.name).
					Str("key", key).
					Msg("rate limit exceeded")

				w.Header().Set("Retry-After", strconv.Itoa(int(time.Until(resetAt).Seconds())+1))
				jsonError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

// hit increments the counter for the current window and returns the new
// count and when the window ends.
func (rl *RateLimiter) hit(ctx context.Context, key string, window time.Duration) (int64, time.Time, error) {
	now := time.Now()
	start := now.Truncate(window)
	windowKey := key + ":" + strconv.FormatInt(start.Unix(), 10)

	pipe := rl.client.TxPipeline()
	incr := pipe.Incr(ctx, windowKey)
	pipe.Expire(ctx, windowKey, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, time.Time{}, err
	}
	return incr.Val(), start.Add(window), nil
}

func (rl *RateLimiter) match(r *http.Request) []*rule {
	var out []*rule
	for i := range rl.rules {
		ru := &rl.rules[i]
		if r.Method == ru.method && strings.HasPrefix(r.URL.Path, ru.prefix) {
			out = append(out, ru)
		}
	}
	return out
}

func (rl *RateLimiter) exempt(ipStr string) bool {
	ip := net.ParseIP(ipStr)
	if ip == nil {
		return false
	}
	for _, n := range rl.whitelist {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}

func clientKey(r *http.Request) string {
	return "ratelimit:ip:" + clientIP(r)
}

func channelKey(r *http.Request) string {
	if ch := r.Header.Get(channelHeader); ch != "" {
		return "ratelimit:channel:" + clientIP(r) + ":" + ch
	}
	return clientKey(r)
}

func dispatchClientKey(r *http.Request) string {
	return "ratelimit:dispatch:" + clientIP(r)
}

// clientIP relies on chi's RealIP having already rewritten RemoteAddr.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
