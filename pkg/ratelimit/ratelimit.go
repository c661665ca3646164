package ratelimit

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/GlebRadaev/elevatex/pkg/utils"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const MsgTooManyRequests = "Too many requests, please try again later"

type Rule struct {
	Limit  int
	Window time.Duration
}

type Result struct {
	Allowed   bool
	Remaining int
	ResetIn   time.Duration
}

// Limiter counts hits per key in fixed Redis windows, so every instance of
// the API shares the same budget.
type Limiter struct {
	client *redis.Client
}

func New(client *redis.Client) *Limiter {
	return &Limiter{
		client: client,
	}
}

// Allow records one hit for key under rule.
func (l *Limiter) Allow(ctx context.Context, key string, rule Rule) (Result, error) {
	k := "ratelimit:" + key
	count, err := l.client.Incr(ctx, k).Result()
	if err != nil {
		return Result{}, err
	}
	if count == 1 {
		if err := l.client.Expire(ctx, k, rule.Window).Err(); err != nil {
			return Result{}, err
		}
	}
	ttl, err := l.client.PTTL(ctx, k).Result()
	if err != nil {
		return Result{}, err
	}
	if ttl < 0 {
		// a window left without expiry would block the key for good
		l.client.Expire(ctx, k, rule.Window)
		ttl = rule.Window
	}

	remaining := rule.Limit - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return Result{
		Allowed:   int(count) <= rule.Limit,
		Remaining: remaining,
		ResetIn:   ttl,
	}, nil
}

// Middleware limits requests per client IP within scope. Requests pass when
// Redis is unreachable.
func (l *Limiter) Middleware(scope string, rule Rule) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res, err := l.Allow(r.Context(), scope+":"+clientIP(r), rule)
			if err != nil {
				zap.L().Warn("rate limiter unavailable", zap.String("scope", scope), zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rule.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
			if !res.Allowed {
				w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(res.ResetIn)))
				zap.L().Info("rate limit exceeded", zap.String("scope", scope), zap.String("ip", clientIP(r)))
				utils.RespondWithError(w, http.StatusTooManyRequests, MsgTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func retryAfterSeconds(d time.Duration) int {
	secs := int((d + time.Second - 1) / time.Second)
	if secs < 1 {
		return 1
	}
	return secs
}
