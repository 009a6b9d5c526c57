package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/stockroom/backoffice/application/port/inbound"
	apperror "github.com/stockroom/backoffice/domain/error"
	"github.com/stockroom/backoffice/infrastructure/http/response"
	"github.com/stockroom/backoffice/infrastructure/service/logger"
)

type RateLimitConfig struct {
	// Attempts is the number of failed logins allowed per Window.
	Attempts      int
	Window        time.Duration
	BlockDuration time.Duration
}

// RateLimitMiddleware throttles login attempts per client IP. Only responses
// that reject the credentials count against the limit.
type RateLimitMiddleware struct {
	rateLimitService inbound.RateLimitService
	config           RateLimitConfig
	logger           logger.Logger
}

func NewRateLimitMiddleware(rateLimitService inbound.RateLimitService, config RateLimitConfig, log logger.Logger) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		rateLimitService: rateLimitService,
		config:           config,
		logger:           log,
	}
}

func (m *RateLimitMiddleware) RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.rateLimitService == nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		clientIP := ClientIP(r)
		key := fmt.Sprintf("login:ip:%s", clientIP)

		isBlocked, err := m.rateLimitService.IsBlocked(ctx, key)
		if err != nil {
			m.logger.Error(ctx, "Failed to check block status", err, map[string]interface{}{
				"ip":  clientIP,
				"key": key,
			})
		}
		if isBlocked {
			logger.LogSecurityEvent(ctx, m.logger, "rate_limit_blocked", "MEDIUM", map[string]interface{}{
				"ip":        clientIP,
				"path":      r.URL.Path,
				"userAgent": r.UserAgent(),
			})
			m.reject(w, m.config.BlockDuration)
			return
		}

		allowed, err := m.rateLimitService.CheckLimit(ctx, key, m.config.Attempts, m.config.Window)
		if err != nil {
			m.logger.Error(ctx, "Failed to check rate limit", err, map[string]interface{}{
				"ip":  clientIP,
				"key": key,
			})
			allowed = true
		}
		if !allowed {
			if err := m.rateLimitService.Block(ctx, key, m.config.BlockDuration, "Rate limit exceeded"); err != nil {
				m.logger.Error(ctx, "Failed to block IP", err, map[string]interface{}{
					"ip":  clientIP,
					"key": key,
				})
			}
			logger.LogSecurityEvent(ctx, m.logger, "rate_limit_exceeded", "HIGH", map[string]interface{}{
				"ip":        clientIP,
				"path":      r.URL.Path,
				"userAgent": r.UserAgent(),
			})
			m.reject(w, m.config.BlockDuration)
			return
		}

		sw := newStatusWriter(w)
		next.ServeHTTP(sw, r)

		if sw.status == http.StatusUnauthorized || sw.status == http.StatusUnprocessableEntity {
			if err := m.rateLimitService.Increment(ctx, key, m.config.Window); err != nil {
				m.logger.Error(ctx, "Failed to record login attempt", err, map[string]interface{}{
					"ip":  clientIP,
					"key": key,
				})
			}
		}
	})
}

func (m *RateLimitMiddleware) reject(w http.ResponseWriter, retryAfter time.Duration) {
	w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
	response.FromError(w, apperror.ErrRateLimitExceeded(m.config.Attempts, m.config.Window.String()))
}

// ClientIP extracts the client address, preferring proxy headers.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	ip := r.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}
	return ip
}
