package api

import (
	"net"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
)

// rateLimitCreate throttles tag creation per client IP.
// Returns 429 Too Many Requests when the limit is exceeded.
func (s *Server) rateLimitCreate(ctx huma.Context, next func(huma.Context)) {
	key := clientIP(ctx.RemoteAddr(), ctx.Header("X-Forwarded-For"))

	if !s.createLimiter.Allow(key) {
		s.logger.Warn("Rate limit exceeded",
			"ip", key,
			"operation", ctx.Operation().OperationID,
		)
		ctx.SetHeader("Retry-After", "60")
		_ = huma.WriteErr(s.api, ctx, http.StatusTooManyRequests, "Too many requests. Please try again later.")
		return
	}

	next(ctx)
}

// clientIP extracts the client IP used as the rate limit key.
// chi's RealIP middleware has already rewritten RemoteAddr when a proxy
// header was present, so X-Forwarded-For only matters without it.
func clientIP(remoteAddr, forwardedFor string) string {
	if forwardedFor != "" {
		first, _, _ := strings.Cut(forwardedFor, ",")
		return strings.TrimSpace(first)
	}

	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}
