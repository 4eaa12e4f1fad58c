package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/tokenlink/tokenlink/internal/ratelimit"
	"go.uber.org/zap"
)

// RateLimiter returns a huma middleware enforcing the default request budget
// per client, with per-endpoint overrides carried in operation metadata.
// Requests over the limit fail with 429 before any handler (and so before
// token verification) runs.
func RateLimiter(
	api huma.API,
	limiter *ratelimit.SlidingWindowLimiter,
	logger *zap.Logger,
) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		cfg := ratelimit.GetEndpointConfig(ctx)
		if cfg != nil && cfg.Disabled {
			next(ctx)

			return
		}

		key := clientKey(ctx)

		if cfg != nil && len(cfg.Limits) > 0 {
			if !allowCustomLimits(api, ctx, limiter.Store(), key, cfg.Limits, logger) {
				return
			}

			next(ctx)

			return
		}

		allowed, err := limiter.Allow(ctx.Context(), key)
		if err != nil {
			logger.Error("rate limit check failed",
				zap.String("path", operationPath(ctx)),
				zap.Error(err),
			)
			_ = huma.WriteErr(api, ctx, http.StatusInternalServerError, "internal server error", err)

			return
		}

		if !allowed {
			rejected(api, ctx, logger)

			return
		}

		next(ctx)
	}
}

// allowCustomLimits applies the per-endpoint limits; every window is tracked
// independently per client. Returns false after writing the error response.
func allowCustomLimits(
	api huma.API,
	ctx huma.Context,
	store ratelimit.Store,
	clientKey string,
	limits []ratelimit.LimitConfig,
	logger *zap.Logger,
) bool {
	// Keyed on the route template, so all requests matching the same route
	// share counters per client regardless of path parameter values.
	path := operationPath(ctx)

	for _, limit := range limits {
		key := fmt.Sprintf("%s:%s:%d", clientKey, path, limit.Window.Milliseconds())

		count, err := store.Record(ctx.Context(), key, limit.Window)
		if err != nil {
			logger.Error("rate limit check failed",
				zap.String("path", path),
				zap.Error(err),
			)
			_ = huma.WriteErr(api, ctx, http.StatusInternalServerError, "internal server error", err)

			return false
		}

		if count > limit.Max {
			rejected(api, ctx, logger)

			return false
		}
	}

	return true
}

func rejected(api huma.API, ctx huma.Context, logger *zap.Logger) {
	logger.Warn("rate limit exceeded",
		zap.String("path", operationPath(ctx)),
		zap.String("method", ctx.Method()),
		zap.String("client_ip", clientIP(ctx)),
	)

	_ = huma.WriteErr(api, ctx, http.StatusTooManyRequests, "rate limit exceeded")
}

func operationPath(ctx huma.Context) string {
	if op := ctx.Operation(); op != nil {
		return op.Path
	}

	return ""
}

// clientKey generates a unique key for rate limiting based on IP and User-Agent.
func clientKey(ctx huma.Context) string {
	ip := clientIP(ctx)
	ua := ctx.Header("User-Agent")

	hash := sha256.Sum256([]byte(ip + "|" + ua))

	return hex.EncodeToString(hash[:])
}
