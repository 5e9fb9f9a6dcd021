package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"

	deliverycontext "accounts/internal/delivery/context"
	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/service"
	"accounts/internal/infra/ratelimit"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// RateLimitMiddlewareParams holds dependencies for RateLimitMiddleware, injected by Fx.
type RateLimitMiddlewareParams struct {
	fx.In

	Limiters *ratelimit.Limiters
	Logger   *slog.Logger
}

// RateLimitMiddleware throttles public authentication routes per email, or per IP without one.
type RateLimitMiddleware struct {
	limiters *ratelimit.Limiters
	logger   *slog.Logger
}

// NewRateLimitMiddleware is the constructor for RateLimitMiddleware.
func NewRateLimitMiddleware(params RateLimitMiddlewareParams) *RateLimitMiddleware {
	return &RateLimitMiddleware{limiters: params.Limiters, logger: params.Logger}
}

// Login limits login attempts.
func (m *RateLimitMiddleware) Login(next echo.HandlerFunc) echo.HandlerFunc {
	return m.limit(m.limiters.Login, next)
}

// Resend limits verification email resends.
func (m *RateLimitMiddleware) Resend(next echo.HandlerFunc) echo.HandlerFunc {
	return m.limit(m.limiters.Resend, next)
}

func (m *RateLimitMiddleware) limit(limiter service.RateLimiter, next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if limiter == nil {
			return next(c)
		}

		ctx := c.Request().Context()
		allowed, err := limiter.Allow(ctx, limitKey(c))
		if err != nil {
			// Fail open on limiter errors
			deliverycontext.GetLoggerOrDefault(ctx, m.logger).Warn("Rate limiter unavailable", slog.Any("error", err))

			return next(c)
		}
		if !allowed {
			return domainerrors.ErrTooManyRequests
		}

		return next(c)
	}
}

// limitKey reads the email from the JSON body and restores the body for the handler.
func limitKey(c echo.Context) string {
	req := c.Request()
	if req.Body != nil {
		body, err := io.ReadAll(req.Body)
		req.Body.Close()
		req.Body = io.NopCloser(bytes.NewReader(body))

		if err == nil {
			var payload struct {
				Email string `json:"email"`
			}
			if json.Unmarshal(body, &payload) == nil {
				if email := entity.NormalizeEmail(payload.Email); email != "" {
					return "email:" + email
				}
			}
		}
	}

	return "ip:" + c.RealIP()
}
