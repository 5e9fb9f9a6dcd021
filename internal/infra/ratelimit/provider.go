package ratelimit

import (
	"log/slog"
	"time"

	"accounts/config"
	"accounts/internal/domain/service"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

const window = time.Minute

// Limiters groups the throttles applied to public authentication routes.
type Limiters struct {
	Login  service.RateLimiter
	Resend service.RateLimiter
}

// LimitersParams holds dependencies for Limiters, injected by Fx.
type LimitersParams struct {
	fx.In

	Config *config.Config
	Redis  *redis.Client `optional:"true"`
	Logger *slog.Logger
}

// NewLimiters uses Redis when a client is available and per-process buckets otherwise.
func NewLimiters(params LimitersParams) *Limiters {
	loginLimit, resendLimit := 5, 3
	if params.Config.RateLimit != nil {
		if params.Config.RateLimit.LoginPerMinute > 0 {
			loginLimit = params.Config.RateLimit.LoginPerMinute
		}
		if params.Config.RateLimit.ResendPerMinute > 0 {
			resendLimit = params.Config.RateLimit.ResendPerMinute
		}
	}

	if params.Redis != nil {
		params.Logger.Info("Using Redis rate limiter", slog.Int("login_per_minute", loginLimit), slog.Int("resend_per_minute", resendLimit))

		return &Limiters{
			Login:  NewRedisLimiter(params.Redis, "login", loginLimit, window),
			Resend: NewRedisLimiter(params.Redis, "resend", resendLimit, window),
		}
	}

	params.Logger.Info("Using in-process rate limiter", slog.Int("login_per_minute", loginLimit), slog.Int("resend_per_minute", resendLimit))

	return &Limiters{
		Login:  NewLocalLimiter(loginLimit, window),
		Resend: NewLocalLimiter(resendLimit, window),
	}
}
