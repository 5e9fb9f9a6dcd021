// Command accounts serves the account API.
package main

import (
	"context"
	"log/slog"
	"os"

	"accounts/config"
	"accounts/internal/delivery"
	"accounts/internal/delivery/api"
	apimiddleware "accounts/internal/delivery/api/middleware"
	"accounts/internal/delivery/api/router/handler"
	"accounts/internal/infra/auth"
	"accounts/internal/infra/cache"
	logs "accounts/internal/infra/log"
	"accounts/internal/infra/notification"
	"accounts/internal/infra/persistence"
	"accounts/internal/infra/pubsub"
	"accounts/internal/infra/qrcode"
	"accounts/internal/infra/ratelimit"
	"accounts/internal/usecase/impl"
	"accounts/internal/validation"

	"go.uber.org/fx"
)

func main() {
	fx.New(
		infraModule,
		serviceModule,
		usecaseModule,
		deliveryModule,
		fx.Invoke(serve),
	).Run()
}

var infraModule = fx.Module("infra",
	fx.Provide(
		config.New,
		logs.New,
		context.Background,
		cache.NewRedis,
		persistence.NewStore,
	),
)

var serviceModule = fx.Module("service",
	fx.Provide(
		auth.NewBcryptHasher,
		auth.NewJWTService,
		qrcode.New,
		notification.NewVerificationNotifier,
		pubsub.NewEventPublisher,
		ratelimit.NewLimiters,
		validation.New,
	),
)

var usecaseModule = fx.Module("usecase",
	fx.Provide(
		impl.NewTaskRunner,
		impl.NewAccountService,
	),
)

var deliveryModule = fx.Module("delivery",
	fx.Provide(
		apimiddleware.NewAuthMiddleware,
		apimiddleware.NewRateLimitMiddleware,
		handler.NewAccountHandler,
		fx.Annotate(api.NewServer, fx.ResultTags(`group:"deliveries"`)),
	),
)

type serveParams struct {
	fx.In

	Ctx        context.Context
	Logger     *slog.Logger
	Deliveries []delivery.Delivery `group:"deliveries"`
}

// serve runs every delivery in the background. A delivery that fails to
// listen takes the process down.
func serve(params serveParams) {
	for _, d := range params.Deliveries {
		go func() {
			if err := d.Serve(params.Ctx); err != nil {
				params.Logger.Error("Delivery stopped", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
