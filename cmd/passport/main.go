package main

import (
	"context"
	"log/slog"

	"passport/config"
	"passport/internal/delivery"
	"passport/internal/delivery/http"
	"passport/internal/delivery/http/middleware"
	"passport/internal/delivery/http/router/handler"
	"passport/internal/domain/service"
	"passport/internal/infra/auth"
	logs "passport/internal/infra/log"
	"passport/internal/infra/persistence/postgres"
	"passport/internal/infra/session"
	"passport/internal/usecase/impl"

	"go.uber.org/fx"
)

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectMiddleware(),
		injectHandler(),
		injectDelivery(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Provide(
		postgres.NewUserRepository,
		session.NewStore,
	)
}

func injectService() fx.Option {
	return fx.Provide(
		newCredentialHasher,
	)
}

// newCredentialHasher keys the deterministic digest from config.
func newCredentialHasher(cfg *config.Config) service.CredentialHasher {
	return auth.NewPBKDF2Hasher(cfg.Auth.CredentialSecret, cfg.Auth.HashIterations)
}

func injectUsecase() fx.Option {
	return fx.Provide(
		impl.NewAccountService,
	)
}

func injectMiddleware() fx.Option {
	return fx.Provide(
		middleware.NewSessionKeyMiddleware,
		middleware.NewAuthMiddleware,
		middleware.NewRequestIDMiddleware,
		middleware.NewErrorMiddleware,
	)
}

func injectHandler() fx.Option {
	return fx.Provide(
		handler.NewAccountHandler,
	)
}

func injectDelivery() fx.Option {
	return fx.Provide(
		http.NewServer,
	)
}

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Delivery   delivery.Delivery
	Logger     *slog.Logger
	Shutdowner fx.Shutdowner
}

func startServer(params startServerParams) {
	params.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				if err := params.Delivery.Serve(context.Background()); err != nil {
					params.Logger.Error("HTTP server stopped", slog.Any("error", err))
					_ = params.Shutdowner.Shutdown()
				}
			}()

			return nil
		},
	})
}
