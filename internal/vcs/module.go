package vcs

import (
	"context"

	"github.com/go-core-fx/logger"
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module(
		"vcs",
		logger.WithNamedLogger("vcs"),
		fx.Provide(NewService),
		fx.Invoke(func(lc fx.Lifecycle, svc *Service) {
			lc.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					return svc.Hydrate(ctx)
				},
				OnStop: func(ctx context.Context) error {
					return svc.Flush(ctx)
				},
			})
		}),
	)
}
