package internal

import (
	"context"

	"github.com/capcom6/go-infra-fx/validator"
	"github.com/go-core-fx/fiberfx"
	"github.com/go-core-fx/healthfx"
	"github.com/go-core-fx/logger"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/forgesim/forgesim/internal/config"
	"github.com/forgesim/forgesim/internal/server"
	"github.com/forgesim/forgesim/internal/storage"
	"github.com/forgesim/forgesim/internal/tasks"
	"github.com/forgesim/forgesim/internal/vcs"
	"github.com/forgesim/forgesim/pkg/badgerfx"
)

func Run() {
	fx.New(
		// CORE MODULES
		logger.Module(),
		logger.WithFxDefaultLogger(),
		badgerfx.Module(),
		healthfx.Module(),
		fiberfx.Module(),
		validator.Module,
		//
		// APP MODULES
		config.Module(),
		server.Module(),
		storage.Module(),
		//
		// BUSINESS MODULES
		fx.Provide(func() healthfx.Version { return healthfx.Version{Version: "0.1.0", ReleaseID: 1} }),
		vcs.Module(),
		tasks.Module(),
		//
		// LIFECYCLE MANAGEMENT
		fx.Invoke(func(lc fx.Lifecycle, logger *zap.Logger) {
			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					logger.Info("ForgeSim starting up")
					return nil
				},
				OnStop: func(_ context.Context) error {
					logger.Info("ForgeSim shutting down")
					return nil
				},
			})
		}),
	).Run()
}
