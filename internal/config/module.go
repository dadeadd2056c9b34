package config

import (
	"github.com/go-core-fx/fiberfx"
	"go.uber.org/fx"

	"github.com/forgesim/forgesim/internal/storage"
	"github.com/forgesim/forgesim/internal/vcs"
	"github.com/forgesim/forgesim/pkg/badgerfx"
)

func Module() fx.Option {
	return fx.Module(
		"config",
		fx.Provide(New),
		fx.Provide(func(cfg Config) fiberfx.Config {
			return fiberfx.Config{
				Address:     cfg.HTTP.Address,
				ProxyHeader: cfg.HTTP.ProxyHeader,
				Proxies:     cfg.HTTP.Proxies,
			}
		}),
		fx.Provide(func(cfg Config) badgerfx.Config {
			return badgerfx.Config{
				Dir: cfg.Storage.DataDir,
			}
		}),
		fx.Provide(func(cfg Config) storage.Config {
			return storage.Config{
				SeedFile: cfg.Storage.SeedFile,
			}
		}),
		fx.Provide(func(cfg Config) vcs.Config {
			return vcs.Config{
				User: cfg.Sim.User,
			}
		}),
	)
}
