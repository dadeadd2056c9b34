package storage

import (
	"github.com/go-core-fx/logger"
	"go.uber.org/fx"

	"github.com/forgesim/forgesim/internal/vcs"
)

func Module() fx.Option {
	return fx.Module(
		"storage",
		logger.WithNamedLogger("storage"),
		fx.Provide(NewStore, fx.Private),
		fx.Provide(func(store *Store) vcs.Persister { return store }),
	)
}
