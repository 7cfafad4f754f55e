package fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"signaler-launcher/config"
	"signaler-launcher/internal/engine"
	"signaler-launcher/internal/history"
	"signaler-launcher/internal/logs"
	"signaler-launcher/internal/supervise"
)

var CoreAppOptions = fx.Options(
	fx.Provide(
		config.NewViper,
		config.NewConfig,
		logs.NewLogger,
		logs.NewSugaredLogger,
	),
)

// LauncherOptions wires the run-supervision core shared by the API server.
var LauncherOptions = fx.Options(
	fx.Provide(
		NewEngineResolver,
		NewHistoryStore,
		NewSupervisor,
	),
	fx.Invoke(logs.RegisterLifecycle),
)

func NewEngineResolver(cfg config.Config) *engine.Resolver {
	return engine.NewResolver(cfg.CacheDir)
}

func NewHistoryStore(cfg config.Config) *history.Store {
	return history.NewStore(cfg.DataDir)
}

func NewSupervisor(cfg config.Config, resolver *engine.Resolver, store *history.Store, log *zap.SugaredLogger) *supervise.Supervisor {
	return supervise.New(cfg.NodeCmd, cfg.DataDir, resolver, store, log)
}
