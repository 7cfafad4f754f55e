package fx

import (
	"go.uber.org/fx"

	healthfx "signaler-launcher/internal/app/health/fx"
	historyapifx "signaler-launcher/internal/app/historyapi/fx"
	runsfx "signaler-launcher/internal/app/runs/fx"
	routerfx "signaler-launcher/internal/router/fx"
	serverfx "signaler-launcher/internal/server/fx"
)

// APIServerOptions is the full assembly of the desktop-facing API server.
var APIServerOptions = fx.Options(
	CoreAppOptions,
	LauncherOptions,
	routerfx.CoreRouterOptions,
	serverfx.Module,
	healthfx.Module,
	runsfx.Module,
	historyapifx.Module,
)
