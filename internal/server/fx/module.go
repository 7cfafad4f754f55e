package fx

import (
	"go.uber.org/fx"

	"signaler-launcher/internal/server"
)

var Module = fx.Options(
	fx.Provide(server.NewHTTPServer),
	fx.Invoke(RegisterHTTPServerLifecycle),
)
