package fx

import (
	"go.uber.org/fx"

	"signaler-launcher/internal/app/historyapi"
	"signaler-launcher/internal/router"
)

var Module = fx.Options(
	fx.Provide(router.AsRoute(historyapi.NewHandler)),
)
