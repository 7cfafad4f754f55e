package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	appfx "signaler-launcher/internal/app/fx"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the desktop-facing run API",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fx.New(
				fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
					return &fxevent.ZapLogger{Logger: logger}
				}),
				appfx.APIServerOptions,
			)

			app.Run()
			return nil
		},
	}
	return cmd
}
