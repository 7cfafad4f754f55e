package cmd

import (
	"github.com/spf13/cobra"

	"signaler-launcher/config"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "signaler",
		Short:         "Signaler launcher: resolve and supervise the audit engine",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errUsage
		},
	}

	rootCmd.AddCommand(
		newDoctorCmd(),
		newEngineCmd(),
		newRunCmd(),
		newUpdateCmd(),
		newServeCmd(),
	)
	return rootCmd
}

func loadConfig() (config.Config, error) {
	return config.NewConfig(config.NewViper())
}

// forwardedArgs returns the arguments past the `--` separator, or all
// positional arguments when no separator was given.
func forwardedArgs(lenAtDash int, args []string) []string {
	if lenAtDash < 0 {
		return args
	}
	return args[lenAtDash:]
}
