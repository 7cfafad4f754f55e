package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newUpdateCmd() *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "update [--check]",
		Short: "Refresh the cached engine (not implemented)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "update: not implemented (cacheDir: %s)\n", cfg.CacheDir)
			if check {
				return nil
			}
			return errFailed
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "Only check for updates")
	return cmd
}
