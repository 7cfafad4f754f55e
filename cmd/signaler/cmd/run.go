package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"signaler-launcher/internal/engine"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "run",
		Short:         "Run the engine in audit or folder mode",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errUsage
		},
	}

	cmd.AddCommand(
		newRunModeCmd("audit"),
		newRunModeCmd("folder"),
	)
	return cmd
}

func newRunModeCmd(mode string) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   mode + " [--json] -- <args...>",
		Short: "Run the engine in " + mode + " mode",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, info, err := resolveManifestInfo()
			if err != nil {
				return err
			}
			entryPath, err := engine.ResolveEntry(info)
			if err != nil {
				return err
			}

			forwarded := append([]string{mode}, forwardedArgs(cmd.ArgsLenAtDash(), args)...)
			runner := engine.NewRunner(cfg.NodeCmd)

			if asJSON {
				ok, code, err := runner.RunStatusSilent(entryPath, forwarded)
				if err != nil {
					return err
				}
				report := engine.RunReport{
					SchemaVersion: engine.SupportedSchemaVersion,
					Mode:          mode,
					ManifestPath:  info.ManifestPath,
					EntryPath:     entryPath,
					ForwardedArgs: forwarded,
					Success:       ok,
					ExitCode:      exitCodePtr(ok, code),
					CacheLayout:   engine.BuildCacheLayout(info),
				}
				raw, err := json.MarshalIndent(report, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(raw))
				if !ok {
					return errFailed
				}
				return nil
			}

			ok, _, err := runner.RunStatus(entryPath, forwarded)
			if err != nil {
				return err
			}
			if !ok {
				return errFailed
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Capture exit status and print a structured run report")
	return cmd
}

// exitCodePtr hides the -1 "no exit code" marker behind a null.
func exitCodePtr(ok bool, code int) *int {
	if !ok && code < 0 {
		return nil
	}
	return &code
}
