package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"signaler-launcher/config"
	"signaler-launcher/internal/engine"
)

func newEngineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "engine",
		Short:         "Inspect and invoke the resolved engine",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errUsage
		},
	}

	cmd.AddCommand(
		newEnginePathCmd(),
		newEngineResolveCmd(),
		newEngineRunCmd(),
	)
	return cmd
}

func resolveManifestInfo() (config.Config, engine.ManifestInfo, error) {
	cfg, err := loadConfig()
	if err != nil {
		return config.Config{}, engine.ManifestInfo{}, err
	}
	info, err := engine.NewResolver(cfg.CacheDir).Resolve()
	if err != nil {
		return config.Config{}, engine.ManifestInfo{}, err
	}
	return cfg, info, nil
}

func printResolutionReport(cmd *cobra.Command, info engine.ManifestInfo) error {
	report, err := engine.BuildResolutionReport(info)
	if err != nil {
		return err
	}
	raw, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(raw))
	return nil
}

func newEnginePathCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "path",
		Short: "Print the resolved engine manifest path",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, info, err := resolveManifestInfo()
			if err != nil {
				return err
			}
			if asJSON {
				return printResolutionReport(cmd, info)
			}
			fmt.Fprintln(cmd.OutOrStdout(), info.ManifestPath)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full resolution report as JSON")
	return cmd
}

func newEngineResolveCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Print the resolved engine entry path",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, info, err := resolveManifestInfo()
			if err != nil {
				return err
			}
			if asJSON {
				return printResolutionReport(cmd, info)
			}
			entryPath, err := engine.ResolveEntry(info)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), entryPath)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full resolution report as JSON")
	return cmd
}

func newEngineRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run -- <args...>",
		Short: "Invoke the engine entry point, forwarding arguments verbatim",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, info, err := resolveManifestInfo()
			if err != nil {
				return err
			}
			entryPath, err := engine.ResolveEntry(info)
			if err != nil {
				return err
			}

			runner := engine.NewRunner(cfg.NodeCmd)
			ok, _, err := runner.RunStatus(entryPath, forwardedArgs(cmd.ArgsLenAtDash(), args))
			if err != nil {
				return err
			}
			if !ok {
				return errFailed
			}
			return nil
		},
	}
	return cmd
}
