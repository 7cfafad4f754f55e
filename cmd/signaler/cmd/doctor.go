package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"signaler-launcher/internal/doctor"
)

func newDoctorCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check for a compatible Node runtime and a supported browser",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			report := doctor.Check(cfg.NodeCmd, doctor.DefaultMinNodeMajor)
			if asJSON {
				raw, err := json.MarshalIndent(report, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(raw))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Node:", report.Node.Detail)
				fmt.Fprintln(cmd.OutOrStdout(), "Browser:", report.Browser.Detail)
				okText := "no"
				if report.OK {
					okText = "yes"
				}
				fmt.Fprintln(cmd.OutOrStdout(), "OK:", okText)
			}
			if !report.OK {
				return errFailed
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON")
	return cmd
}
