// Package cli wires the predictor core into the disease-predictor command.
package cli

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// Execute runs the root command and exits non-zero on failure
func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configFile string
	var noColor bool

	cmd := &cobra.Command{
		Use:          "disease-predictor",
		Short:        "Route clinical parameters to pre-trained disease classifiers",
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if noColor {
				pterm.DisableStyling()
			}
		},
	}

	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default: ./config.yaml, ./config/config.yaml or /etc/disease-predictor/config.yaml)")

	cmd.AddCommand(serveCmd(&configFile))
	cmd.AddCommand(predictCmd(&configFile))
	cmd.AddCommand(domainsCmd())
	cmd.AddCommand(schemaCmd())
	cmd.AddCommand(artifactsCmd())
	return cmd
}
