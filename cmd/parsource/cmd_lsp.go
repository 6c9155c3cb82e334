package main

import (
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/parsource/lsp"
)

func newLSPCmd() *cobra.Command {
	var configFile string
	var verbose int

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loadConfig(configFile, cmd.Flags()); err != nil {
				return err
			}
			commonlog.Configure(verbose, nil)
			server := lsp.NewLSPServer("0.1.0")
			return server.RunStdio()
		},
	}

	cmd.Flags().String("langs-dir", "", "directory of YAML language definitions to load")
	cmd.Flags().StringVar(&configFile, "config", "", "config file (default parsource.yaml)")
	cmd.Flags().CountVarP(&verbose, "verbose", "v", "increase log verbosity")

	return cmd
}
