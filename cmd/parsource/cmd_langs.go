package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/parsource/lang"
)

func newLangsCmd() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "langs",
		Short: "List the registered language tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loadConfig(configFile, cmd.Flags()); err != nil {
				return err
			}
			for _, name := range lang.Names() {
				fmt.Println(name)
			}
			return nil
		},
	}

	cmd.Flags().String("langs-dir", "", "directory of YAML language definitions to load")
	cmd.Flags().StringVar(&configFile, "config", "", "config file (default parsource.yaml)")

	return cmd
}
