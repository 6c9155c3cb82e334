package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "parsource",
		Short: "A delimiter-driven source outline parser",
	}

	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newLangsCmd())
	rootCmd.AddCommand(newLSPCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
