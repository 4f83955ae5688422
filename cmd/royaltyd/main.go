package main

import (
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:           "royaltyd",
	Short:         "Royalty and recoupment backend for the distribution platform",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func main() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to YAML config file")
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
