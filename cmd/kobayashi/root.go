package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pggpgg/kobayashi-stfc/config"
)

// configFile is the optional config document name, set via the --config
// flag (spec's "config-loaded defaults via viper").
var configFile string

var rootCmd = &cobra.Command{
	Use:   "kobayashi",
	Short: "Monte Carlo combat simulator and crew optimizer",
	Long:  "Simulate STFC-style ship combat, run Monte Carlo batches, and rank crew candidates.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "optional config file name (without extension)")

	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(montecarloCmd)
	rootCmd.AddCommand(optimizeCmd)
}

func loadConfig() (*config.Options, error) {
	return config.Load(configFile)
}
