// Learnrec - Learning Content Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnrec

// Package main implements learnrecctl, the operator CLI for learnrec.
//
// The recommend, insights, backup and restore commands open the Badger
// store directly and must run while the server is stopped, since Badger
// holds a directory lock. The emit command publishes events to NATS and works against a
// running deployment.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/tomtom215/learnrec/internal/config"
	"github.com/tomtom215/learnrec/internal/logging"
)

var (
	// configFile overrides config file discovery
	configFile string
	// logLevel for CLI diagnostics on stderr
	logLevel string
	// jsonOutput prints raw JSON instead of tables
	jsonOutput bool
	// version information
	version = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "learnrecctl",
	Short: "Operator CLI for the learnrec recommendation engine",
	Long: `learnrecctl inspects persisted learnrec state and feeds events into a
running deployment.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(logging.Config{
			Level:  logLevel,
			Format: "console",
			Output: cmd.ErrOrStderr(),
		})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: discovered like the server)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level for diagnostics")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print JSON instead of tables")
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(insightsCmd)
	rootCmd.AddCommand(emitCmd)
}

// loadConfig loads the server configuration the same way the server does.
func loadConfig() (*config.Config, error) {
	if configFile != "" {
		return config.LoadFile(configFile)
	}
	return config.Load()
}
