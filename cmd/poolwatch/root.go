package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	version    = "0.1.0"
	verbosity  int
	configPath string

	rootCmd = &cobra.Command{
		Use:   "poolwatch",
		Short: "Worker pool inventory and exports",
		Long: `Poolwatch queries a task-scheduling deployment's worker-manager
API for worker pool configuration and worker status, and renders the
results as text summaries, JSON dumps, and CSV exports.`,
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			switch {
			case verbosity >= 2:
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			case verbosity == 1:
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
		},
	}
)

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// init sets up the root command
func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"Print progress information, repeat for more detail")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "poolwatch.yaml",
		"Path to the deployments config file")
}
