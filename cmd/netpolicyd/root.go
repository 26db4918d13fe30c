package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "netpolicyd",
	Short: "Deterministic network policy decision daemon",
	Long: `Netpolicyd evaluates declarative network policy rules and decides,
per connection attempt, whether to route, block, throttle or log it.

Rules match on SNI (with wildcards), protocol, port sets and latency
thresholds, and can be conditioned on the current network state. The
highest-priority, most specific matching rule wins; ties go to the rule
declared first.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
