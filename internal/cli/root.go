// Package cli implements the walletd command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags.
var Version = "0.1.0"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "walletd",
	Short: "Credit ledger and wallet daemon",
	Long: `walletd is the credit ledger and wallet backend for the ad-generation
dashboard. It stores credit and debit events in an append-only ledger,
computes balances as a fold over Completed entries, and gates every
debit on the available balance.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "path to TOML config file")
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the walletd version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("walletd %s\n", Version)
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
