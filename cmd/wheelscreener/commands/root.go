package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	envFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "wheelscreener",
	Short: "Wheel-strategy stock screener",
	Long: `Wheel Screener CLI

Serves equity market data from a tiered source chain (vendor API,
historical quotes, synthetic generator) and ranks wheel-strategy
candidates with a multi-factor score.

Examples:
  go run ./cmd/wheelscreener api
  go run ./cmd/wheelscreener screen --min-score 60`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "env file (default is .env)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
