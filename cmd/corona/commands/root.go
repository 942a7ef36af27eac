package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	jsonOutput bool
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "corona",
	Short: "Corona PPA contract analytics",
	Long: `Corona analytics CLI

Resolves which PPA contract governs a metering point (MPAN), how long the
point has been continuously contracted, and the company and billing
details behind it.

Configuration comes from the environment (or .env): CORONA_ENV,
CORONA_TOKEN, CORONA_BASE_URL, REDIS_*, LOG_LEVEL.

Examples:
  go run ./cmd/corona mpan 008450062012345678910
  go run ./cmd/corona mpans --start 2017-11-01 --end 2017-11-30
  go run ./cmd/corona company --name "Sunny Farm Ltd"
  go run ./cmd/corona api`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print JSON instead of tables")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}
