package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sitectl",
	Short: "Operate the site registry database",
	Long: `sitectl manages the site registry schema and its records.

Connection settings are read from /etc/sitereg/sitereg.yml (or
$SITEREG_CONFIG_PATH/sitereg.yml) and SITEREG_* environment variables.
Run "sitectl configuration show" to see the effective values.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error); overrides SITEREG_LOG_LEVEL")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}
