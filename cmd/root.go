package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath = "hopper.yaml"
	logPath    string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "hopper",
	Short: "Replay Internet routing paths over the CAIDA ITDK topology",
	Long: `Hopper rebuilds a router-level Internet topology from the CAIDA ITDK
dataset and computes hop-count shortest paths between sets of hosts, such as
the published address ranges of two public-cloud regions.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", configPath, "run configuration")
	rootCmd.PersistentFlags().StringVarP(&logPath, "log", "l", logPath, "also append logs to this file (rotated)")
}
