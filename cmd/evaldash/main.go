package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	debug   bool
	apiURL  string
)

var rootCmd = &cobra.Command{
	Use:   "evaldash",
	Short: "evaldash - model evaluation dashboard",
	Long: `evaldash fetches model evaluation metrics from a Metrics Service and
renders them as a web dashboard, a terminal UI or a static HTML report.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug mode")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Metrics Service base URL (overrides api.base_url)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
