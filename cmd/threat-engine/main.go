package main

import (
	"github.com/spf13/cobra"
)

var (
	configPath string
	debugMode  bool
)

var rootCmd = &cobra.Command{
	Use:   "threat-engine",
	Short: "Host threat-detection engine",
	Long: `threat-engine inspects host state (processes, network connections,
filesystem activity, resource utilisation) and classifies observations into
severity-ranked findings using a static rule catalog.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to configuration file")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scanCmd)
}

func main() {
	cobra.CheckErr(rootCmd.Execute())
}
