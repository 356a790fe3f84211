// Package cmd implements the CLI commands for tcg-price-tracker.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "tcg-price-tracker",
	Short: "Track sold One Piece TCG listings on eBay",
	Long: "A service that ingests sold One Piece TCG listings from eBay, " +
		"classifies listing titles into graded, sealed, and raw products " +
		"against a card catalog, and serves the parsed price data over an API.",
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().
		StringVar(&cfgFile, "config", "config.yaml", "config file path")
	cobra.CheckErr(viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config")))

	rootCmd.AddCommand(versionCommand())
}

// initConfig lets TCG_-prefixed environment variables override flags, e.g.
// TCG_CONFIG=/etc/tcgpt/config.yaml.
func initConfig() {
	viper.SetEnvPrefix("TCG")
	viper.AutomaticEnv()
}

func configPath() string {
	return viper.GetString("config")
}

// Root exposes the root command for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
