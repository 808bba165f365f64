package cmd

import (
	"fmt"
	"os"

	"quiqr-cms/pkg/config"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	sitesRoot string
	logLevel  string
)

var rootCmd = &cobra.Command{
	Use:   "quiqr-cms",
	Short: "Resolve and edit Quiqr site models",
	Long: `quiqr-cms reads the model of Quiqr sites (site config, menu, singles and
collections with their partials), checks that every menu item points to a
defined single or collection, and serves the result to the editor over HTTP.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml, json or toml)")
	rootCmd.PersistentFlags().StringVar(&sitesRoot, "sites-root", "", "directory holding one sub-directory per site")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error")
}

func initializeConfig(cmd *cobra.Command) error {
	if err := config.Init(cfgFile); err != nil {
		return err
	}

	// Flags beat the environment and the config file.
	if cmd.Flags().Changed("sites-root") {
		config.SitesRoot = sitesRoot
	}
	if cmd.Flags().Changed("log-level") {
		config.LogLevel = logLevel
	}

	logger, err := config.NewLogger()
	if err != nil {
		return err
	}
	log.SetDefault(logger)
	log.Debug("configuration loaded", "sites_root", config.SitesRoot, "config", cfgFile)
	return nil
}
