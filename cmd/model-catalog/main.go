// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the model-catalog CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/model-catalog/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// resolveAPIKey returns the catalog API credential: an explicit flag value
// wins, then the MODEL_CATALOG_API_KEY environment (a .env file is loaded
// first), then the .secrets/ directory. Empty means unconfigured.
func resolveAPIKey(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if v := viper.GetString("api_key"); v != "" {
		return v
	}
	return loadedSecrets[secrets.APIKeyFile]
}

// rootCmd is the base command for the model-catalog CLI.
var rootCmd = &cobra.Command{
	Use:   "model-catalog",
	Short: "Fetch and consolidate curated AI image models with API details and pricing",
	Long: `model-catalog resolves curated and scraped model lists against the Runware
catalog API, attaches local pricing data, and writes merged JSON catalogs.

Each stage is a subcommand: fetch runs the full pipeline, search queries the
catalog API directly, scrape extracts a collection page without enrichment,
and store indexes written catalogs into a queryable SQLite database.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; ignore a missing file.
		godotenv.Load()

		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./model-catalog.yaml or ~/.config/model-catalog/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("model-catalog")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "model-catalog"))
		}
	}

	viper.SetEnvPrefix("MODEL_CATALOG")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
