// Copyright Sigma Labs Ltd., 2026. All rights reserved.

// Package main is the entry point for the pharmazer CLI.
//
// pharmazer flattens PubMed citation dumps into an enriched tabular
// dataset: affiliation free-text is mined for contact email, postal code,
// institution (matched against the GRID reference dataset), and country.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sigmalabs/pharmazer/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets secrets.Secrets

// rootCmd is the base command for the pharmazer CLI.
var rootCmd = &cobra.Command{
	Use:   "pharmazer",
	Short: "Enrich PubMed citation dumps with structured affiliation data",
	Long: `pharmazer converts a PubMed citation XML dump into a flat CSV dataset,
one row per article, author, and affiliation. Each affiliation string is
mined for a contact email and postal code, tagged with a named-entity
recognizer, matched against the GRID institution reference dataset, and
resolved to a canonical country name.

Use process for a local run over files on disk, or run for the full
pipeline against the configured S3 buckets.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
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

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pharmazer.yaml or ~/.config/pharmazer/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pharmazer")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pharmazer"))
		}
	}

	viper.SetEnvPrefix("PHARMAZER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
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
