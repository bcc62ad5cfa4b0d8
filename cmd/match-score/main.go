// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the match-score CLI. It loads contact
// exports, scores every pair of records, and labels probable duplicates.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/match-score/internal/config"
	"github.com/pdiddy/match-score/internal/logging"
	"github.com/pdiddy/match-score/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the match-score CLI.
var rootCmd = &cobra.Command{
	Use:   "match-score",
	Short: "Find probable duplicate contacts by weighted field similarity",
	Long: `match-score compares every pair of contact records in a CSV export,
scores each pair field by field (names, email, zip code, address), and labels
the pair High, Medium, or Low.

Fields, weights, thresholds, and column mappings come from match-score.yaml;
without one the built-in contact configuration is used.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./match-score.yaml or ~/.config/match-score/match-score.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "", "log format: console or json")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("match-score")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "match-score"))
		}
	}

	viper.SetEnvPrefix(config.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadRuntime resolves the configuration and builds the logger. Root log
// flags override the config file.
func loadRuntime(cmd *cobra.Command) (types.MatchConfig, *zap.Logger, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return types.MatchConfig{}, nil, err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level, _ = cmd.Flags().GetString("log-level")
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Log.Format, _ = cmd.Flags().GetString("log-format")
	}

	log, err := logging.New(cfg.Log)
	if err != nil {
		return types.MatchConfig{}, nil, err
	}
	return cfg, log, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
