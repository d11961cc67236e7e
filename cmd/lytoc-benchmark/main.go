// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the lytoc-benchmark CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/lytoc-benchmark/internal/logging"
	"github.com/pdiddy/lytoc-benchmark/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// secretsDir holds one file per token.
const secretsDir = ".secrets/"

var (
	// loadedSecrets holds tokens loaded from .secrets/ at startup.
	loadedSecrets map[string]string

	// logger is configured from --log-level and --log-json before any
	// subcommand runs.
	logger = logging.Discard()
)

// rootCmd is the base command for the lytoc-benchmark CLI.
var rootCmd = &cobra.Command{
	Use:   "lytoc-benchmark",
	Short: "Build the LyTOC exercise benchmark from homework PDFs",
	Long: `lytoc-benchmark turns Theory of Computation homework PDFs into a
benchmark dataset with one record per atomic exercise.

The pipeline has three stages, each a subcommand: extract (PDF pages to
markdown through OCR), create (markdown to dataset records) and upload
(dataset to the Hugging Face Hub). pipeline runs them in order.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, _ := cmd.Flags().GetString("log-level")
		asJSON, _ := cmd.Flags().GetBool("log-json")
		l, err := logging.New(logging.Config{Level: level, JSON: asJSON})
		if err != nil {
			return err
		}
		logger = l
		log.SetDefault(l)

		s, err := secrets.Load(secretsDir, logger)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			logger.Info("loaded secrets", "keys", strings.Join(keys, ","))
		}
		if f := viper.ConfigFileUsed(); f != "" {
			logger.Info("using config file", "path", f)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./lytoc-benchmark.yaml or ~/.config/lytoc-benchmark/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().Bool("log-json", false, "write logs as JSON")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("lytoc-benchmark")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "lytoc-benchmark"))
		}
	}

	viper.SetEnvPrefix("LYTOC")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	_ = viper.ReadInConfig()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
