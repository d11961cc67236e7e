// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/lytoc-benchmark/internal/benchmark"
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Split homework markdown into benchmark records",
	Long: `Create reads parsed_data/hw*.md, splits each homework into atomic
exercises (one record per sub-problem where an exercise has them), and
writes dataset.json, dataset.jsonl, dataset.yaml and dataset.db to
benchmark_dataset/. Statistics and a per-homework breakdown are printed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		_, err = benchmark.Create(cmd.Context(), cfg.Benchmark, logger, cmd.OutOrStdout())
		return err
	},
}

func init() {
	addCreateFlags(createCmd)
	rootCmd.AddCommand(createCmd)
}
