// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/lytoc-benchmark/internal/dataset"
	"github.com/pdiddy/lytoc-benchmark/pkg/types"
)

var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Inspect the created dataset (query, show, stats)",
	Long: `Dataset reads benchmark_dataset/dataset.db, the SQLite copy of the
records written by create. Use subcommands to search records, print one
record by full_id, or recompute statistics.`,
}

var datasetQueryCmd = &cobra.Command{
	Use:   "query [text]",
	Short: "Search records by content and filters",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openDataset(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		hw, _ := cmd.Flags().GetString("homework")
		if hw != "" && !strings.HasPrefix(hw, "hw") {
			hw = "hw" + hw
		}
		exercise, _ := cmd.Flags().GetString("exercise")
		subOnly, _ := cmd.Flags().GetBool("sub-problems")
		limit, _ := cmd.Flags().GetInt("limit")

		records, err := store.Query(cmd.Context(), dataset.QueryOptions{
			Query:           strings.Join(args, " "),
			Homework:        hw,
			Exercise:        exercise,
			SubProblemsOnly: subOnly,
			Limit:           limit,
		})
		if err != nil {
			return err
		}

		asJSON, _ := cmd.Flags().GetBool("json")
		return printRecords(cmd.OutOrStdout(), records, asJSON)
	},
}

var datasetShowCmd = &cobra.Command{
	Use:   "show <full_id>",
	Short: "Print every record stored under a full_id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openDataset(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		records, err := store.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		if len(records) > 1 {
			fmt.Fprintf(w, "note: %d records share id %s\n\n", len(records), args[0])
		}
		for _, r := range records {
			fmt.Fprintf(w, "ID: %s\nHomework: %s\nExercise: %s\n", r.FullID, r.Homework, r.ExerciseNumber)
			if r.HasSubProblem() {
				fmt.Fprintf(w, "Sub-problem: %s\n", *r.SubProblem)
			}
			fmt.Fprintf(w, "\n%s\n\n", r.Content)
		}
		return nil
	},
}

var datasetStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print record counts overall and per homework",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openDataset(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		stats, err := store.Stats(cmd.Context())
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Total exercises: %d\nHomeworks: %d\nWith sub-problems: %d\n\n",
			stats.Total, stats.Homeworks, stats.WithSubProblems)
		for _, hc := range stats.PerHomework {
			fmt.Fprintf(w, "  %s: %d exercises\n", hc.Homework, hc.Count)
		}
		return nil
	},
}

func openDataset(cmd *cobra.Command) (*dataset.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	dir := cfg.Benchmark.OutputDir
	if _, err := os.Stat(filepath.Join(dir, dataset.DBFile)); err != nil {
		return nil, fmt.Errorf("no dataset in %s (run create first): %w", dir, err)
	}
	return dataset.Open(dir)
}

func printRecords(w io.Writer, records []types.ExerciseRecord, asJSON bool) error {
	if asJSON {
		data, err := dataset.EncodeJSON(records)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(w, "No results found.")
		return nil
	}

	fmt.Fprintf(w, "%-16s  %s\n", "ID", "Content")
	fmt.Fprintln(w, strings.Repeat("-", 80))
	for _, r := range records {
		fmt.Fprintf(w, "%-16s  %s\n", r.FullID, oneLine(r.Content, 60))
	}
	fmt.Fprintf(w, "\n%d results\n", len(records))
	return nil
}

// oneLine flattens s and truncates it to n runes.
func oneLine(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func init() {
	datasetCmd.PersistentFlags().String("output-dir", "benchmark_dataset", "directory holding dataset.db")

	datasetQueryCmd.Flags().String("homework", "", "filter by homework, e.g. 3 or hw3")
	datasetQueryCmd.Flags().String("exercise", "", "filter by exercise number")
	datasetQueryCmd.Flags().Bool("sub-problems", false, "only records split from sub-problems")
	datasetQueryCmd.Flags().Int("limit", 0, "maximum results (0 = 50, negative = all)")
	datasetQueryCmd.Flags().Bool("json", false, "output records as JSON")

	datasetCmd.AddCommand(datasetQueryCmd)
	datasetCmd.AddCommand(datasetShowCmd)
	datasetCmd.AddCommand(datasetStatsCmd)
	rootCmd.AddCommand(datasetCmd)
}
