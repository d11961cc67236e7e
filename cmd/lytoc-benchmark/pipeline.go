// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/lytoc-benchmark/internal/benchmark"
)

var pipelineCmd = &cobra.Command{
	Use:   "pipeline",
	Short: "Run extract, create and optionally upload",
	Long: `Pipeline runs the stages in order: extract, then create, then upload
when --upload names a repository. A stage error stops the pipeline. PDFs
that fail extraction are reported, and create runs on the files that were
extracted.`,
	RunE: runPipeline,
}

func runPipeline(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	skipExtract, _ := cmd.Flags().GetBool("skip-extract")
	repo, _ := cmd.Flags().GetString("upload")

	stage := func(n int, name string) {
		fmt.Fprintf(out, "\n%s\nStep %d: %s\n%s\n\n", strings.Repeat("=", 60), n, name, strings.Repeat("=", 60))
	}

	failedPDFs := 0
	if !skipExtract {
		stage(1, "Extracting content from PDFs")
		result, err := extract(cmd, cfg.Extraction)
		if err != nil {
			return fmt.Errorf("extraction: %w", err)
		}
		failedPDFs = result.Failed
		if failedPDFs > 0 {
			logger.Warn("continuing with partial extraction", "failed", failedPDFs)
		}
	}

	stage(2, "Creating benchmark dataset")
	if _, err := benchmark.Create(cmd.Context(), cfg.Benchmark, logger, out); err != nil {
		return fmt.Errorf("benchmark creation: %w", err)
	}

	if repo != "" {
		stage(3, "Uploading to Hugging Face")
		cfg.Hub.RepoID = repo
		if err := upload(cmd, cfg.Hub); err != nil {
			return fmt.Errorf("upload: %w", err)
		}
	}

	fmt.Fprintf(out, "\n%s\nPipeline complete!\n", strings.Repeat("=", 60))
	if failedPDFs > 0 {
		return fmt.Errorf("%d PDF(s) failed extraction", failedPDFs)
	}
	return nil
}

func init() {
	addExtractFlags(pipelineCmd)
	addCreateFlags(pipelineCmd)
	addUploadFlags(pipelineCmd)
	pipelineCmd.Flags().Bool("skip-extract", false, "reuse the existing parsed_data/ markdown")
	pipelineCmd.Flags().String("upload", "", "upload the dataset to this user/repo after creating it")

	rootCmd.AddCommand(pipelineCmd)
}
