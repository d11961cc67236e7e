// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/lytoc-benchmark/internal/secrets"
	"github.com/pdiddy/lytoc-benchmark/pkg/types"
)

// flagKeys maps command flags to the config keys they override. A flag may
// feed more than one key.
var flagKeys = map[string][]string{
	"raw-dir":       {"extraction.raw_dir"},
	"parsed-dir":    {"extraction.parsed_dir", "benchmark.parsed_dir"},
	"force":         {"extraction.force"},
	"dpi":           {"extraction.raster.dpi"},
	"image":         {"extraction.raster.image"},
	"output-dir":    {"benchmark.output_dir", "hub.dataset_dir"},
	"min-length":    {"benchmark.segment.min_content_length"},
	"duplicate-ids": {"benchmark.segment.duplicate_ids"},
	"private":       {"hub.private"},
	"readme":        {"hub.readme_path"},
}

// loadConfig binds cmd's flags, then layers config file, environment and
// flags over the defaults. Tokens come from .secrets/ or the environment.
func loadConfig(cmd *cobra.Command) (types.PipelineConfig, error) {
	for name, keys := range flagKeys {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			continue
		}
		for _, key := range keys {
			if err := viper.BindPFlag(key, f); err != nil {
				return types.PipelineConfig{}, fmt.Errorf("binding --%s: %w", name, err)
			}
		}
	}

	cfg := types.DefaultPipelineConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	switch cfg.Benchmark.Segment.DuplicateIDs {
	case types.DuplicatesPreserve, types.DuplicatesSuffix:
	case "":
		cfg.Benchmark.Segment.DuplicateIDs = types.DuplicatesPreserve
	default:
		return cfg, fmt.Errorf("unknown duplicate-ids policy %q: use preserve or suffix",
			cfg.Benchmark.Segment.DuplicateIDs)
	}

	cfg.Extraction.OCR.Token, _ = secrets.Resolve(loadedSecrets, secrets.KeyOCRToken)
	cfg.Hub.Token, _ = secrets.Resolve(loadedSecrets, secrets.KeyHFToken)
	return cfg, nil
}

func addExtractFlags(cmd *cobra.Command) {
	d := types.DefaultPipelineConfig().Extraction
	cmd.Flags().String("raw-dir", d.RawDir, "directory containing homework PDFs")
	cmd.Flags().String("parsed-dir", d.ParsedDir, "directory for extracted markdown")
	cmd.Flags().Bool("force", false, "re-extract PDFs that already have markdown output")
	cmd.Flags().Int("dpi", d.Raster.DPI, "page render resolution")
	cmd.Flags().String("image", d.Raster.Image, "container image providing pdftoppm when it is not installed")
}

func addCreateFlags(cmd *cobra.Command) {
	d := types.DefaultPipelineConfig().Benchmark
	if cmd.Flags().Lookup("parsed-dir") == nil {
		cmd.Flags().String("parsed-dir", d.ParsedDir, "directory of homework markdown files")
	}
	cmd.Flags().String("output-dir", d.OutputDir, "directory for the dataset files")
	cmd.Flags().Int("min-length", d.Segment.MinContentLength, "shortest exercise kept, in characters")
	cmd.Flags().String("duplicate-ids", string(d.Segment.DuplicateIDs), "full_id collisions: preserve or suffix")
}

func addUploadFlags(cmd *cobra.Command) {
	d := types.DefaultPipelineConfig().Hub
	cmd.Flags().Bool("private", false, "create the repository as private")
	cmd.Flags().String("readme", d.ReadmePath, "dataset card uploaded as README.md (generated when missing)")
	if cmd.Flags().Lookup("output-dir") == nil {
		cmd.Flags().String("output-dir", d.DatasetDir, "directory holding the dataset files")
	}
}
