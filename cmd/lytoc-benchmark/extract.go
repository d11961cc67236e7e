// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/lytoc-benchmark/internal/convert"
	"github.com/pdiddy/lytoc-benchmark/internal/ocr"
	"github.com/pdiddy/lytoc-benchmark/internal/raster"
	"github.com/pdiddy/lytoc-benchmark/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "OCR homework PDFs into markdown",
	Long: `Extract renders every page of each PDF in raw/ to an image, sends it to
the SimpleTex OCR API, and writes parsed_data/{name}.md, {name}.jsonl and
extraction_metadata.json. PDFs that already have markdown output are skipped
unless --force is given.

Rendering uses pdftoppm on the host, or inside a docker/podman container
when it is not installed.`,
	RunE: runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	result, err := extract(cmd, cfg.Extraction)
	if err != nil {
		return err
	}
	if result.HasFailures() {
		return fmt.Errorf("%d PDF(s) failed extraction", result.Failed)
	}
	return nil
}

func extract(cmd *cobra.Command, cfg types.ExtractionConfig) (convert.BatchResult, error) {
	if cfg.OCR.Token == "" {
		return convert.BatchResult{}, fmt.Errorf("%w: write it to %socr-token or set OCR_UAT (get one at https://simpletex.cn)",
			ocr.ErrMissingToken, secretsDir)
	}

	renderer, err := raster.Detect(cfg.Raster)
	if err != nil {
		return convert.BatchResult{}, err
	}
	logger.Info("page renderer", "via", renderer.Name(), "dpi", renderer.DPI())

	conv := convert.NewOCRConverter(renderer, ocr.NewClient(cfg.OCR, logger), logger)
	return convert.ExtractBatch(cmd.Context(), conv, cfg, cmd.OutOrStdout())
}

func init() {
	addExtractFlags(extractCmd)
	rootCmd.AddCommand(extractCmd)
}
