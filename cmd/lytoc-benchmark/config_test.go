// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/lytoc-benchmark/pkg/types"
)

func newTestCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	cmd := &cobra.Command{Use: "test"}
	addExtractFlags(cmd)
	addCreateFlags(cmd)
	addUploadFlags(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func TestLoadConfig_Defaults(t *testing.T) {
	loadedSecrets = map[string]string{"ocr-token": "tok", "hf-token": "your_hf_token_here"}
	t.Setenv("HF_TOKEN", "")
	t.Setenv("LYTOC_HF_TOKEN", "")

	cfg, err := loadConfig(newTestCommand(t))
	require.NoError(t, err)

	want := types.DefaultPipelineConfig()
	assert.Equal(t, want.Extraction.RawDir, cfg.Extraction.RawDir)
	assert.Equal(t, want.Extraction.OCR.Endpoint, cfg.Extraction.OCR.Endpoint)
	assert.Equal(t, want.Extraction.OCR.Timeout, cfg.Extraction.OCR.Timeout)
	assert.Equal(t, want.Benchmark.Segment, cfg.Benchmark.Segment)
	assert.Equal(t, "tok", cfg.Extraction.OCR.Token)
	assert.Empty(t, cfg.Hub.Token, "placeholder token must count as unset")
}

func TestLoadConfig_FlagsOverride(t *testing.T) {
	cmd := newTestCommand(t,
		"--parsed-dir", "out/md",
		"--output-dir", "out/ds",
		"--min-length", "25",
		"--duplicate-ids", "suffix",
		"--dpi", "200",
		"--private",
	)

	cfg, err := loadConfig(cmd)
	require.NoError(t, err)

	assert.Equal(t, "out/md", cfg.Extraction.ParsedDir)
	assert.Equal(t, "out/md", cfg.Benchmark.ParsedDir)
	assert.Equal(t, "out/ds", cfg.Benchmark.OutputDir)
	assert.Equal(t, "out/ds", cfg.Hub.DatasetDir)
	assert.Equal(t, 25, cfg.Benchmark.Segment.MinContentLength)
	assert.Equal(t, types.DuplicatesSuffix, cfg.Benchmark.Segment.DuplicateIDs)
	assert.Equal(t, 200, cfg.Extraction.Raster.DPI)
	assert.True(t, cfg.Hub.Private)
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lytoc-benchmark.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
extraction:
  ocr:
    endpoint: http://localhost:9000/ocr
    timeout: 30s
benchmark:
  segment:
    min_content_length: 5
`), 0o644))

	cmd := newTestCommand(t)
	viper.SetConfigFile(path)
	require.NoError(t, viper.ReadInConfig())

	cfg, err := loadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000/ocr", cfg.Extraction.OCR.Endpoint)
	assert.Equal(t, "30s", cfg.Extraction.OCR.Timeout.String())
	assert.Equal(t, 5, cfg.Benchmark.Segment.MinContentLength)
	assert.Equal(t, "raw", cfg.Extraction.RawDir)
}

func TestLoadConfig_BadDuplicatePolicy(t *testing.T) {
	_, err := loadConfig(newTestCommand(t, "--duplicate-ids", "drop"))
	assert.ErrorContains(t, err, "unknown duplicate-ids policy")
}

func TestOneLine(t *testing.T) {
	assert.Equal(t, "a b c", oneLine("a\n\nb   c", 10))
	assert.Equal(t, "abcdefg...", oneLine("abcdefghijkl", 10))
	assert.Equal(t, "证明题证明...", oneLine("证明题证明题证明题", 8))
}
