// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package doctor

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/lytoc-benchmark/pkg/types"
)

func clearTokenEnv(t *testing.T) {
	for _, v := range []string{"LYTOC_OCR_TOKEN", "OCR_UAT", "LYTOC_HF_TOKEN", "HF_TOKEN"} {
		t.Setenv(v, "")
	}
}

func configWithRaw(t *testing.T, pdfs ...string) types.PipelineConfig {
	t.Helper()
	cfg := types.DefaultPipelineConfig()
	cfg.Extraction.RawDir = filepath.Join(t.TempDir(), "raw")
	require.NoError(t, os.MkdirAll(cfg.Extraction.RawDir, 0o755))
	for _, p := range pdfs {
		require.NoError(t, os.WriteFile(filepath.Join(cfg.Extraction.RawDir, p), []byte("%PDF"), 0o644))
	}
	return cfg
}

func okRenderer() (string, error) { return "host", nil }

func TestRun_AllPassed(t *testing.T) {
	clearTokenEnv(t)
	cfg := configWithRaw(t, "hw1.pdf", "hw2.pdf")
	env := Env{
		ConfigFile: "lytoc-benchmark.yaml",
		Secrets:    map[string]string{"ocr-token": "tok", "hf-token": "hf_x"},
		Renderer:   okRenderer,
	}

	var out bytes.Buffer
	r := Run(cfg, env, &out)

	assert.True(t, r.Passed(), "failed: %+v", r.Failed())
	assert.Contains(t, out.String(), "found 2")
	assert.Contains(t, out.String(), "pdftoppm via host")
	assert.Contains(t, out.String(), "All checks passed!")
}

func TestRun_Failures(t *testing.T) {
	tests := []struct {
		name       string
		cfg        func(t *testing.T) types.PipelineConfig
		secrets    map[string]string
		renderer   func() (string, error)
		wantFailed []string
		wantFix    string
	}{
		{
			name: "missing raw directory",
			cfg: func(t *testing.T) types.PipelineConfig {
				cfg := types.DefaultPipelineConfig()
				cfg.Extraction.RawDir = filepath.Join(t.TempDir(), "raw")
				return cfg
			},
			secrets:    map[string]string{"ocr-token": "tok", "hf-token": "hf"},
			renderer:   okRenderer,
			wantFailed: []string{"Raw PDF directory", "PDF files"},
			wantFix:    "Add homework PDF files",
		},
		{
			name:       "empty raw directory",
			cfg:        func(t *testing.T) types.PipelineConfig { return configWithRaw(t) },
			secrets:    map[string]string{"ocr-token": "tok", "hf-token": "hf"},
			renderer:   okRenderer,
			wantFailed: []string{"PDF files"},
			wantFix:    "Add homework PDF files",
		},
		{
			name:       "placeholder tokens",
			cfg:        func(t *testing.T) types.PipelineConfig { return configWithRaw(t, "hw1.pdf") },
			secrets:    map[string]string{"ocr-token": "your_ocr_token_here"},
			renderer:   okRenderer,
			wantFailed: []string{"ocr-token", "hf-token"},
			wantFix:    ".secrets/ocr-token",
		},
		{
			name:       "no renderer",
			cfg:        func(t *testing.T) types.PipelineConfig { return configWithRaw(t, "hw1.pdf") },
			secrets:    map[string]string{"ocr-token": "tok", "hf-token": "hf"},
			renderer:   func() (string, error) { return "", errors.New("no container runtime available") },
			wantFailed: []string{"Page renderer"},
			wantFix:    "poppler",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearTokenEnv(t)
			var out bytes.Buffer
			r := Run(tt.cfg(t), Env{Secrets: tt.secrets, Renderer: tt.renderer}, &out)

			require.False(t, r.Passed())
			var names []string
			for _, c := range r.Failed() {
				names = append(names, c.Name)
			}
			assert.Equal(t, tt.wantFailed, names)
			assert.Contains(t, out.String(), "Some checks failed")
			assert.Contains(t, out.String(), tt.wantFix)
		})
	}
}

func TestRun_TokenFromEnv(t *testing.T) {
	clearTokenEnv(t)
	t.Setenv("OCR_UAT", "env_tok")
	t.Setenv("HF_TOKEN", "hf_env")

	var out bytes.Buffer
	r := Run(configWithRaw(t, "hw1.pdf"), Env{Renderer: okRenderer}, &out)

	assert.True(t, r.Passed(), "failed: %+v", r.Failed())
	assert.Contains(t, out.String(), "set (env OCR_UAT)")
}

func TestRun_NoConfigFileIsNotAFailure(t *testing.T) {
	clearTokenEnv(t)
	var out bytes.Buffer
	r := Run(configWithRaw(t, "hw1.pdf"), Env{
		Secrets:  map[string]string{"ocr-token": "tok", "hf-token": "hf"},
		Renderer: okRenderer,
	}, &out)
	assert.True(t, r.Passed())
	assert.Contains(t, out.String(), "not found, using defaults")
}
