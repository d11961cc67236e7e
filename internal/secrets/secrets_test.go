// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/lytoc-benchmark/internal/logging"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(t *testing.T) string
		want   map[string]string
		errMsg string
	}{
		{
			name: "reads key files and trims whitespace",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "ocr-token", "  tok_abc123  \n")
				writeFile(t, dir, "hf-token", "hf_xyz789\n")
				return dir
			},
			want: map[string]string{
				"ocr-token": "tok_abc123",
				"hf-token":  "hf_xyz789",
			},
		},
		{
			name: "returns empty map for nonexistent directory",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "does-not-exist")
			},
			want: map[string]string{},
		},
		{
			name: "skips empty files",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "hf-token", "valid-key")
				writeFile(t, dir, "empty-key", "")
				writeFile(t, dir, "whitespace-only", "   \n\t  ")
				return dir
			},
			want: map[string]string{
				"hf-token": "valid-key",
			},
		},
		{
			name: "skips dotfiles",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, ".gitkeep", "")
				writeFile(t, dir, ".hidden-key", "secret")
				writeFile(t, dir, "ocr-token", "tok_real")
				return dir
			},
			want: map[string]string{
				"ocr-token": "tok_real",
			},
		},
		{
			name: "skips subdirectories",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "hf-token", "hf_123")
				require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0o755))
				return dir
			},
			want: map[string]string{
				"hf-token": "hf_123",
			},
		},
		{
			name: "returns empty map for empty directory",
			setup: func(t *testing.T) string {
				return t.TempDir()
			},
			want: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := tt.setup(t)
			got, err := Load(dir, logging.Discard())
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadUnreadableFile(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("file permissions are not enforced for root")
	}
	dir := t.TempDir()
	writeFile(t, dir, "good-key", "value123")

	// Create a file then remove read permission.
	badPath := filepath.Join(dir, "bad-key")
	require.NoError(t, os.WriteFile(badPath, []byte("secret"), 0o000))
	t.Cleanup(func() { os.Chmod(badPath, 0o644) })

	got, err := Load(dir, logging.Discard())
	require.NoError(t, err)
	// The good file should still be returned; the bad file is skipped with a warning.
	assert.Equal(t, "value123", got["good-key"])
	_, hasBad := got["bad-key"]
	assert.False(t, hasBad, "unreadable file should not appear in result")
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestIsSet(t *testing.T) {
	tests := []struct {
		key, value string
		want       bool
	}{
		{KeyOCRToken, "tok_123", true},
		{KeyOCRToken, "", false},
		{KeyOCRToken, "   ", false},
		{KeyOCRToken, "your_ocr_token_here", false},
		{KeyHFToken, "your_hf_token_here", false},
		{KeyHFToken, "YOUR_HF_TOKEN_HERE", false},
		{KeyHFToken, "hf_abc", true},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSet(tt.key, tt.value))
		})
	}
}

func TestResolve(t *testing.T) {
	t.Setenv("LYTOC_OCR_TOKEN", "")
	t.Setenv("OCR_UAT", "env_tok")
	t.Setenv("LYTOC_HF_TOKEN", "")
	t.Setenv("HF_TOKEN", "your_hf_token_here")

	v, src := Resolve(map[string]string{KeyOCRToken: "file_tok"}, KeyOCRToken)
	assert.Equal(t, "file_tok", v)
	assert.Equal(t, "file ocr-token", src)

	v, src = Resolve(map[string]string{KeyOCRToken: "your_ocr_token_here"}, KeyOCRToken)
	assert.Equal(t, "env_tok", v)
	assert.Equal(t, "env OCR_UAT", src)

	v, src = Resolve(map[string]string{}, KeyHFToken)
	assert.Empty(t, v)
	assert.Empty(t, src)
}
