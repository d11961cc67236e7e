// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads API tokens from a directory of plain-text files.
// Each file in the directory represents one secret: the filename is the key name and the
// file contents (trimmed) are the value.
//
// Supported key files: ocr-token (SimpleTex), hf-token (Hugging Face Hub).
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/pdiddy/lytoc-benchmark/internal/logging"
)

// Key names recognised by the pipeline, with the environment variables
// consulted when the key file is absent.
const (
	KeyOCRToken = "ocr-token"
	KeyHFToken  = "hf-token"
)

// EnvFallback maps each key to the environment variables checked, in order,
// by Resolve.
var EnvFallback = map[string][]string{
	KeyOCRToken: {"LYTOC_OCR_TOKEN", "OCR_UAT"},
	KeyHFToken:  {"LYTOC_HF_TOKEN", "HF_TOKEN"},
}

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty map.
// Unreadable files are logged and skipped.
func Load(dir string, logger *log.Logger) (map[string]string, error) {
	logger = logging.OrDiscard(logger)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			logger.Warn("could not read secret", "key", name, "err", err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// Placeholder returns the template value shipped for key, e.g.
// "your_ocr_token_here" for ocr-token.
func Placeholder(key string) string {
	return "your_" + strings.ReplaceAll(key, "-", "_") + "_here"
}

// IsSet reports whether value is a usable secret for key: non-empty and
// not the template placeholder.
func IsSet(key, value string) bool {
	v := strings.TrimSpace(value)
	return v != "" && !strings.EqualFold(v, Placeholder(key))
}

// Resolve returns the value for key from secrets, falling back to the
// environment variables in EnvFallback. Placeholder values are ignored.
// The second result names where the value came from.
func Resolve(secrets map[string]string, key string) (string, string) {
	if v := secrets[key]; IsSet(key, v) {
		return v, "file " + key
	}
	for _, env := range EnvFallback[key] {
		if v := os.Getenv(env); IsSet(key, v) {
			return strings.TrimSpace(v), "env " + env
		}
	}
	return "", ""
}
