// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package benchmark builds the exercise dataset from a directory of
// per-homework OCR markdown files and writes it to the dataset directory.
package benchmark

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/pdiddy/lytoc-benchmark/internal/logging"
	"github.com/pdiddy/lytoc-benchmark/pkg/types"
)

// ErrMalformedFilename reports a file whose name carries no homework number.
var ErrMalformedFilename = errors.New("no homework number in filename")

var homeworkNumberRe = regexp.MustCompile(`hw(\d+)`)

// HomeworkNumber extracts the first digit run following "hw" in a file name:
// "hw13.md" gives "13". Directories in name are ignored.
func HomeworkNumber(name string) (string, error) {
	base := filepath.Base(name)
	m := homeworkNumberRe.FindStringSubmatch(base)
	if m == nil {
		return "", fmt.Errorf("%s: %w", base, ErrMalformedFilename)
	}
	return m[1], nil
}

// LoadResult counts what happened to the files of an input directory.
type LoadResult struct {
	Loaded  int
	Skipped int
	Failed  int
}

// LoadDocuments reads every *.md file of dir in sorted filename order.
// Files without a homework number are skipped with a warning; unreadable
// files are logged and counted as failed. Neither stops the batch.
func LoadDocuments(dir string, logger *log.Logger) ([]types.HomeworkDocument, LoadResult, error) {
	logger = logging.OrDiscard(logger)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, LoadResult{}, fmt.Errorf("reading parsed directory %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".md") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	var (
		docs []types.HomeworkDocument
		res  LoadResult
	)
	for _, name := range names {
		id, err := HomeworkNumber(name)
		if err != nil {
			logger.Warn("could not extract homework number", "file", name)
			res.Skipped++
			continue
		}

		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Error("reading homework", "file", name, "err", err)
			res.Failed++
			continue
		}

		docs = append(docs, types.HomeworkDocument{ID: id, Source: path, Text: string(data)})
		res.Loaded++
	}
	return docs, res, nil
}
