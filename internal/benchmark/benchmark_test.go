// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package benchmark

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/lytoc-benchmark/internal/dataset"
	"github.com/pdiddy/lytoc-benchmark/internal/logging"
	"github.com/pdiddy/lytoc-benchmark/pkg/types"
)

const hw1 = `Homework 1
Jan 2024
1 (30'). Show that every bounded monotone sequence converges.
2 (40'). Let A be a 2x2 matrix.
1) Compute det(A).
2) Find the eigenvalues of A.
3`

const hw2 = `2 (20'). Integrate x^2 over [0, 1].
2. tiny`

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestHomeworkNumber(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{name: "hw3.md", want: "3"},
		{name: "hw13.md", want: "13"},
		{name: "parsed_data/hw7.md", want: "7"},
		{name: "course_hw04_final.md", want: "04"},
		{name: "hw1_hw2.md", want: "1"},
		{name: "homework.md", wantErr: true},
		{name: "HW3.md", wantErr: true},
		{name: "hw.md", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HomeworkNumber(tt.name)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrMalformedFilename))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadDocuments(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "hw2.md", hw2)
	writeFile(t, dir, "hw10.md", "1 (5'). Tenth homework exercise.")
	writeFile(t, dir, "hw1.md", hw1)
	writeFile(t, dir, "homework.md", "1 (5'). Should be skipped entirely.")
	writeFile(t, dir, "hw3.jsonl", "{}")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "hw4.md"), 0o755))

	var logBuf bytes.Buffer
	logger, err := logging.New(logging.Config{Output: &logBuf})
	require.NoError(t, err)

	docs, res, err := LoadDocuments(dir, logger)
	require.NoError(t, err)

	var ids []string
	for _, d := range docs {
		ids = append(ids, d.ID)
	}
	assert.Equal(t, []string{"1", "10", "2"}, ids, "sorted by filename")
	assert.Equal(t, LoadResult{Loaded: 3, Skipped: 1}, res)
	assert.Contains(t, logBuf.String(), "homework.md")
	assert.Equal(t, filepath.Join(dir, "hw1.md"), docs[0].Source)
	assert.Equal(t, hw1, docs[0].Text)
}

func TestLoadDocuments_MissingDir(t *testing.T) {
	_, _, err := LoadDocuments(filepath.Join(t.TempDir(), "nope"), nil)
	require.Error(t, err)
}

func TestCreate(t *testing.T) {
	tmp := t.TempDir()
	parsed := filepath.Join(tmp, "parsed_data")
	out := filepath.Join(tmp, "benchmark_dataset")
	require.NoError(t, os.MkdirAll(parsed, 0o755))
	writeFile(t, parsed, "hw1.md", hw1)
	writeFile(t, parsed, "hw2.md", hw2)
	writeFile(t, parsed, "homework.md", "1 (5'). Should be skipped entirely.")

	cfg := types.BenchmarkConfig{ParsedDir: parsed, OutputDir: out}
	var w bytes.Buffer
	ds, err := Create(context.Background(), cfg, logging.Discard(), &w)
	require.NoError(t, err)

	var ids []string
	for _, r := range ds.Records {
		ids = append(ids, r.FullID)
	}
	assert.Equal(t, []string{"hw1_ex1", "hw1_ex2_1", "hw1_ex2_2", "hw2_ex2"}, ids)
	assert.Equal(t, 2, ds.Stats.WithSubProblems)
	assert.Equal(t, 1, ds.Stats.Dropped)
	assert.Equal(t, 1, ds.Stats.SkippedFiles)

	log := w.String()
	assert.Contains(t, log, "Found 2 homework files")
	assert.Contains(t, log, "hw1: 3 exercises")
	assert.Contains(t, log, "hw2: 1 exercises")
	assert.Contains(t, log, "Total exercises extracted: 4")
	assert.Contains(t, log, "ID: hw1_ex1")

	for _, name := range []string{dataset.JSONFile, dataset.JSONLFile, dataset.YAMLFile, dataset.DBFile} {
		_, err := os.Stat(filepath.Join(out, name))
		assert.NoError(t, err, name)
	}

	fromDisk, err := dataset.ReadJSONL(filepath.Join(out, dataset.JSONLFile))
	require.NoError(t, err)
	assert.Equal(t, ds.Records, fromDisk)

	store, err := dataset.Open(out)
	require.NoError(t, err)
	defer store.Close()
	stored, err := store.All(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ds.Records, stored)
}

func TestCreate_Idempotent(t *testing.T) {
	tmp := t.TempDir()
	parsed := filepath.Join(tmp, "parsed_data")
	require.NoError(t, os.MkdirAll(parsed, 0o755))
	writeFile(t, parsed, "hw1.md", hw1)
	writeFile(t, parsed, "hw2.md", hw2)

	run := func(out string) []byte {
		cfg := types.BenchmarkConfig{ParsedDir: parsed, OutputDir: out}
		var w bytes.Buffer
		_, err := Create(context.Background(), cfg, nil, &w)
		require.NoError(t, err)
		data, err := os.ReadFile(filepath.Join(out, dataset.JSONLFile))
		require.NoError(t, err)
		return data
	}

	first := run(filepath.Join(tmp, "a"))
	second := run(filepath.Join(tmp, "b"))
	assert.Equal(t, first, second)
}

func TestCreate_NoHomework(t *testing.T) {
	parsed := t.TempDir()
	writeFile(t, parsed, "notes.md", "1 (5'). Not a homework file.")

	var w bytes.Buffer
	_, err := Create(context.Background(), types.BenchmarkConfig{ParsedDir: parsed, OutputDir: t.TempDir()}, nil, &w)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoHomework))
}

func TestCreate_NoExercises(t *testing.T) {
	parsed := t.TempDir()
	out := filepath.Join(t.TempDir(), "out")
	writeFile(t, parsed, "hw1.md", "cover page only")

	var w bytes.Buffer
	_, err := Create(context.Background(), types.BenchmarkConfig{ParsedDir: parsed, OutputDir: out}, nil, &w)
	require.ErrorIs(t, err, ErrNoExercises)

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr), "nothing is written for an empty dataset")
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "abc", preview("abc", 5))
	assert.Equal(t, "求函", preview("求函数", 2))
}
