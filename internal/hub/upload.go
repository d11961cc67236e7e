// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package hub

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/lytoc-benchmark/internal/dataset"
	"github.com/pdiddy/lytoc-benchmark/internal/segment"
	"github.com/pdiddy/lytoc-benchmark/pkg/types"
)

// TrainSplitPath is where the train split lives inside the repository.
const TrainSplitPath = "data/train.jsonl"

// ErrNoDataset is returned when the local dataset has not been created.
var ErrNoDataset = errors.New("dataset not found (run create first)")

// Upload creates the repository if needed and commits the dataset card,
// dataset.json, dataset.jsonl and the train split in one commit.
func Upload(ctx context.Context, c *Client, cfg types.HubConfig, w io.Writer) error {
	jsonlPath := filepath.Join(cfg.DatasetDir, dataset.JSONLFile)
	records, err := dataset.ReadJSONL(jsonlPath)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNoDataset, jsonlPath)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Creating repository: %s\n", cfg.RepoID)
	created, err := c.CreateRepo(ctx, cfg.RepoID, cfg.Private)
	if err != nil {
		return err
	}
	if created {
		fmt.Fprintf(w, "Repository created: %s\n", c.DatasetURL(cfg.RepoID))
	} else {
		fmt.Fprintf(w, "Repository found: %s\n", c.DatasetURL(cfg.RepoID))
	}

	files, err := collectFiles(cfg, records)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Uploading %d files (%d records)...\n", len(files), len(records))
	summary := fmt.Sprintf("Upload LyTOC benchmark (%d exercises)", len(records))
	if err := c.UploadFiles(ctx, cfg.RepoID, files, summary); err != nil {
		return err
	}
	for _, f := range files {
		fmt.Fprintf(w, "✓ Uploaded %s\n", f.Path)
	}

	fmt.Fprintf(w, "\nUpload complete!\nDataset URL: %s\n", c.DatasetURL(cfg.RepoID))
	return nil
}

func collectFiles(cfg types.HubConfig, records []types.ExerciseRecord) ([]File, error) {
	readme, err := readmeContent(cfg.ReadmePath, records)
	if err != nil {
		return nil, err
	}

	jsonData, err := os.ReadFile(filepath.Join(cfg.DatasetDir, dataset.JSONFile))
	if errors.Is(err, os.ErrNotExist) {
		jsonData, err = dataset.EncodeJSON(records)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dataset.JSONFile, err)
	}

	var jsonl bytes.Buffer
	if err := dataset.EncodeJSONL(&jsonl, records); err != nil {
		return nil, err
	}

	return []File{
		{Path: "README.md", Content: readme},
		{Path: dataset.JSONFile, Content: jsonData},
		{Path: dataset.JSONLFile, Content: jsonl.Bytes()},
		{Path: TrainSplitPath, Content: jsonl.Bytes()},
	}, nil
}

// readmeContent returns the hand-written card at path, or a generated one
// when path is empty or missing.
func readmeContent(path string, records []types.ExerciseRecord) ([]byte, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
	}
	return DatasetCard(records)
}

type cardSplit struct {
	Split string `yaml:"split"`
	Path  string `yaml:"path"`
}

type cardConfig struct {
	ConfigName string      `yaml:"config_name"`
	DataFiles  []cardSplit `yaml:"data_files"`
}

type cardMeta struct {
	PrettyName     string       `yaml:"pretty_name"`
	Language       []string     `yaml:"language"`
	TaskCategories []string     `yaml:"task_categories"`
	Size           []string     `yaml:"size_categories"`
	Configs        []cardConfig `yaml:"configs"`
}

// DatasetCard renders a README.md with Hub metadata front matter and the
// dataset statistics.
func DatasetCard(records []types.ExerciseRecord) ([]byte, error) {
	meta := cardMeta{
		PrettyName:     "LyTOC Benchmark",
		Language:       []string{"zh", "en"},
		TaskCategories: []string{"question-answering", "text-generation"},
		Size:           []string{sizeCategory(len(records))},
		Configs: []cardConfig{{
			ConfigName: "default",
			DataFiles:  []cardSplit{{Split: "train", Path: TrainSplitPath}},
		}},
	}
	front, err := yaml.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("encoding card metadata: %w", err)
	}

	stats := segment.Summarize(records)

	var b bytes.Buffer
	fmt.Fprintf(&b, "---\n%s---\n\n", front)
	b.WriteString("# LyTOC Benchmark\n\n")
	b.WriteString("Exercises from Theory of Computation homework, one record per atomic exercise or sub-problem.\n\n")
	b.WriteString("## Statistics\n\n")
	fmt.Fprintf(&b, "- Total exercises: %d\n", stats.Total)
	fmt.Fprintf(&b, "- Homeworks: %d\n", stats.Homeworks)
	fmt.Fprintf(&b, "- Exercises with sub-problems: %d\n\n", stats.WithSubProblems)
	b.WriteString("| Homework | Exercises |\n|---|---|\n")
	for _, hc := range stats.PerHomework {
		fmt.Fprintf(&b, "| %s | %d |\n", hc.Homework, hc.Count)
	}
	b.WriteString("\n## Fields\n\n")
	b.WriteString("| Field | Description |\n|---|---|\n")
	b.WriteString("| `homework` | Homework number |\n")
	b.WriteString("| `exercise_number` | Exercise label within the homework |\n")
	b.WriteString("| `sub_problem` | Sub-problem label, or null |\n")
	b.WriteString("| `content` | Exercise text |\n")
	b.WriteString("| `full_id` | `hw{homework}_ex{exercise}[_{sub_problem}]` |\n")
	return b.Bytes(), nil
}

func sizeCategory(n int) string {
	switch {
	case n < 1000:
		return "n<1K"
	case n < 10000:
		return "1K<n<10K"
	default:
		return "10K<n<100K"
	}
}
