// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package benchmark

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/pdiddy/lytoc-benchmark/internal/dataset"
	"github.com/pdiddy/lytoc-benchmark/internal/logging"
	"github.com/pdiddy/lytoc-benchmark/internal/segment"
	"github.com/pdiddy/lytoc-benchmark/pkg/types"
)

// ErrNoHomework is returned when the input directory has no usable homework files.
var ErrNoHomework = errors.New("no homework markdown files found")

// ErrNoExercises is returned when segmentation produced no records at all.
var ErrNoExercises = errors.New("no exercises found, check the parsing logic")

// Dataset is a built benchmark: records in output order plus statistics.
type Dataset = segment.Batch

// Build segments docs in order, printing one status line per homework to w.
func Build(docs []types.HomeworkDocument, a *segment.Assembler, w io.Writer) Dataset {
	return a.AssembleAll(docs, func(doc types.HomeworkDocument, res segment.DocumentResult) {
		fmt.Fprintf(w, "hw%s: %d exercises\n", doc.ID, len(res.Records))
	})
}

// Create reads cfg.ParsedDir, builds the dataset and writes dataset.json,
// dataset.jsonl, dataset.yaml and dataset.db to cfg.OutputDir. Progress and
// statistics go to w.
func Create(ctx context.Context, cfg types.BenchmarkConfig, logger *log.Logger, w io.Writer) (Dataset, error) {
	logger = logging.OrDiscard(logger)

	docs, loaded, err := LoadDocuments(cfg.ParsedDir, logger)
	if err != nil {
		return Dataset{}, err
	}
	if len(docs) == 0 {
		return Dataset{}, fmt.Errorf("%s: %w", cfg.ParsedDir, ErrNoHomework)
	}

	fmt.Fprintf(w, "Found %d homework files\n", len(docs))
	fmt.Fprintln(w, strings.Repeat("=", 60))

	ds := Build(docs, segment.NewAssembler(cfg.Segment, logger), w)
	ds.Stats.SkippedFiles = loaded.Skipped

	fmt.Fprintf(w, "\n%s\nTotal exercises extracted: %d\n", strings.Repeat("=", 60), len(ds.Records))
	if len(ds.Records) == 0 {
		return ds, ErrNoExercises
	}

	if err := Write(ctx, cfg.OutputDir, ds.Records, w); err != nil {
		return ds, err
	}

	Report(w, ds)

	if loaded.Failed > 0 {
		return ds, fmt.Errorf("%d homework file(s) could not be read", loaded.Failed)
	}
	return ds, nil
}

// Write persists records in every output format under dir.
func Write(ctx context.Context, dir string, records []types.ExerciseRecord, w io.Writer) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	files := []struct {
		name  string
		write func(string, []types.ExerciseRecord) error
	}{
		{dataset.JSONFile, dataset.WriteJSON},
		{dataset.JSONLFile, dataset.WriteJSONL},
		{dataset.YAMLFile, dataset.WriteYAML},
	}
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if err := f.write(path, records); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		fmt.Fprintf(w, "saved: %s\n", path)
	}

	store, err := dataset.Open(dir)
	if err != nil {
		return err
	}
	defer store.Close()
	if err := store.Replace(ctx, records); err != nil {
		return fmt.Errorf("storing dataset: %w", err)
	}
	fmt.Fprintf(w, "saved: %s\n", filepath.Join(dir, dataset.DBFile))
	return nil
}

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	labelStyle   = lipgloss.NewStyle().Width(30)
)

// Report prints the dataset statistics, a sample record and the per-homework
// breakdown.
func Report(w io.Writer, ds Dataset) {
	rule := strings.Repeat("=", 60)
	s := ds.Stats

	fmt.Fprintf(w, "\n%s\n%s\n", rule, headingStyle.Render("Dataset Statistics:"))
	for _, row := range []struct {
		label string
		value int
	}{
		{"Total exercises:", s.Total},
		{"Homeworks:", s.Homeworks},
		{"Exercises with sub-problems:", s.WithSubProblems},
		{"Dropped short segments:", s.Dropped},
		{"Skipped files:", s.SkippedFiles},
	} {
		fmt.Fprintf(w, "  %s%d\n", labelStyle.Render(row.label), row.value)
	}

	if len(ds.Records) > 0 {
		sample := ds.Records[0]
		fmt.Fprintf(w, "\n%s\n%s\n", rule, headingStyle.Render("Sample Exercise:"))
		fmt.Fprintf(w, "  ID: %s\n", sample.FullID)
		fmt.Fprintf(w, "  Homework: %s\n", sample.Homework)
		fmt.Fprintf(w, "  Exercise: %s\n", sample.ExerciseNumber)
		if sample.HasSubProblem() {
			fmt.Fprintf(w, "  Sub-problem: %s\n", *sample.SubProblem)
		}
		fmt.Fprintf(w, "  Content preview: %s...\n", preview(sample.Content, 200))
	}

	fmt.Fprintf(w, "\n%s\n%s\n", rule, headingStyle.Render("Breakdown by Homework:"))
	for _, hc := range s.PerHomework {
		fmt.Fprintf(w, "  %s: %d exercises\n", hc.Homework, hc.Count)
	}
}

// preview returns at most n runes of s.
func preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
