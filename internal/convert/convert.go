// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns homework PDFs into per-page OCR text and the
// markdown files the benchmark stage reads.
package convert

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/lytoc-benchmark/pkg/types"
)

// MetadataFile is written to the parsed directory after every batch.
const MetadataFile = "extraction_metadata.json"

// pageSeparator joins non-empty pages in the markdown output.
const pageSeparator = "\n\n---\n\n"

// ErrNoPDFs is returned when the raw directory holds no PDF files.
var ErrNoPDFs = errors.New("no PDF files found")

// Converter transforms a PDF into its pages' text. A page-level failure is
// recorded in the returned PageContent; an error means the document as a
// whole could not be read.
type Converter interface {
	Convert(ctx context.Context, pdfPath string) ([]types.PageContent, error)
}

// BatchResult holds the outcome of a batch extraction run.
type BatchResult struct {
	Extracted int
	Partial   int
	Skipped   int
	Failed    int
}

// Total returns the total number of PDFs processed.
func (r BatchResult) Total() int {
	return r.Extracted + r.Partial + r.Skipped + r.Failed
}

// HasFailures reports whether any PDF failed extraction.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// JoinPages concatenates the non-empty page contents with a horizontal rule.
func JoinPages(pages []types.PageContent) string {
	parts := make([]string, 0, len(pages))
	for _, p := range pages {
		if p.Content != "" {
			parts = append(parts, p.Content)
		}
	}
	return strings.Join(parts, pageSeparator)
}

// ExtractFile converts one PDF and writes {stem}.md and {stem}.jsonl to
// parsedDir. When the markdown output exists and force is false the file is
// skipped and ExtractionNone is returned in the entry status.
func ExtractFile(ctx context.Context, c Converter, pdfPath, parsedDir string, force bool, w io.Writer) types.ExtractionEntry {
	name := filepath.Base(pdfPath)
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	mdPath := filepath.Join(parsedDir, stem+".md")
	jsonlPath := filepath.Join(parsedDir, stem+".jsonl")

	entry := types.ExtractionEntry{OriginalFile: name}
	fail := func(err error) types.ExtractionEntry {
		fmt.Fprintf(w, "failed:    %s (%v)\n", name, err)
		entry.Status = types.ExtractionFailed
		entry.Error = err.Error()
		return entry
	}

	if !force {
		if _, err := os.Stat(mdPath); err == nil {
			fmt.Fprintf(w, "skipped:   %s (already exists)\n", name)
			entry.Status = types.ExtractionNone
			entry.ParsedFile = mdPath
			return entry
		}
	}

	if err := os.MkdirAll(parsedDir, 0o755); err != nil {
		return fail(err)
	}

	pages, err := c.Convert(ctx, pdfPath)
	if err != nil {
		return fail(err)
	}

	entry.TotalPages = len(pages)
	for _, p := range pages {
		if p.Error != "" {
			entry.FailedPages++
		}
	}

	if err := writePages(jsonlPath, pages); err != nil {
		return fail(err)
	}
	entry.JSONLFile = jsonlPath

	if entry.TotalPages > 0 && entry.FailedPages == entry.TotalPages {
		return fail(fmt.Errorf("all %d pages failed", entry.TotalPages))
	}

	markdown := JoinPages(pages)
	if err := os.WriteFile(mdPath, []byte(markdown), 0o644); err != nil {
		return fail(err)
	}
	entry.ParsedFile = mdPath
	entry.ContentLength = utf8.RuneCountInString(markdown)

	if entry.FailedPages > 0 {
		entry.Status = types.ExtractionPartial
		fmt.Fprintf(w, "partial:   %s (%d pages, %d failed, %d characters)\n",
			name, entry.TotalPages, entry.FailedPages, entry.ContentLength)
		return entry
	}

	entry.Status = types.ExtractionDone
	fmt.Fprintf(w, "extracted: %s (%d pages, %d characters)\n", name, entry.TotalPages, entry.ContentLength)
	return entry
}

// ExtractBatch converts every PDF in cfg.RawDir, in name order, and records
// the per-file outcome in cfg.ParsedDir/extraction_metadata.json. Entries for
// skipped files keep their previous metadata.
func ExtractBatch(ctx context.Context, c Converter, cfg types.ExtractionConfig, w io.Writer) (BatchResult, error) {
	var result BatchResult

	pdfs, err := ListPDFs(cfg.RawDir)
	if err != nil {
		return result, err
	}
	if len(pdfs) == 0 {
		return result, fmt.Errorf("%w in %s", ErrNoPDFs, cfg.RawDir)
	}
	fmt.Fprintf(w, "Found %d PDF files to process\n", len(pdfs))

	metaPath := filepath.Join(cfg.ParsedDir, MetadataFile)
	meta, err := ReadMetadata(metaPath)
	if err != nil {
		return result, err
	}

	for _, pdf := range pdfs {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		entry := ExtractFile(ctx, c, pdf, cfg.ParsedDir, cfg.Force, w)
		stem := strings.TrimSuffix(entry.OriginalFile, filepath.Ext(entry.OriginalFile))

		switch entry.Status {
		case types.ExtractionDone:
			result.Extracted++
		case types.ExtractionPartial:
			result.Partial++
		case types.ExtractionNone:
			result.Skipped++
			if _, ok := meta[stem]; ok {
				continue
			}
		case types.ExtractionFailed:
			result.Failed++
		}
		meta[stem] = entry
	}

	if err := WriteMetadata(metaPath, meta); err != nil {
		return result, err
	}

	fmt.Fprintf(w, "\nBatch summary: %d extracted, %d partial, %d skipped, %d failed (total: %d)\n",
		result.Extracted, result.Partial, result.Skipped, result.Failed, result.Total())
	fmt.Fprintf(w, "Metadata saved to: %s\n", metaPath)
	return result, nil
}

// ListPDFs returns the *.pdf files in dir sorted by name.
func ListPDFs(dir string) ([]string, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("raw directory %s: %w", dir, err)
	}
	pdfs, err := filepath.Glob(filepath.Join(dir, "*.pdf"))
	if err != nil {
		return nil, fmt.Errorf("listing PDFs in %s: %w", dir, err)
	}
	sort.Strings(pdfs)
	return pdfs, nil
}

// ReadMetadata loads extraction_metadata.json. A missing file yields an
// empty map.
func ReadMetadata(path string) (map[string]types.ExtractionEntry, error) {
	meta := make(map[string]types.ExtractionEntry)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return meta, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return meta, nil
}

// WriteMetadata writes the metadata map as indented JSON keyed by file stem.
func WriteMetadata(path string, meta map[string]types.ExtractionEntry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return fmt.Errorf("encoding metadata: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func writePages(path string, pages []types.PageContent) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	for _, p := range pages {
		if err := enc.Encode(p); err != nil {
			return fmt.Errorf("encoding page %d: %w", p.PageIndex, err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
