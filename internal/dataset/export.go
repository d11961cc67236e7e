// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dataset persists the benchmark records: flat JSON, JSONL and YAML
// exports, and a queryable SQLite store.
package dataset

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/lytoc-benchmark/pkg/types"
)

// Output file names inside the dataset directory.
const (
	JSONFile  = "dataset.json"
	JSONLFile = "dataset.jsonl"
	YAMLFile  = "dataset.yaml"
	DBFile    = "dataset.db"
)

// EncodeJSON returns the records as an indented JSON array. Non-ASCII text
// and HTML characters are written as-is.
func EncodeJSON(records []types.ExerciseRecord) ([]byte, error) {
	if records == nil {
		records = []types.ExerciseRecord{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeJSONL writes one JSON object per record per line to w.
func EncodeJSONL(w io.Writer, records []types.ExerciseRecord) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("marshaling record %s: %w", r.FullID, err)
		}
	}
	return nil
}

// DecodeJSONL reads records written by EncodeJSONL. Blank lines are skipped.
func DecodeJSONL(r io.Reader) ([]types.ExerciseRecord, error) {
	var records []types.ExerciseRecord
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		data := bytes.TrimSpace(sc.Bytes())
		if len(data) == 0 {
			continue
		}
		var rec types.ExerciseRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading JSONL: %w", err)
	}
	return records, nil
}

// WriteJSON writes the records to path as an indented JSON array.
func WriteJSON(path string, records []types.ExerciseRecord) error {
	data, err := EncodeJSON(records)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// WriteJSONL writes the records to path, one per line.
func WriteJSONL(path string, records []types.ExerciseRecord) error {
	var buf bytes.Buffer
	if err := EncodeJSONL(&buf, records); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// ReadJSONL loads records from a JSONL file.
func ReadJSONL(path string) ([]types.ExerciseRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return DecodeJSONL(f)
}

// WriteYAML writes the records to path as a YAML sequence.
func WriteYAML(path string, records []types.ExerciseRecord) error {
	if records == nil {
		records = []types.ExerciseRecord{}
	}
	data, err := yaml.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
