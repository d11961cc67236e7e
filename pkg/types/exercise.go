// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the lytoc-benchmark pipeline:
// homework documents, segmented spans, the exercise records that make up the
// dataset, per-page OCR output, and stage configuration.
package types

// HomeworkDocument is the full OCR markdown of one homework set. It is built
// by reading a single input file and is consumed once by the segmenter.
type HomeworkDocument struct {
	// ID is the homework number as a decimal string (e.g. "13" for hw13.md).
	ID string `json:"id" yaml:"id"`

	// Source is the path of the file the document was read from.
	Source string `json:"source" yaml:"source"`

	// Text is the raw OCR markdown.
	Text string `json:"-" yaml:"-"`
}

// ExerciseSpan is one numbered exercise as cut out of a homework document.
// Labels are not unique within a document.
type ExerciseSpan struct {
	Label string
	Body  string
}

// SubProblemSpan is one "N)" sub-problem of an exercise. Content carries the
// marker and, when the exercise has one, the shared intro text.
type SubProblemSpan struct {
	Label   string
	Content string
}

// ExerciseRecord is the unit of the benchmark dataset.
type ExerciseRecord struct {
	// Homework is "hw" followed by the homework number.
	Homework string `json:"homework" yaml:"homework"`

	// ExerciseNumber is the leading number of the exercise marker.
	ExerciseNumber string `json:"exercise_number" yaml:"exercise_number"`

	// SubProblem is the sub-problem label, nil for atomic exercises.
	SubProblem *string `json:"sub_problem" yaml:"sub_problem"`

	// Content is the exercise or sub-problem text.
	Content string `json:"content" yaml:"content"`

	// FullID is the composite key hw{n}_ex{exercise}[_{sub}].
	FullID string `json:"full_id" yaml:"full_id"`
}

// HasSubProblem reports whether the record is a sub-problem of an exercise.
func (r ExerciseRecord) HasSubProblem() bool {
	return r.SubProblem != nil && *r.SubProblem != ""
}

// HomeworkCount is the number of records produced for one homework.
type HomeworkCount struct {
	Homework string `json:"homework" yaml:"homework"`
	Count    int    `json:"count" yaml:"count"`
}

// DatasetStats summarizes a benchmark build.
type DatasetStats struct {
	Total           int             `json:"total" yaml:"total"`
	Homeworks       int             `json:"homeworks" yaml:"homeworks"`
	WithSubProblems int             `json:"with_sub_problems" yaml:"with_sub_problems"`
	Dropped         int             `json:"dropped" yaml:"dropped"`
	SkippedFiles    int             `json:"skipped_files" yaml:"skipped_files"`
	PerHomework     []HomeworkCount `json:"per_homework" yaml:"per_homework"`
}
