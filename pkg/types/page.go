// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ExtractionStatus indicates the outcome of OCR extraction for one PDF.
type ExtractionStatus string

const (
	ExtractionNone    ExtractionStatus = "none"
	ExtractionDone    ExtractionStatus = "success"
	ExtractionPartial ExtractionStatus = "partial"
	ExtractionFailed  ExtractionStatus = "failed"
)

// PageContent is the OCR output of a single PDF page. It is written one per
// line to parsed_data/{stem}.jsonl.
type PageContent struct {
	// PageIndex is the zero-based page number.
	PageIndex int `json:"page_index" yaml:"page_index"`

	// Content is the normalized OCR markdown, empty when the page failed.
	Content string `json:"content" yaml:"content"`

	// Error records the failure message for this page.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// ExtractionEntry is the per-file record in extraction_metadata.json.
type ExtractionEntry struct {
	OriginalFile  string           `json:"original_file" yaml:"original_file"`
	ParsedFile    string           `json:"parsed_file,omitempty" yaml:"parsed_file,omitempty"`
	JSONLFile     string           `json:"jsonl_file,omitempty" yaml:"jsonl_file,omitempty"`
	Status        ExtractionStatus `json:"status" yaml:"status"`
	TotalPages    int              `json:"total_pages,omitempty" yaml:"total_pages,omitempty"`
	FailedPages   int              `json:"failed_pages,omitempty" yaml:"failed_pages,omitempty"`
	ContentLength int              `json:"content_length,omitempty" yaml:"content_length,omitempty"`
	Error         string           `json:"error,omitempty" yaml:"error,omitempty"`
}
