package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "lytoc-benchmark/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`

	// MaxRetries bounds retries on HTTP 429 responses (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// RasterConfig holds settings for rendering PDF pages to images.
type RasterConfig struct {
	// DPI is the render resolution (default 100).
	DPI int `json:"dpi" yaml:"dpi" mapstructure:"dpi"`

	// Image is the container image that provides pdftoppm. It is used only
	// when pdftoppm is not installed on the host.
	Image string `json:"image" yaml:"image" mapstructure:"image"`
}

// OCRConfig holds settings for the SimpleTex document OCR API.
type OCRConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Endpoint is the doc_ocr URL.
	Endpoint string `json:"endpoint" yaml:"endpoint" mapstructure:"endpoint"`

	// Token is the SimpleTex user access token. It is never read from the
	// process environment by the OCR client.
	Token string `json:"-" yaml:"-" mapstructure:"-"`
}

// ExtractionConfig holds settings for the PDF extraction stage.
type ExtractionConfig struct {
	// RawDir holds the input PDFs.
	RawDir string `json:"raw_dir" yaml:"raw_dir" mapstructure:"raw_dir"`

	// ParsedDir receives {stem}.md, {stem}.jsonl and extraction_metadata.json.
	ParsedDir string `json:"parsed_dir" yaml:"parsed_dir" mapstructure:"parsed_dir"`

	// Force re-extracts PDFs whose markdown output already exists.
	Force bool `json:"force" yaml:"force" mapstructure:"force"`

	Raster RasterConfig `json:"raster" yaml:"raster" mapstructure:"raster"`
	OCR    OCRConfig    `json:"ocr" yaml:"ocr" mapstructure:"ocr"`
}

// DuplicatePolicy selects how colliding full_id values are handled.
type DuplicatePolicy string

const (
	// DuplicatesPreserve keeps colliding full_id values as they are.
	DuplicatesPreserve DuplicatePolicy = "preserve"
	// DuplicatesSuffix appends -2, -3, ... to later occurrences of a full_id.
	DuplicatesSuffix DuplicatePolicy = "suffix"
)

// SegmentConfig holds settings for splitting homework markdown into exercises.
type SegmentConfig struct {
	// MinContentLength is the shortest atomic exercise kept (default 10).
	// Sub-problems are never filtered by length.
	MinContentLength int `json:"min_content_length" yaml:"min_content_length" mapstructure:"min_content_length"`

	// DuplicateIDs selects the full_id collision policy (default preserve).
	DuplicateIDs DuplicatePolicy `json:"duplicate_ids" yaml:"duplicate_ids" mapstructure:"duplicate_ids"`
}

// BenchmarkConfig holds settings for the dataset creation stage.
type BenchmarkConfig struct {
	// ParsedDir holds the per-homework markdown files.
	ParsedDir string `json:"parsed_dir" yaml:"parsed_dir" mapstructure:"parsed_dir"`

	// OutputDir receives dataset.json, dataset.jsonl, dataset.yaml and dataset.db.
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	Segment SegmentConfig `json:"segment" yaml:"segment" mapstructure:"segment"`
}

// HubConfig holds settings for publishing the dataset to the Hugging Face Hub.
type HubConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// BaseURL is the Hub endpoint (default https://huggingface.co).
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// RepoID is the dataset repository, "user/name".
	RepoID string `json:"repo_id" yaml:"repo_id" mapstructure:"repo_id"`

	// Private creates the repository as private.
	Private bool `json:"private" yaml:"private" mapstructure:"private"`

	// DatasetDir is the local dataset directory to publish.
	DatasetDir string `json:"dataset_dir" yaml:"dataset_dir" mapstructure:"dataset_dir"`

	// ReadmePath is an optional dataset card uploaded as README.md.
	ReadmePath string `json:"readme_path" yaml:"readme_path" mapstructure:"readme_path"`

	// Token is the Hub access token.
	Token string `json:"-" yaml:"-" mapstructure:"-"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	Extraction ExtractionConfig `json:"extraction" yaml:"extraction" mapstructure:"extraction"`
	Benchmark  BenchmarkConfig  `json:"benchmark" yaml:"benchmark" mapstructure:"benchmark"`
	Hub        HubConfig        `json:"hub" yaml:"hub" mapstructure:"hub"`
}

// DefaultPipelineConfig returns the configuration used when no config file
// or flag overrides a value.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		Extraction: ExtractionConfig{
			RawDir:    "raw",
			ParsedDir: "parsed_data",
			Raster: RasterConfig{
				DPI:   100,
				Image: "minidocks/poppler:latest",
			},
			OCR: OCRConfig{
				HTTPConfig: HTTPConfig{
					Timeout:    2 * time.Minute,
					UserAgent:  "lytoc-benchmark/0.1",
					MaxRetries: 5,
				},
				Endpoint: "https://server.simpletex.cn/api/doc_ocr/",
			},
		},
		Benchmark: BenchmarkConfig{
			ParsedDir: "parsed_data",
			OutputDir: "benchmark_dataset",
			Segment: SegmentConfig{
				MinContentLength: 10,
				DuplicateIDs:     DuplicatesPreserve,
			},
		},
		Hub: HubConfig{
			HTTPConfig: HTTPConfig{
				Timeout:    5 * time.Minute,
				UserAgent:  "lytoc-benchmark/0.1",
				MaxRetries: 5,
			},
			BaseURL:    "https://huggingface.co",
			DatasetDir: "benchmark_dataset",
			ReadmePath: "HF_README.md",
		},
	}
}
