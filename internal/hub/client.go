// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package hub publishes the benchmark dataset to the Hugging Face Hub over
// its HTTP API.
package hub

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/pdiddy/lytoc-benchmark/internal/httputil"
	"github.com/pdiddy/lytoc-benchmark/internal/logging"
	"github.com/pdiddy/lytoc-benchmark/pkg/types"
)

// ErrMissingToken is returned when no Hub token is configured.
var ErrMissingToken = errors.New("Hub token not configured")

// ErrBadRepoID is returned for repository ids not of the form "user/name".
var ErrBadRepoID = errors.New(`repository id must look like "user/name"`)

const maxErrorBody = 512

// File is one file in a commit.
type File struct {
	// Path is the destination inside the repository.
	Path    string
	Content []byte
}

// Client talks to the Hub API.
type Client struct {
	HTTP       *http.Client
	BaseURL    string
	Token      string
	UserAgent  string
	MaxRetries int
	Logger     *log.Logger
}

// NewClient builds a Client from cfg.
func NewClient(cfg types.HubConfig, logger *log.Logger) *Client {
	return &Client{
		HTTP:       httputil.NewClient(cfg.Timeout),
		BaseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		Token:      cfg.Token,
		UserAgent:  cfg.UserAgent,
		MaxRetries: cfg.MaxRetries,
		Logger:     logging.OrDiscard(logger),
	}
}

// SplitRepoID splits "user/name" into namespace and name.
func SplitRepoID(repoID string) (namespace, name string, err error) {
	namespace, name, ok := strings.Cut(repoID, "/")
	if !ok || namespace == "" || name == "" || strings.Contains(name, "/") {
		return "", "", fmt.Errorf("%w, got %q", ErrBadRepoID, repoID)
	}
	return namespace, name, nil
}

// DatasetURL returns the browser URL of a dataset repository.
func (c *Client) DatasetURL(repoID string) string {
	return c.BaseURL + "/datasets/" + repoID
}

type createRepoRequest struct {
	Type         string `json:"type"`
	Name         string `json:"name"`
	Organization string `json:"organization"`
	Private      bool   `json:"private"`
}

// CreateRepo creates a dataset repository. An existing repository is not
// an error; created reports whether a new one was made.
func (c *Client) CreateRepo(ctx context.Context, repoID string, private bool) (created bool, err error) {
	namespace, name, err := SplitRepoID(repoID)
	if err != nil {
		return false, err
	}
	body, err := json.Marshal(createRepoRequest{
		Type:         "dataset",
		Name:         name,
		Organization: namespace,
		Private:      private,
	})
	if err != nil {
		return false, fmt.Errorf("encoding create request: %w", err)
	}

	resp, err := c.do(ctx, "/api/repos/create", "application/json", body)
	if err != nil {
		return false, fmt.Errorf("creating repository %s: %w", repoID, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusConflict:
		c.Logger.Debug("repository exists", "repo", repoID)
		return false, nil
	case resp.StatusCode >= 200 && resp.StatusCode <= 299:
		return true, nil
	default:
		return false, fmt.Errorf("creating repository %s: %w", repoID, statusError(resp))
	}
}

type commitLine struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

type commitHeader struct {
	Summary     string `json:"summary"`
	Description string `json:"description"`
}

type commitFile struct {
	Content  string `json:"content"`
	Path     string `json:"path"`
	Encoding string `json:"encoding"`
}

// EncodeCommit renders the NDJSON body of a commit: one header line
// followed by one base64 file line per file.
func EncodeCommit(summary string, files []File) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(commitLine{Key: "header", Value: commitHeader{Summary: summary}}); err != nil {
		return nil, err
	}
	for _, f := range files {
		line := commitLine{Key: "file", Value: commitFile{
			Content:  base64.StdEncoding.EncodeToString(f.Content),
			Path:     f.Path,
			Encoding: "base64",
		}}
		if err := enc.Encode(line); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// UploadFiles commits files to the main branch of a dataset repository in
// a single commit.
func (c *Client) UploadFiles(ctx context.Context, repoID string, files []File, summary string) error {
	if _, _, err := SplitRepoID(repoID); err != nil {
		return err
	}
	body, err := EncodeCommit(summary, files)
	if err != nil {
		return fmt.Errorf("encoding commit: %w", err)
	}

	resp, err := c.do(ctx, "/api/datasets/"+repoID+"/commit/main", "application/x-ndjson", body)
	if err != nil {
		return fmt.Errorf("committing to %s: %w", repoID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("committing to %s: %w", repoID, statusError(resp))
	}
	io.Copy(io.Discard, resp.Body)
	return nil
}

func (c *Client) do(ctx context.Context, path, contentType string, body []byte) (*http.Response, error) {
	if c.Token == "" {
		return nil, ErrMissingToken
	}
	u, err := url.JoinPath(c.BaseURL, path)
	if err != nil {
		return nil, fmt.Errorf("building URL: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("Content-Type", contentType)
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	return httputil.DoWithRetry(ctx, c.HTTP, req, c.MaxRetries, c.Logger)
}

func statusError(resp *http.Response) error {
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var apiErr struct {
		Error string `json:"error"`
	}
	msg := strings.TrimSpace(string(snippet))
	if json.Unmarshal(snippet, &apiErr) == nil && apiErr.Error != "" {
		msg = apiErr.Error
	}
	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("HTTP 401 (check hf-token): %s", msg)
	}
	return fmt.Errorf("HTTP %d: %s", resp.StatusCode, msg)
}
