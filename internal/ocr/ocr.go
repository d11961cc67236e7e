// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ocr sends rendered page images to the SimpleTex document OCR API
// and normalizes the returned text.
package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/pdiddy/lytoc-benchmark/internal/httputil"
	"github.com/pdiddy/lytoc-benchmark/internal/logging"
	"github.com/pdiddy/lytoc-benchmark/pkg/types"
)

// ErrMissingToken is returned when the client has no API token.
var ErrMissingToken = errors.New("OCR token not configured")

// maxErrorBody bounds how much of an error response is quoted back.
const maxErrorBody = 512

// Recognizer turns one page image into text.
type Recognizer interface {
	Recognize(ctx context.Context, image []byte) (string, error)
}

// Client calls the SimpleTex doc_ocr endpoint.
type Client struct {
	HTTP       *http.Client
	Endpoint   string
	Token      string
	UserAgent  string
	MaxRetries int
	Logger     *log.Logger
}

// NewClient builds a Client from cfg.
func NewClient(cfg types.OCRConfig, logger *log.Logger) *Client {
	return &Client{
		HTTP:       httputil.NewClient(cfg.Timeout),
		Endpoint:   cfg.Endpoint,
		Token:      cfg.Token,
		UserAgent:  cfg.UserAgent,
		MaxRetries: cfg.MaxRetries,
		Logger:     logging.OrDiscard(logger),
	}
}

type docOCRResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	ReqID   string `json:"request_id"`
	Res     struct {
		Content string `json:"content"`
	} `json:"res"`
}

// Recognize uploads image as the multipart field "file" and returns the
// recognized markdown content.
func (c *Client) Recognize(ctx context.Context, image []byte) (string, error) {
	if c.Token == "" {
		return "", ErrMissingToken
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "page.png")
	if err != nil {
		return "", fmt.Errorf("building upload: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return "", fmt.Errorf("building upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("building upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body.Bytes()))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("token", c.Token)
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	start := time.Now()
	resp, err := httputil.DoWithRetry(ctx, c.HTTP, req, c.MaxRetries, c.Logger)
	if err != nil {
		return "", fmt.Errorf("OCR API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", fmt.Errorf("OCR API returned HTTP %d: %s", resp.StatusCode, bytes.TrimSpace(snippet))
	}

	var r docOCRResponse
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return "", fmt.Errorf("parsing OCR response: %w", err)
	}
	if !r.Status {
		msg := r.Message
		if msg == "" {
			msg = "status false"
		}
		return "", fmt.Errorf("OCR API rejected request: %s", msg)
	}

	c.Logger.Debug("page recognized", "bytes", len(image), "chars", len(r.Res.Content),
		"request_id", r.ReqID, "elapsed", time.Since(start).Round(time.Millisecond))
	return r.Res.Content, nil
}
