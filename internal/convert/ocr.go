// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/pdiddy/lytoc-benchmark/internal/logging"
	"github.com/pdiddy/lytoc-benchmark/internal/ocr"
	"github.com/pdiddy/lytoc-benchmark/internal/raster"
	"github.com/pdiddy/lytoc-benchmark/pkg/types"
)

// OCRConverter renders each page to an image and sends it through OCR.
type OCRConverter struct {
	renderer   raster.Renderer
	recognizer ocr.Recognizer
	pageCount  func(path string) (int, error)
	logger     *log.Logger
}

// NewOCRConverter creates a converter from a page renderer and an OCR
// recognizer.
func NewOCRConverter(r raster.Renderer, rec ocr.Recognizer, logger *log.Logger) *OCRConverter {
	return &OCRConverter{
		renderer:   r,
		recognizer: rec,
		pageCount:  raster.PageCount,
		logger:     logging.OrDiscard(logger),
	}
}

// Convert processes every page of pdfPath in order. Pages that fail to
// render or recognize carry the error and empty content; the remaining
// pages are still processed.
func (o *OCRConverter) Convert(ctx context.Context, pdfPath string) ([]types.PageContent, error) {
	n, err := o.pageCount(pdfPath)
	if err != nil {
		return nil, err
	}
	o.logger.Info("processing PDF", "file", pdfPath, "pages", n, "renderer", o.renderer.Name())

	pages := make([]types.PageContent, 0, n)
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page := types.PageContent{PageIndex: i}
		text, err := o.page(ctx, pdfPath, i+1)
		if err != nil {
			o.logger.Warn("page failed", "file", pdfPath, "page", i, "err", err)
			page.Error = err.Error()
		} else {
			page.Content = ocr.NormalizePunctuation(text)
		}
		pages = append(pages, page)
	}
	return pages, nil
}

func (o *OCRConverter) page(ctx context.Context, pdfPath string, n int) (string, error) {
	img, err := o.renderer.Render(ctx, pdfPath, n)
	if err != nil {
		return "", err
	}
	text, err := o.recognizer.Recognize(ctx, img)
	if err != nil {
		return "", fmt.Errorf("recognizing page %d: %w", n, err)
	}
	return text, nil
}
