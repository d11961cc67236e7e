// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/lytoc-benchmark/internal/logging"
)

type fakeRenderer struct {
	fail map[int]bool
}

func (f *fakeRenderer) Name() string { return "fake" }

func (f *fakeRenderer) Render(_ context.Context, _ string, page int) ([]byte, error) {
	if f.fail[page] {
		return nil, errors.New("render failed")
	}
	return []byte{byte(page)}, nil
}

type fakeRecognizer struct {
	texts map[byte]string
}

func (f *fakeRecognizer) Recognize(_ context.Context, img []byte) (string, error) {
	text, ok := f.texts[img[0]]
	if !ok {
		return "", errors.New("HTTP 500")
	}
	return text, nil
}

func newTestOCRConverter(pages int, r *fakeRenderer, rec *fakeRecognizer) *OCRConverter {
	c := NewOCRConverter(r, rec, logging.Discard())
	c.pageCount = func(string) (int, error) { return pages, nil }
	return c
}

func TestOCRConverter_Convert(t *testing.T) {
	rec := &fakeRecognizer{texts: map[byte]string{
		1: "1 (a) 设 x，y 为实数。",
		3: "2 【注】",
	}}
	c := newTestOCRConverter(3, &fakeRenderer{}, rec)

	pages, err := c.Convert(context.Background(), "hw1.pdf")
	require.NoError(t, err)
	require.Len(t, pages, 3)

	assert.Equal(t, 0, pages[0].PageIndex)
	assert.Equal(t, "1 (a) 设 x,y 为实数.", pages[0].Content)

	assert.Equal(t, 1, pages[1].PageIndex)
	assert.Empty(t, pages[1].Content)
	assert.Contains(t, pages[1].Error, "recognizing page 2")

	assert.Equal(t, "2 [注]", pages[2].Content)
	assert.Empty(t, pages[2].Error)
}

func TestOCRConverter_RenderFailure(t *testing.T) {
	rec := &fakeRecognizer{texts: map[byte]string{1: "a", 2: "b"}}
	c := newTestOCRConverter(2, &fakeRenderer{fail: map[int]bool{1: true}}, rec)

	pages, err := c.Convert(context.Background(), "hw1.pdf")
	require.NoError(t, err)
	assert.Equal(t, "render failed", pages[0].Error)
	assert.Equal(t, "b", pages[1].Content)
}

func TestOCRConverter_PageCountError(t *testing.T) {
	c := newTestOCRConverter(0, &fakeRenderer{}, &fakeRecognizer{})
	c.pageCount = func(string) (int, error) { return 0, errors.New("bad xref") }

	_, err := c.Convert(context.Background(), "hw1.pdf")
	assert.EqualError(t, err, "bad xref")
}

func TestOCRConverter_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := newTestOCRConverter(2, &fakeRenderer{}, &fakeRecognizer{})

	_, err := c.Convert(ctx, "hw1.pdf")
	assert.ErrorIs(t, err, context.Canceled)
}
