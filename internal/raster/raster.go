// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package raster counts PDF pages and renders single pages to PNG for OCR.
package raster

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/pdiddy/lytoc-benchmark/internal/container"
	"github.com/pdiddy/lytoc-benchmark/pkg/types"
)

const (
	binPdftoppm = "pdftoppm"
	defaultDPI  = 100
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

// ErrEmptyRender is returned when the renderer produced no image data.
var ErrEmptyRender = errors.New("renderer produced no output")

// PageCount returns the number of pages in the PDF at path.
func PageCount(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening PDF %s: %w", path, err)
	}
	defer f.Close()

	ctx, err := api.ReadValidateAndOptimize(f, model.NewDefaultConfiguration())
	if err != nil {
		return 0, fmt.Errorf("reading PDF %s: %w", path, err)
	}
	return ctx.PageCount, nil
}

// Renderer turns one PDF page into a PNG image.
type Renderer interface {
	// Name describes where rendering happens ("host", "docker", "podman").
	Name() string

	// Render returns the PNG bytes of page (1-based) of the PDF at pdfPath.
	Render(ctx context.Context, pdfPath string, page int) ([]byte, error)
}

// Exec runs pdftoppm with args, reading the PDF from stdin and writing the
// image to stdout.
type Exec func(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error

// HostExec runs the pdftoppm binary installed on the host.
func HostExec() Exec {
	return func(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
		return container.RunHost(ctx, binPdftoppm, args, stdin, stdout)
	}
}

// ContainerExec runs pdftoppm inside image using rt.
func ContainerExec(rt container.Runtime, image string) Exec {
	return func(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
		full := append([]string{binPdftoppm}, args...)
		return rt.Run(ctx, image, full, stdin, stdout)
	}
}

// PopplerRenderer renders pages with poppler's pdftoppm.
type PopplerRenderer struct {
	exec Exec
	dpi  int
	name string
}

// NewPopplerRenderer returns a renderer that runs pdftoppm through exec.
// A non-positive dpi uses the default of 100.
func NewPopplerRenderer(exec Exec, dpi int, name string) *PopplerRenderer {
	if dpi <= 0 {
		dpi = defaultDPI
	}
	return &PopplerRenderer{exec: exec, dpi: dpi, name: name}
}

// Name reports where pdftoppm runs.
func (p *PopplerRenderer) Name() string { return p.name }

// DPI returns the render resolution.
func (p *PopplerRenderer) DPI() int { return p.dpi }

// Render pipes the PDF into pdftoppm and returns the PNG it writes.
func (p *PopplerRenderer) Render(ctx context.Context, pdfPath string, page int) ([]byte, error) {
	if page < 1 {
		return nil, fmt.Errorf("page %d out of range", page)
	}

	f, err := os.Open(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", pdfPath, err)
	}
	defer f.Close()

	var out bytes.Buffer
	if err := p.exec(ctx, p.args(page), f, &out); err != nil {
		return nil, fmt.Errorf("rendering page %d of %s: %w", page, pdfPath, err)
	}
	if out.Len() == 0 {
		return nil, fmt.Errorf("rendering page %d of %s: %w", page, pdfPath, ErrEmptyRender)
	}
	if !bytes.HasPrefix(out.Bytes(), pngMagic) {
		return nil, fmt.Errorf("rendering page %d of %s: output is not a PNG image", page, pdfPath)
	}
	return out.Bytes(), nil
}

// args renders exactly one page from stdin to stdout.
func (p *PopplerRenderer) args(page int) []string {
	n := strconv.Itoa(page)
	return []string{
		"-png",
		"-r", strconv.Itoa(p.dpi),
		"-f", n,
		"-l", n,
		"-singlefile",
		"-",
	}
}

// Detect picks a renderer: pdftoppm on the host when installed, otherwise
// cfg.Image through docker or podman.
func Detect(cfg types.RasterConfig) (*PopplerRenderer, error) {
	if container.OnHost(binPdftoppm) {
		return NewPopplerRenderer(HostExec(), cfg.DPI, "host"), nil
	}

	rt, err := container.DetectRuntime()
	if err != nil {
		return nil, fmt.Errorf("%s not installed on host: %w", binPdftoppm, err)
	}
	if err := rt.ImageExists(cfg.Image); err != nil {
		return nil, fmt.Errorf("%s not installed on host and %w (try: %s pull %s)",
			binPdftoppm, err, rt.Name(), cfg.Image)
	}
	return NewPopplerRenderer(ContainerExec(rt, cfg.Image), cfg.DPI, rt.Name()), nil
}
