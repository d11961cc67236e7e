// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package doctor checks that the workspace is ready to run the pipeline.
package doctor

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pdiddy/lytoc-benchmark/internal/convert"
	"github.com/pdiddy/lytoc-benchmark/internal/secrets"
	"github.com/pdiddy/lytoc-benchmark/pkg/types"
)

// Check is the outcome of one environment check.
type Check struct {
	Section string
	Name    string
	OK      bool
	Detail  string
}

// Report collects all checks of one run.
type Report struct {
	Checks []Check
}

// Passed reports whether every check succeeded.
func (r Report) Passed() bool {
	for _, c := range r.Checks {
		if !c.OK {
			return false
		}
	}
	return true
}

// Failed returns the checks that did not pass.
func (r Report) Failed() []Check {
	var out []Check
	for _, c := range r.Checks {
		if !c.OK {
			out = append(out, c)
		}
	}
	return out
}

// Env carries what the checks inspect besides the pipeline config.
type Env struct {
	// ConfigFile is the config file in use, empty when none was found.
	ConfigFile string

	// Secrets is the loaded .secrets/ map.
	Secrets map[string]string

	// Renderer probes for a page renderer and returns its name.
	Renderer func() (string, error)
}

var (
	sectionStyle = lipgloss.NewStyle().Bold(true)
	okMark       = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Render("✓")
	failMark     = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Render("✗")
)

// Run performs every check, prints the results to w and returns them.
func Run(cfg types.PipelineConfig, env Env, w io.Writer) Report {
	var r Report
	rule := strings.Repeat("=", 60)
	fmt.Fprintf(w, "LyTOC Benchmark Environment Check\n%s\n", rule)

	section := ""
	add := func(c Check) {
		if c.Section != section {
			section = c.Section
			fmt.Fprintf(w, "\n%s\n", sectionStyle.Render(section+":"))
		}
		mark := okMark
		if !c.OK {
			mark = failMark
		}
		fmt.Fprintf(w, "%s %s: %s\n", mark, c.Name, c.Detail)
		r.Checks = append(r.Checks, c)
	}

	for _, c := range fileChecks(cfg, env) {
		add(c)
	}
	for _, c := range tokenChecks(env.Secrets) {
		add(c)
	}
	add(rendererCheck(env.Renderer))

	fmt.Fprintf(w, "\n%s\n", rule)
	if r.Passed() {
		fmt.Fprintln(w, "All checks passed! You're ready to run the pipeline.")
		fmt.Fprintln(w, "\nNext steps:")
		fmt.Fprintln(w, "  lytoc-benchmark pipeline")
		fmt.Fprintln(w, "  or")
		fmt.Fprintln(w, "  lytoc-benchmark extract")
	} else {
		fmt.Fprintln(w, "Some checks failed. Please fix the issues above.")
		fmt.Fprintln(w, "\nCommon fixes:")
		for i, fix := range fixes(r.Failed()) {
			fmt.Fprintf(w, "  %d. %s\n", i+1, fix)
		}
	}
	fmt.Fprintln(w, rule)
	return r
}

func fileChecks(cfg types.PipelineConfig, env Env) []Check {
	const section = "Files"
	var checks []Check

	if env.ConfigFile != "" {
		checks = append(checks, Check{Section: section, Name: "Config file", OK: true, Detail: env.ConfigFile})
	} else {
		checks = append(checks, Check{Section: section, Name: "Config file", OK: true, Detail: "not found, using defaults"})
	}

	raw := cfg.Extraction.RawDir
	info, err := os.Stat(raw)
	if err != nil || !info.IsDir() {
		return append(checks,
			Check{Section: section, Name: "Raw PDF directory", Detail: raw + " not found"},
			Check{Section: section, Name: "PDF files", Detail: "no " + raw + " directory"},
		)
	}
	checks = append(checks, Check{Section: section, Name: "Raw PDF directory", OK: true, Detail: raw})

	pdfs, err := convert.ListPDFs(raw)
	switch {
	case err != nil:
		checks = append(checks, Check{Section: section, Name: "PDF files", Detail: err.Error()})
	case len(pdfs) == 0:
		checks = append(checks, Check{Section: section, Name: "PDF files", Detail: "no PDF files in " + raw})
	default:
		checks = append(checks, Check{Section: section, Name: "PDF files", OK: true, Detail: fmt.Sprintf("found %d", len(pdfs))})
	}
	return checks
}

func tokenChecks(s map[string]string) []Check {
	var checks []Check
	for _, key := range []string{secrets.KeyOCRToken, secrets.KeyHFToken} {
		c := Check{Section: "Tokens", Name: key}
		if _, src := secrets.Resolve(s, key); src != "" {
			c.OK = true
			c.Detail = "set (" + src + ")"
		} else {
			c.Detail = "not set or using placeholder value"
		}
		checks = append(checks, c)
	}
	return checks
}

func rendererCheck(probe func() (string, error)) Check {
	c := Check{Section: "Tools", Name: "Page renderer"}
	if probe == nil {
		c.Detail = "no probe configured"
		return c
	}
	name, err := probe()
	if err != nil {
		c.Detail = err.Error()
		return c
	}
	c.OK = true
	c.Detail = "pdftoppm via " + name
	return c
}

func fixes(failed []Check) []string {
	var out []string
	seen := map[string]bool{}
	add := func(s string) {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	for _, c := range failed {
		switch c.Name {
		case "Raw PDF directory", "PDF files":
			add("Add homework PDF files to the raw/ directory (mage init creates it)")
		case secrets.KeyOCRToken:
			add("Write your SimpleTex token to .secrets/ocr-token (https://simpletex.cn)")
		case secrets.KeyHFToken:
			add("Write your Hugging Face token to .secrets/hf-token (needed only for upload)")
		case "Page renderer":
			add("Install poppler-utils, or docker/podman with the poppler image")
		}
	}
	return out
}
