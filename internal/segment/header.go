// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package segment splits the OCR markdown of one homework into exercises and
// sub-problems using only line-start numbering patterns, and assembles the
// resulting spans into dataset records.
//
// The pipeline per document is StripHeader, TokenizeExercises, CleanTrailing
// and SplitSubProblems, driven by Assembler. Nothing in this package performs
// I/O or returns an error: malformed input yields fewer records.
package segment

import (
	"regexp"
	"strings"
)

// annotatedMarkerRe matches the first line of an exercise that carries an
// annotation, e.g. "1 (30')." Plain "1." lines in a title block do not match.
var annotatedMarkerRe = regexp.MustCompile(`^` + digitClass + `+` + spaceClass + `*\(`)

// StripHeader drops the title and date preamble of a homework. It returns
// the text starting at the first annotated exercise line together with that
// line's index. When no line matches, text is returned unchanged with index 0.
func StripHeader(text string) (string, int) {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if !annotatedMarkerRe.MatchString(line) {
			continue
		}
		if i == 0 {
			return text, 0
		}
		return strings.Join(lines[i:], "\n"), i
	}
	return text, 0
}
