// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package segment

import (
	"strings"

	"github.com/pdiddy/lytoc-benchmark/pkg/types"
)

// SplitSubProblems splits a cleaned exercise body on "N)" line markers.
// It returns nil when the body has no such marker, in which case the caller
// treats the exercise as atomic.
//
// The text before the first marker is the intro. Every sub-problem's content
// repeats the intro, a blank line and its own "N) " marker so that each one
// reads on its own.
func SplitSubProblems(body string) []types.SubProblemSpan {
	intro, spans := pairTokens(SubProblemScanner().Scan(body))
	if len(spans) == 0 {
		return nil
	}
	intro = strings.TrimSpace(intro)

	subs := make([]types.SubProblemSpan, 0, len(spans))
	for _, sp := range spans {
		content := sp.Label + ") " + strings.TrimSpace(sp.Body)
		if intro != "" {
			content = intro + "\n\n" + content
		}
		subs = append(subs, types.SubProblemSpan{
			Label:   sp.Label,
			Content: strings.TrimSpace(content),
		})
	}
	return subs
}
