// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/lytoc-benchmark/pkg/types"
)

func TestSplitSubProblems(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []types.SubProblemSpan
	}{
		{
			name: "intro is repeated in every sub-problem",
			body: "Intro text\n1) foo\n2) bar",
			want: []types.SubProblemSpan{
				{Label: "1", Content: "Intro text\n\n1) foo"},
				{Label: "2", Content: "Intro text\n\n2) bar"},
			},
		},
		{
			name: "no intro",
			body: "1) first part\n2) second part",
			want: []types.SubProblemSpan{
				{Label: "1", Content: "1) first part"},
				{Label: "2", Content: "2) second part"},
			},
		},
		{
			name: "single sub-problem",
			body: "Let f be convex.\n1) Show f is continuous.",
			want: []types.SubProblemSpan{
				{Label: "1", Content: "Let f be convex.\n\n1) Show f is continuous."},
			},
		},
		{
			name: "multi-line sub-problem bodies are trimmed",
			body: "Given A.\n\n1)   compute B\n   using C\n\n2)\nfind D\n",
			want: []types.SubProblemSpan{
				{Label: "1", Content: "Given A.\n\n1) compute B\n   using C"},
				{Label: "2", Content: "Given A.\n\n2) find D"},
			},
		},
		{
			name: "empty sub-problem body is kept",
			body: "Intro\n1) \n2) bar",
			want: []types.SubProblemSpan{
				{Label: "1", Content: "Intro\n\n1)"},
				{Label: "2", Content: "Intro\n\n2) bar"},
			},
		},
		{
			name: "no marker",
			body: "A plain exercise with f(1) and g(2) inline.",
			want: nil,
		},
		{
			name: "marker not at line start",
			body: "see part 1) above",
			want: nil,
		},
		{
			name: "marker without following whitespace",
			body: "1)foo\n2)bar",
			want: nil,
		},
		{
			name: "empty body",
			body: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitSubProblems(tt.body))
		})
	}
}
