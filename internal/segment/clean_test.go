// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanTrailing(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "page number on last line", body: "Solve the system.\n12", want: "Solve the system."},
		{name: "page number with trailing spaces", body: "Solve.\n3  ", want: "Solve."},
		{name: "page number followed by newline", body: "Solve.\n3\n", want: "Solve."},
		{name: "inline numeral kept", body: "Answer is 12", want: "Answer is 12"},
		{name: "numbered line not last", body: "Body\n12\nmore text", want: "Body\n12\nmore text"},
		{name: "only the last footer is removed", body: "x\n1\n2", want: "x\n1"},
		{name: "digits mixed with text on last line", body: "Body\n12a", want: "Body\n12a"},
		{name: "empty", body: "", want: ""},
		{name: "page number with no-break space", body: "Solve.\n3\u00a0", want: "Solve."},
		{name: "full-width page number", body: "Solve.\n１２", want: "Solve."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanTrailing(tt.body))
		})
	}
}

func TestCleanTrailing_OnlyRemovesFooter(t *testing.T) {
	body := "Prove that 2 + 2 = 4.\n7"
	cleaned := CleanTrailing(body)
	assert.Equal(t, body, cleaned+"\n7")
}
