// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package segment

import (
	"regexp"

	"github.com/pdiddy/lytoc-benchmark/pkg/types"
)

// TokenKind classifies a token produced by Scanner.
type TokenKind int

const (
	// TokenPreamble is the text before the first marker. It is always the
	// first token and may be empty.
	TokenPreamble TokenKind = iota
	// TokenMarker is a line-start numbering marker such as "2 (40'). ".
	TokenMarker
	// TokenBody is the text between a marker and the next one.
	TokenBody
)

func (k TokenKind) String() string {
	switch k {
	case TokenPreamble:
		return "preamble"
	case TokenMarker:
		return "marker"
	case TokenBody:
		return "body"
	default:
		return "unknown"
	}
}

// Token is one typed slice of the scanned text. Concatenating the Text of
// every token reproduces the input exactly.
type Token struct {
	Kind TokenKind

	// Label is the digit run captured by a marker. Empty for other kinds.
	Label string

	// Text is the exact source text covered by the token.
	Text string

	// Offset is the byte offset of Text in the scanned input.
	Offset int
}

// Marker patterns match any Unicode decimal digit and any Unicode space,
// including NBSP and the ideographic space OCR leaves in CJK text.
const (
	digitClass = `\p{Nd}`
	spaceClass = `[\s\p{Z}\x{85}\x{1c}-\x{1f}]`
)

var (
	// exerciseMarkerRe: digits, optional "(annotation)", optional period,
	// then at least one whitespace character, anchored at a line start.
	exerciseMarkerRe = regexp.MustCompile(`(?m)^(` + digitClass + `+)` + spaceClass + `*(?:\([^)]+\))?` + spaceClass + `*\.?` + spaceClass + `+`)

	// subProblemMarkerRe: digits immediately followed by ")" and whitespace,
	// anchored at a line start.
	subProblemMarkerRe = regexp.MustCompile(`(?m)^(` + digitClass + `+)\)` + spaceClass + `+`)
)

// Scanner cuts text at every non-overlapping match of a marker pattern whose
// first capture group is the label.
type Scanner struct {
	marker *regexp.Regexp
}

// ExerciseScanner returns a Scanner for exercise markers ("1 (30'). ", "2. ").
func ExerciseScanner() Scanner { return Scanner{marker: exerciseMarkerRe} }

// SubProblemScanner returns a Scanner for sub-problem markers ("1) ").
func SubProblemScanner() Scanner { return Scanner{marker: subProblemMarkerRe} }

// Scan emits a preamble token followed by alternating marker and body tokens.
// Every marker is followed by exactly one body token, possibly empty.
func (s Scanner) Scan(text string) []Token {
	matches := s.marker.FindAllStringSubmatchIndex(text, -1)

	first := len(text)
	if len(matches) > 0 {
		first = matches[0][0]
	}
	tokens := make([]Token, 0, 1+2*len(matches))
	tokens = append(tokens, Token{Kind: TokenPreamble, Text: text[:first]})

	for i, m := range matches {
		tokens = append(tokens, Token{
			Kind:   TokenMarker,
			Label:  text[m[2]:m[3]],
			Text:   text[m[0]:m[1]],
			Offset: m[0],
		})

		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		tokens = append(tokens, Token{
			Kind:   TokenBody,
			Text:   text[m[1]:end],
			Offset: m[1],
		})
	}
	return tokens
}

// pairTokens walks a token stream and pairs each marker with the body that
// follows it. It returns the preamble text separately. A marker that is not
// followed by a body token is discarded.
func pairTokens(tokens []Token) (string, []types.ExerciseSpan) {
	var (
		preamble string
		spans    []types.ExerciseSpan
		label    string
		pending  bool
	)
	for _, tok := range tokens {
		switch tok.Kind {
		case TokenPreamble:
			preamble = tok.Text
		case TokenMarker:
			label = tok.Label
			pending = true
		case TokenBody:
			if !pending {
				continue
			}
			spans = append(spans, types.ExerciseSpan{Label: label, Body: tok.Text})
			pending = false
		}
	}
	return preamble, spans
}

// TokenizeExercises splits header-stripped homework text into exercise spans
// in order of appearance. The text before the first marker is discarded.
// Bodies are returned as found, untrimmed.
func TokenizeExercises(text string) []types.ExerciseSpan {
	_, spans := pairTokens(ExerciseScanner().Scan(text))
	return spans
}
