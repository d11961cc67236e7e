// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ocr

import (
	"strings"
	"unicode"

	"golang.org/x/text/width"
)

// punctuation maps CJK marks that have no full-width ASCII counterpart.
var punctuation = strings.NewReplacer(
	"。", ".",
	"、", ",",
	"【", "[",
	"】", "]",
	"《", "<",
	"》", ">",
	"“", `"`,
	"”", `"`,
	"‘", "'",
	"’", "'",
)

// NormalizePunctuation rewrites Chinese punctuation as ASCII. Full-width
// punctuation and digits (，；：？！（）．１２) are narrowed first. Other
// characters, full-width letters included, are left as they are.
func NormalizePunctuation(s string) string {
	return punctuation.Replace(strings.Map(narrowPunctOrDigit, s))
}

func narrowPunctOrDigit(r rune) rune {
	p := width.LookupRune(r)
	if p.Kind() != width.EastAsianFullwidth {
		return r
	}
	n := p.Narrow()
	if n == 0 || n > unicode.MaxASCII {
		return r
	}
	if unicode.IsDigit(n) || unicode.IsPunct(n) || unicode.IsSymbol(n) {
		return n
	}
	return r
}
