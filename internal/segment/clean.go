// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package segment

import "regexp"

// trailingPageRe matches a page number left by OCR on its own last line.
var trailingPageRe = regexp.MustCompile(`\n` + digitClass + `+` + spaceClass + `*$`)

// CleanTrailing removes a trailing "\n<digits>" page footer from an exercise
// body. Numerals that are not alone on the last line are left untouched.
func CleanTrailing(body string) string {
	loc := trailingPageRe.FindStringIndex(body)
	if loc == nil {
		return body
	}
	return body[:loc[0]]
}
